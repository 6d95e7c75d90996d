// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command rgdemo builds a small render graph, runs it for a number of
// frames and writes every frame to disk.
//
//	rgdemo -backend vulkan -frames 3 -out frames
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/passes"
	"github.com/gogpu/rendergraph/passlib"
)

func main() {
	var (
		width    = flag.Uint("width", 800, "swap chain width")
		height   = flag.Uint("height", 600, "swap chain height")
		frames   = flag.Int("frames", 1, "frames to execute")
		backend  = flag.String("backend", device.BackendNoop, "HAL backend (noop or vulkan)")
		out      = flag.String("out", "", "directory for recorded frames (empty keeps them in memory)")
		encoding = flag.String("encoding", "png", "frame file format (png, bmp or tiff)")
		verbose  = flag.Bool("v", false, "log compile details")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	rendergraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	dev, err := device.Open(*backend)
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}
	defer dev.Close()
	log.Printf("Using %s adapter %q", *backend, dev.Name)
	log.Printf("Registered passes: %s", strings.Join(passlib.List(), ", "))

	alloc := device.NewAllocator(dev.Device())
	defer alloc.Destroy()

	g := rendergraph.New(
		rendergraph.WithAllocator(alloc),
		rendergraph.WithSwapChain(rendergraph.SwapChain{
			ColorFormat: gputypes.TextureFormatBGRA8Unorm,
			DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
			Width:       uint32(*width),
			Height:      uint32(*height),
		}),
	)
	defer g.Destroy()

	if err := buildGraph(g, *out, *encoding); err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	for i := 0; i < *frames; i++ {
		if err := g.Execute(dev.Context); err != nil {
			log.Fatalf("Frame %d failed: %v", i, err)
		}
	}
	log.Printf("Executed %d frames (%dx%d, generation %d)", *frames, *width, *height, g.Generation())
}

// buildGraph wires clear.color -> record.src.
func buildGraph(g *rendergraph.Graph, out, encoding string) error {
	clearPass, err := passlib.Create(passes.ClearInfo.Name, passlib.Params{
		"color": gputypes.Color{R: 0.1, G: 0.2, B: 0.4, A: 1},
	})
	if err != nil {
		return err
	}
	record, err := passlib.Create(passes.RecordInfo.Name, passlib.Params{
		"dir":      out,
		"encoding": encoding,
	})
	if err != nil {
		return err
	}

	if err := g.AddPass(clearPass, "clear"); err != nil {
		return err
	}
	if err := g.AddPass(record, "record"); err != nil {
		return err
	}
	if err := g.AddEdge("clear.color", "record.src"); err != nil {
		return err
	}
	return g.MarkOutput("clear.color")
}
