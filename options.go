// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import "log/slog"

// GraphOption configures a Graph during creation.
//
// Example:
//
//	g := rendergraph.New(
//	    rendergraph.WithAllocator(device.NewAllocator(halDevice)),
//	    rendergraph.WithSwapChain(rendergraph.SwapChain{
//	        ColorFormat: gputypes.TextureFormatBGRA8Unorm,
//	        Width:       1920,
//	        Height:      1080,
//	    }),
//	)
type GraphOption func(*graphOptions)

// graphOptions holds optional configuration for Graph creation.
type graphOptions struct {
	logger    *slog.Logger
	allocator Allocator
	swapChain SwapChain
	scene     Scene
}

// defaultOptions returns the default graph options.
func defaultOptions() graphOptions {
	return graphOptions{
		allocator: NullAllocator{},
	}
}

// WithLogger sets a logger for this graph only. Without it the graph logs
// through the package logger (see SetLogger).
func WithLogger(l *slog.Logger) GraphOption {
	return func(o *graphOptions) {
		o.logger = l
	}
}

// WithAllocator sets the allocator the compiler creates textures with.
// A nil allocator keeps the default NullAllocator.
func WithAllocator(a Allocator) GraphOption {
	return func(o *graphOptions) {
		if a != nil {
			o.allocator = a
		}
	}
}

// WithSwapChain sets the initial swap-chain description, as if
// OnResizeSwapChain had been called before any pass was added.
func WithSwapChain(sc SwapChain) GraphOption {
	return func(o *graphOptions) {
		o.swapChain = sc
	}
}

// WithScene sets the initial scene handed to every added pass.
func WithScene(s Scene) GraphOption {
	return func(o *graphOptions) {
		o.scene = s
	}
}
