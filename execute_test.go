// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestExecuteSkipsFrameWhenInvalid(t *testing.T) {
	var trace []string
	var logs bytes.Buffer
	g := New(
		WithSwapChain(defaultSwapChain),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	_ = g.AddPass(newStubPass("A", &trace).out("out"), "A")
	_ = g.AddPass(newStubPass("B", &trace).in("in"), "B")
	_ = g.AddPass(newStubPass("C", &trace), "C")

	err := g.Execute(nil)
	if !errors.Is(err, ErrInvalidGraph) {
		t.Fatalf("Execute() error = %v, want ErrInvalidGraph", err)
	}
	if len(trace) != 0 {
		t.Errorf("no pass may execute on an invalid graph, got %v", trace)
	}
	if !strings.Contains(logs.String(), "skipping frame") {
		t.Errorf("expected a warning about the skipped frame, got %q", logs.String())
	}

	// Fixing the graph lets the next frame run.
	mustEdge(t, g, "A.out", "B.in")
	if err := g.Execute(nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !slices.Equal(trace, []string{"A", "B", "C"}) {
		t.Errorf("execution order = %v, want [A B C]", trace)
	}
}

func TestIsValidAggregatesDiagnostics(t *testing.T) {
	g := New()
	_ = g.AddPass(newStubPass("A", nil).in("x"), "A")
	_ = g.AddPass(newStubPass("B", nil).optIn("y"), "B")
	_ = g.AddPass(newStubPass("C", nil).in("z").in("w"), "C")

	for i := 0; i < 2; i++ {
		var log strings.Builder
		if g.IsValid(&log) {
			t.Fatal("IsValid() = true, want false")
		}
		want := "A: missing required inputs: x\nC: missing required inputs: z, w\n"
		if log.String() != want {
			t.Errorf("run %d: log = %q, want %q", i, log.String(), want)
		}
	}

	err := g.Validate()
	if !errors.Is(err, ErrInvalidGraph) {
		t.Errorf("Validate() error = %v, want ErrInvalidGraph", err)
	}
}

func TestIsValidAppendsToExistingLog(t *testing.T) {
	g := New()
	_ = g.AddPass(newStubPass("A", nil).in("x"), "A")

	var log strings.Builder
	log.WriteString("previous\n")
	g.IsValid(&log)
	if !strings.HasPrefix(log.String(), "previous\nA: ") || !strings.HasSuffix(log.String(), "\n") {
		t.Errorf("log = %q", log.String())
	}
}

func TestExecuteStopsOnPassError(t *testing.T) {
	var trace []string
	g := New()
	failing := newStubPass("B", &trace)
	failing.executeErr = errors.New("device lost")
	_ = g.AddPass(newStubPass("A", &trace), "A")
	_ = g.AddPass(failing, "B")
	_ = g.AddPass(newStubPass("C", &trace), "C")

	err := g.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), `"B"`) {
		t.Fatalf("Execute() error = %v, want error naming pass B", err)
	}
	if !slices.Equal(trace, []string{"A", "B"}) {
		t.Errorf("trace = %v, want [A B]", trace)
	}
}

func TestExecuteReturnsCompileError(t *testing.T) {
	var trace []string
	alloc := &countingAllocator{failOn: "A.out"}
	g, _, _ := newExampleGraph(t, alloc, &trace)

	if err := g.Execute(nil); !errors.Is(err, errAllocFailed) {
		t.Fatalf("Execute() error = %v, want errAllocFailed", err)
	}
	if len(trace) != 0 {
		t.Errorf("trace = %v, want none", trace)
	}
}

func TestOnResizeSwapChain(t *testing.T) {
	base := defaultSwapChain
	formats := Formats{Color: base.ColorFormat, Depth: base.DepthFormat}

	tests := []struct {
		name          string
		bb            Formats
		width, height uint32
		wantRecompile bool
	}{
		{"identical", formats, base.Width, base.Height, false},
		{"width", formats, base.Width + 1, base.Height, true},
		{"height", formats, base.Width, base.Height - 1, true},
		{"color format", Formats{Color: gputypes.TextureFormatRGBA8Unorm, Depth: formats.Depth}, base.Width, base.Height, true},
		{"depth format", Formats{Color: formats.Color, Depth: gputypes.TextureFormatDepth32Float}, base.Width, base.Height, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(WithSwapChain(base))
			p := newStubPass("A", nil).reqOut("out")
			_ = g.AddPass(p, "A")
			if err := g.Compile(); err != nil {
				t.Fatalf("Compile() error = %v", err)
			}

			g.OnResizeSwapChain(tt.bb, tt.width, tt.height)
			if g.NeedsRecompile() != tt.wantRecompile {
				t.Errorf("NeedsRecompile() = %v, want %v", g.NeedsRecompile(), tt.wantRecompile)
			}

			want := SwapChain{ColorFormat: tt.bb.Color, DepthFormat: tt.bb.Depth, Width: tt.width, Height: tt.height}
			if g.SwapChain() != want {
				t.Errorf("SwapChain() = %+v, want %+v", g.SwapChain(), want)
			}
			if p.resizes != 1 || p.swapChain != want {
				t.Errorf("pass saw %d resizes with %+v, want 1 with %+v", p.resizes, p.swapChain, want)
			}
		})
	}
}

func TestResizeRecompilesWithNewSize(t *testing.T) {
	g, a, b := newExampleGraph(t, NullAllocator{}, nil)
	if err := g.Execute(nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	g.OnResizeSwapChain(Formats{Color: gputypes.TextureFormatRGBA16Float}, 640, 360)
	if err := g.Execute(nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	tex := a.outputs["out"].(*Texture)
	if tex.Width() != 640 || tex.Height() != 360 || tex.Format() != gputypes.TextureFormatRGBA16Float {
		t.Errorf("texture = %v %v, want 640x360 RGBA16Float", tex.Descriptor(), tex.Format())
	}
	if b.inputs["in"] != Resource(tex) {
		t.Error("consumer was not rebound after resize")
	}
	if g.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", g.Generation())
	}
}

func TestCheckOrder(t *testing.T) {
	g := New()
	_ = g.AddPass(newStubPass("B", nil).in("in").out("out"), "B")
	_ = g.AddPass(newStubPass("A", nil).out("out"), "A")
	_ = g.AddPass(newStubPass("C", nil).in("in"), "C")
	mustEdge(t, g, "A.out", "B.in")
	mustEdge(t, g, "B.out", "C.in")

	err := g.CheckOrder()
	if !errors.Is(err, ErrOutOfOrder) || errors.Is(err, ErrCycle) {
		t.Fatalf("CheckOrder() error = %v, want ErrOutOfOrder without ErrCycle", err)
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}
	if !slices.Equal(order, []string{"A", "B", "C"}) {
		t.Errorf("TopologicalOrder() = %v, want [A B C]", order)
	}

	// Registration order is kept; the graph is not reordered.
	if !slices.Equal(g.PassNames(), []string{"B", "A", "C"}) {
		t.Errorf("PassNames() = %v", g.PassNames())
	}
}

func TestCheckOrderCycle(t *testing.T) {
	g := New()
	_ = g.AddPass(newStubPass("A", nil).in("in").out("out"), "A")
	_ = g.AddPass(newStubPass("B", nil).in("in").out("out"), "B")
	mustEdge(t, g, "A.out", "B.in")
	mustEdge(t, g, "B.out", "A.in")

	if err := g.CheckOrder(); !errors.Is(err, ErrCycle) {
		t.Errorf("CheckOrder() error = %v, want ErrCycle", err)
	}
	if _, err := g.TopologicalOrder(); !errors.Is(err, ErrCycle) {
		t.Errorf("TopologicalOrder() error = %v, want ErrCycle", err)
	}
}

func TestCheckOrderRegistrationOrder(t *testing.T) {
	g, _, _ := newExampleGraph(t, NullAllocator{}, nil)
	if err := g.CheckOrder(); err != nil {
		t.Errorf("CheckOrder() error = %v, want nil", err)
	}
}
