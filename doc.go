// Package rendergraph builds and runs graphs of GPU render passes.
//
// # Overview
//
// A Graph holds named passes and edges between their fields. Passes
// declare their input and output fields through Reflect; edges connect an
// output field of one pass to an input field of another using
// "PassName.FieldName" addresses. Compiling the graph creates one texture
// per wired output field, sized and formatted from the field or the swap
// chain, and binds it to both ends of every edge. Executing the graph runs
// every pass once per frame.
//
// # Quick Start
//
//	g := rendergraph.New(rendergraph.WithAllocator(device.NewAllocator(halDevice)))
//	g.OnResizeSwapChain(rendergraph.Formats{Color: gputypes.TextureFormatBGRA8Unorm}, 1920, 1080)
//
//	_ = g.AddPass(passes.NewClear(gputypes.Color{A: 1}), "Clear")
//	_ = g.AddPass(recorder, "Record")
//	_ = g.AddEdge("Clear.color", "Record.src")
//
//	// once per frame
//	if err := g.Execute(device.NewContext(halDevice, halQueue)); err != nil {
//	    log.Print(err)
//	}
//
// # Lifecycle
//
// A graph is dirty after creation and after every structural change or
// swap-chain change. Compile rebuilds all resources of a dirty graph and
// clears the flag; Execute compiles on demand. Validation runs on every
// Execute and is never cached: when any pass reports it cannot run, the
// whole frame is skipped.
//
// # Ordering
//
// Passes execute in registration order, not in an order derived from the
// edges. Register producers before consumers. Compile logs a warning when
// that is not the case; CheckOrder and TopologicalOrder expose the
// diagnosis to callers.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Mutate it only between frames.
package rendergraph

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
