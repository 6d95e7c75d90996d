// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import "github.com/gogpu/wgpu/hal"

// Pass is a single named unit of GPU work in a Graph.
//
// The graph never inspects what a pass does. It reads the declared fields
// through Reflect, binds resources through SetInput and SetOutput, asks the
// pass whether it is ready through Validate and runs it through Execute.
// The passes package provides a Base type that implements everything except
// Execute.
type Pass interface {
	// Reflect returns the fields the pass declares. The graph calls it on
	// every address resolution and every compile, so it should be cheap.
	Reflect() Reflection

	// SetInput binds r to the named input field. It returns false when the
	// pass rejects the binding.
	SetInput(field string, r Resource) bool

	// SetOutput binds r to the named output field. It returns false when
	// the pass rejects the binding.
	SetOutput(field string, r Resource) bool

	// Output returns the resource currently bound to the named output
	// field, or nil.
	Output(field string) Resource

	// Validate reports whether the pass can execute, typically whether all
	// required inputs are bound. The returned error text is shown to users.
	Validate() error

	// Execute records and submits the pass's GPU work.
	Execute(rc RenderContext) error

	// SetScene hands the graph's scene to the pass. s may be nil.
	SetScene(s Scene)

	// OnResizeSwapChain notifies the pass that the swap chain changed so it
	// can resize pass-private resources the graph does not track.
	OnResizeSwapChain(sc SwapChain)
}

// RenderContext gives passes access to the GPU device and queue. The graph
// passes it through to every pass unmodified. It may be nil for graphs made
// only of CPU-side passes.
type RenderContext interface {
	Device() hal.Device
	Queue() hal.Queue
}

// Scene is the scene description shared by all passes of a graph.
// The graph treats it as opaque.
type Scene any
