// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
)

// Edge binds an output field of one pass to an input field of another.
// Pass names are unique within a graph, so two edges are equal when all
// four members are equal.
type Edge struct {
	SrcPass  string
	SrcField string
	DstPass  string
	DstField string
}

// String returns the edge as "Src.field -> Dst.field".
func (e Edge) String() string {
	return e.SrcPass + "." + e.SrcField + " -> " + e.DstPass + "." + e.DstField
}

// GraphOutput marks an output field as an externally consumed result.
type GraphOutput struct {
	Pass  string
	Field string

	// External is set when the resource was supplied through SetOutput.
	// The compiler never replaces an external output.
	External bool
}

// Graph is a set of named passes connected by edges between their fields.
//
// Passes execute in registration order, so callers must add producers
// before their consumers. Compile warns when they don't (see CheckOrder).
//
// Graph is not safe for concurrent use. Mutations must happen between
// frames, never while Execute runs.
type Graph struct {
	log       *slog.Logger
	allocator Allocator

	passes      []Pass
	names       []string
	nameToIndex map[string]int

	edges   []Edge
	outputs []GraphOutput

	swapChain SwapChain
	scene     Scene

	recompile  bool
	generation uint64
	owned      []*Texture
}

// New creates an empty graph. A new graph needs compiling.
func New(opts ...GraphOption) *Graph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Graph{
		log:         o.logger,
		allocator:   o.allocator,
		nameToIndex: make(map[string]int),
		swapChain:   o.swapChain,
		scene:       o.scene,
		recompile:   true,
	}
}

func (g *Graph) logger() *slog.Logger {
	if g.log != nil {
		return g.log
	}
	return Logger()
}

// AddPass registers p under name. Names are case-sensitive and unique.
// The pass receives the graph's current scene. A nil pass, including a
// typed nil pointer, is rejected with ErrNilPass.
func (g *Graph) AddPass(p Pass, name string) error {
	if isNilPass(p) {
		return ErrNilPass
	}
	if _, ok := g.nameToIndex[name]; ok {
		g.logger().Warn("rendergraph: pass names must be unique", "pass", name)
		return fmt.Errorf("%w: %q", ErrPassExists, name)
	}

	p.SetScene(g.scene)
	g.nameToIndex[name] = len(g.passes)
	g.passes = append(g.passes, p)
	g.names = append(g.names, name)
	g.recompile = true
	return nil
}

func isNilPass(p Pass) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// RemovePass unregisters the named pass together with every edge and
// graph output that references it.
func (g *Graph) RemovePass(name string) error {
	index, ok := g.nameToIndex[name]
	if !ok {
		g.logger().Warn("rendergraph: can't remove pass, pass doesn't exist", "pass", name)
		return fmt.Errorf("%w: %q", ErrPassNotFound, name)
	}

	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool {
		return e.SrcPass == name || e.DstPass == name
	})
	g.outputs = slices.DeleteFunc(g.outputs, func(o GraphOutput) bool {
		return o.Pass == name
	})
	g.erasePass(index)
	g.recompile = true
	return nil
}

// erasePass removes the pass at index and keeps nameToIndex in step with
// the backing slices. Every index above the removed one shifts down by one.
func (g *Graph) erasePass(index int) {
	delete(g.nameToIndex, g.names[index])
	for n, i := range g.nameToIndex {
		if i > index {
			g.nameToIndex[n] = i - 1
		}
	}
	g.passes = slices.Delete(g.passes, index, index+1)
	g.names = slices.Delete(g.names, index, index+1)
}

// Pass returns the pass registered under name, or nil.
func (g *Graph) Pass(name string) Pass {
	index, ok := g.nameToIndex[name]
	if !ok {
		g.logger().Warn("rendergraph: can't find a pass", "pass", name)
		return nil
	}
	return g.passes[index]
}

// PassNames returns the pass names in registration order.
func (g *Graph) PassNames() []string {
	return append([]string(nil), g.names...)
}

// PassCount returns the number of registered passes.
func (g *Graph) PassCount() int {
	return len(g.passes)
}

// AddEdge connects the output field src to the input field dst. Both are
// "PassName.FieldName" addresses. An input accepts at most one edge.
func (g *Graph) AddEdge(src, dst string) error {
	from, err := g.resolve("AddEdge src", src, dirOutput)
	if err != nil {
		return err
	}
	to, err := g.resolve("AddEdge dst", dst, dirInput)
	if err != nil {
		return err
	}

	for _, e := range g.edges {
		if e.DstPass == to.name && e.DstField == to.field {
			g.logger().Warn("rendergraph: destination is already bound, remove the existing edge first",
				"address", dst, "src", e.SrcPass+"."+e.SrcField)
			return fmt.Errorf("%w: %q", ErrDestinationBound, dst)
		}
	}

	g.edges = append(g.edges, Edge{
		SrcPass:  from.name,
		SrcField: from.field,
		DstPass:  to.name,
		DstField: to.field,
	})
	g.recompile = true
	return nil
}

// RemoveEdge removes the edge from src to dst. The recompile flag is set
// even when no such edge exists.
func (g *Graph) RemoveEdge(src, dst string) error {
	from, err := g.resolve("RemoveEdge src", src, dirOutput)
	if err != nil {
		return err
	}
	to, err := g.resolve("RemoveEdge dst", dst, dirInput)
	if err != nil {
		return err
	}

	g.recompile = true
	want := Edge{SrcPass: from.name, SrcField: from.field, DstPass: to.name, DstField: to.field}
	for i, e := range g.edges {
		if e == want {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return nil
		}
	}

	g.logger().Warn("rendergraph: unable to find edge to remove", "edge", want.String())
	return fmt.Errorf("%w: %s", ErrEdgeNotFound, want)
}

// Edges returns a copy of the edges in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// MarkOutput marks the output field name as a graph output. Marking an
// already marked output does nothing.
func (g *Graph) MarkOutput(name string) error {
	return g.markOutput("MarkOutput", name, false)
}

func (g *Graph) markOutput(op, name string, external bool) error {
	ep, err := g.resolve(op, name, dirOutput)
	if err != nil {
		return err
	}

	for i, o := range g.outputs {
		if o.Pass == ep.name && o.Field == ep.field {
			if external && !o.External {
				g.outputs[i].External = true
				g.recompile = true
			}
			return nil
		}
	}

	g.outputs = append(g.outputs, GraphOutput{Pass: ep.name, Field: ep.field, External: external})
	g.recompile = true
	return nil
}

// UnmarkOutput removes name from the graph outputs. Unmarking an output
// that is not marked does nothing.
func (g *Graph) UnmarkOutput(name string) error {
	ep, err := g.resolve("UnmarkOutput", name, dirOutput)
	if err != nil {
		return err
	}

	for i, o := range g.outputs {
		if o.Pass == ep.name && o.Field == ep.field {
			g.outputs = append(g.outputs[:i], g.outputs[i+1:]...)
			g.recompile = true
			return nil
		}
	}
	return nil
}

// Outputs returns a copy of the graph outputs in marking order.
func (g *Graph) Outputs() []GraphOutput {
	return append([]GraphOutput(nil), g.outputs...)
}

// SetInput binds an externally owned resource to the input field name,
// bypassing compilation.
func (g *Graph) SetInput(name string, r Resource) error {
	ep, err := g.resolve("SetInput", name, dirInput)
	if err != nil {
		return err
	}
	if !ep.pass.SetInput(ep.field, r) {
		return fmt.Errorf("%w: input %q", ErrBindRejected, name)
	}
	return nil
}

// SetOutput binds an externally owned resource, such as the presentation
// back buffer, to the output field name and marks it as a graph output.
// The compiler will not replace it.
func (g *Graph) SetOutput(name string, r Resource) error {
	ep, err := g.resolve("SetOutput", name, dirOutput)
	if err != nil {
		return err
	}
	if !ep.pass.SetOutput(ep.field, r) {
		return fmt.Errorf("%w: output %q", ErrBindRejected, name)
	}
	return g.markOutput("SetOutput", name, true)
}

// Output returns the resource bound to the output field name. The
// resource is nil until the graph compiled or SetOutput was called.
func (g *Graph) Output(name string) (Resource, error) {
	ep, err := g.resolve("Output", name, dirOutput)
	if err != nil {
		return nil, err
	}
	return ep.pass.Output(ep.field), nil
}

// SetScene stores s and hands it to every registered pass.
func (g *Graph) SetScene(s Scene) {
	g.scene = s
	for _, p := range g.passes {
		p.SetScene(s)
	}
}

// Scene returns the current scene.
func (g *Graph) Scene() Scene {
	return g.scene
}

// NeedsRecompile reports whether the next Compile will rebuild resources.
func (g *Graph) NeedsRecompile() bool {
	return g.recompile
}

// Generation returns the number of effective compiles so far.
func (g *Graph) Generation() uint64 {
	return g.generation
}
