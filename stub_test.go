// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// stubPass is a test double that records every call the graph makes.
type stubPass struct {
	reflection Reflection
	inputs     map[string]Resource
	outputs    map[string]Resource

	scene     Scene
	swapChain SwapChain
	resizes   int

	// trace, when set, receives the name of the pass on every Execute.
	trace *[]string
	name  string

	executeErr error
}

func newStubPass(name string, trace *[]string) *stubPass {
	return &stubPass{
		name:    name,
		trace:   trace,
		inputs:  make(map[string]Resource),
		outputs: make(map[string]Resource),
	}
}

// in declares a required input.
func (p *stubPass) in(name string) *stubPass {
	p.reflection.AddInput(name, "")
	return p
}

// optIn declares an optional input.
func (p *stubPass) optIn(name string) *stubPass {
	p.reflection.AddInput(name, "").Optional()
	return p
}

// out declares an optional output.
func (p *stubPass) out(name string) *stubPass {
	p.reflection.AddOutput(name, "")
	return p
}

// reqOut declares a required output.
func (p *stubPass) reqOut(name string) *stubPass {
	p.reflection.AddOutput(name, "").Require()
	return p
}

func (p *stubPass) Reflect() Reflection { return p.reflection }

func (p *stubPass) SetInput(field string, r Resource) bool {
	if p.reflection.Input(field) == nil {
		return false
	}
	p.inputs[field] = r
	return true
}

func (p *stubPass) SetOutput(field string, r Resource) bool {
	if p.reflection.Output(field) == nil {
		return false
	}
	p.outputs[field] = r
	return true
}

func (p *stubPass) Output(field string) Resource { return p.outputs[field] }

func (p *stubPass) Validate() error {
	var missing []string
	for _, f := range p.reflection.Inputs {
		if f.Required && p.inputs[f.Name] == nil {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required inputs: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (p *stubPass) Execute(RenderContext) error {
	if p.trace != nil {
		*p.trace = append(*p.trace, p.name)
	}
	return p.executeErr
}

func (p *stubPass) SetScene(s Scene) { p.scene = s }

func (p *stubPass) OnResizeSwapChain(sc SwapChain) {
	p.swapChain = sc
	p.resizes++
}

// countingAllocator is a NullAllocator that counts and optionally fails.
type countingAllocator struct {
	created  []TextureDescriptor
	released []*Texture
	failOn   string
}

var errAllocFailed = errors.New("allocation failed")

func (a *countingAllocator) CreateTexture(desc TextureDescriptor) (*Texture, error) {
	if a.failOn != "" && desc.Label == a.failOn {
		return nil, errAllocFailed
	}
	a.created = append(a.created, desc)
	return NewTexture(desc, nil, nil), nil
}

func (a *countingAllocator) Release(textures []*Texture) {
	a.released = append(a.released, textures...)
}

var defaultSwapChain = SwapChain{
	ColorFormat: gputypes.TextureFormatBGRA8Unorm,
	DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
	Width:       1920,
	Height:      1080,
}
