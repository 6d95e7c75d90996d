// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package passes

import (
	"fmt"
	"strings"

	"github.com/gogpu/rendergraph"
)

// Info describes a pass type.
type Info struct {
	Name        string
	Description string
}

// Base implements every rendergraph.Pass method except Execute.
// Its reflection is fixed at construction.
type Base struct {
	info       Info
	reflection rendergraph.Reflection

	inputs  map[string]rendergraph.Resource
	outputs map[string]rendergraph.Resource

	scene     rendergraph.Scene
	swapChain rendergraph.SwapChain
}

// NewBase returns a Base declaring the fields of r.
func NewBase(info Info, r rendergraph.Reflection) Base {
	return Base{
		info:       info,
		reflection: r,
		inputs:     make(map[string]rendergraph.Resource),
		outputs:    make(map[string]rendergraph.Resource),
	}
}

// Info returns the pass description.
func (b *Base) Info() Info { return b.info }

// Reflect returns the declared fields.
func (b *Base) Reflect() rendergraph.Reflection { return b.reflection }

// SetInput binds r to a declared input. A nil r unbinds it.
func (b *Base) SetInput(field string, r rendergraph.Resource) bool {
	if b.reflection.Input(field) == nil {
		return false
	}
	b.inputs[field] = r
	return true
}

// SetOutput binds r to a declared output. A nil r unbinds it.
func (b *Base) SetOutput(field string, r rendergraph.Resource) bool {
	if b.reflection.Output(field) == nil {
		return false
	}
	b.outputs[field] = r
	return true
}

// Input returns the resource bound to an input, or nil.
func (b *Base) Input(field string) rendergraph.Resource { return b.inputs[field] }

// Output returns the resource bound to an output, or nil.
func (b *Base) Output(field string) rendergraph.Resource { return b.outputs[field] }

// InputTexture returns the input as a texture, or nil when it is unbound
// or not a texture.
func (b *Base) InputTexture(field string) *rendergraph.Texture {
	t, _ := b.inputs[field].(*rendergraph.Texture)
	return t
}

// OutputTexture returns the output as a texture, or nil when it is unbound
// or not a texture.
func (b *Base) OutputTexture(field string) *rendergraph.Texture {
	t, _ := b.outputs[field].(*rendergraph.Texture)
	return t
}

// Validate reports every required input that has nothing bound.
func (b *Base) Validate() error {
	var missing []string
	for _, f := range b.reflection.Inputs {
		if f.Required && b.inputs[f.Name] == nil {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required input %s", strings.Join(missing, ", "))
	}
	return nil
}

// SetScene stores the scene.
func (b *Base) SetScene(s rendergraph.Scene) { b.scene = s }

// Scene returns the last scene set on the pass.
func (b *Base) Scene() rendergraph.Scene { return b.scene }

// OnResizeSwapChain stores the swap chain.
func (b *Base) OnResizeSwapChain(sc rendergraph.SwapChain) { b.swapChain = sc }

// SwapChain returns the last swap chain the graph forwarded.
func (b *Base) SwapChain() rendergraph.SwapChain { return b.swapChain }

// targetSize returns the size of the texture bound to an output, falling
// back to the swap chain.
func (b *Base) targetSize(field string) (width, height uint32) {
	if t := b.OutputTexture(field); t != nil {
		return t.Width(), t.Height()
	}
	return b.swapChain.Width, b.swapChain.Height
}
