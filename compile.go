// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// fieldKey identifies an output field of a registered pass.
type fieldKey struct {
	pass  string
	field string
}

// compilation is the state of one Compile call.
type compilation struct {
	g          *Graph
	generation uint64
	bound      map[fieldKey]Resource
	created    []*Texture
}

// Compile creates and binds a texture for every edge, every graph output
// and every required output field. It does nothing unless a mutation or a
// swap-chain change set the recompile flag.
//
// Every compile derives all resources from scratch. The textures of the
// previous generation are handed to the allocator's Releaser once the new
// generation is fully bound. On error the recompile flag stays set.
func (g *Graph) Compile() error {
	if !g.recompile {
		return nil
	}

	c := &compilation{
		g:          g,
		generation: g.generation + 1,
		bound:      make(map[fieldKey]Resource),
	}
	if err := c.run(); err != nil {
		// Passes may already reference the partial generation, so keep it
		// alive until a later compile succeeds.
		g.owned = append(g.owned, c.created...)
		return err
	}

	stale := g.owned
	g.owned = c.created
	g.generation = c.generation
	g.recompile = false
	g.release(stale)

	g.logger().Debug("rendergraph: compiled",
		"generation", g.generation,
		"passes", len(g.passes),
		"edges", len(g.edges),
		"textures", len(c.created))

	if err := g.CheckOrder(); err != nil {
		g.logger().Warn("rendergraph: passes execute in registration order", "err", err)
	}
	return nil
}

func (c *compilation) run() error {
	g := c.g

	for _, e := range g.edges {
		src := g.passes[g.nameToIndex[e.SrcPass]]
		dst := g.passes[g.nameToIndex[e.DstPass]]

		r := src.Reflect()
		found := false
		for _, f := range r.Outputs {
			if !f.Required && f.Name != e.SrcField {
				continue
			}
			res, err := c.materialize(e.SrcPass, src, f)
			if err != nil {
				return err
			}
			if f.Name == e.SrcField {
				if !dst.SetInput(e.DstField, res) {
					g.logger().Warn("rendergraph: pass rejected input", "pass", e.DstPass, "field", e.DstField)
				}
				found = true
			}
		}
		if !found {
			panic(fmt.Sprintf("rendergraph: edge %s: source field is not declared by the source pass", e))
		}
	}

	for _, o := range g.outputs {
		p := g.passes[g.nameToIndex[o.Pass]]
		r := p.Reflect()
		f := r.Output(o.Field)
		if f == nil {
			g.logger().Warn("rendergraph: graph output is no longer declared", "pass", o.Pass, "field", o.Field)
			continue
		}
		if _, err := c.materialize(o.Pass, p, f); err != nil {
			return err
		}
	}

	for i, p := range g.passes {
		r := p.Reflect()
		for _, f := range r.Outputs {
			if !f.Required {
				continue
			}
			if _, err := c.materialize(g.names[i], p, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// materialize returns the resource of an output field for this compile,
// creating and binding it on first use. External graph outputs keep the
// resource supplied through SetOutput.
func (c *compilation) materialize(passName string, p Pass, f *Field) (Resource, error) {
	key := fieldKey{pass: passName, field: f.Name}
	if res, ok := c.bound[key]; ok {
		return res, nil
	}

	if c.g.isExternalOutput(passName, f.Name) {
		res := p.Output(f.Name)
		c.bound[key] = res
		return res, nil
	}

	tex, err := c.g.createTextureForField(passName+"."+f.Name, f)
	if err != nil {
		return nil, fmt.Errorf("rendergraph: compile %s.%s: %w", passName, f.Name, err)
	}
	tex.generation = c.generation
	c.created = append(c.created, tex)
	c.bound[key] = tex

	if !p.SetOutput(f.Name, tex) {
		c.g.logger().Warn("rendergraph: pass rejected output", "pass", passName, "field", f.Name)
	}
	return tex, nil
}

func (g *Graph) isExternalOutput(passName, field string) bool {
	for _, o := range g.outputs {
		if o.Pass == passName && o.Field == field {
			return o.External
		}
	}
	return false
}

// TextureDescriptorFor returns the descriptor the compiler uses for f under
// the current swap chain.
func (g *Graph) TextureDescriptorFor(label string, f *Field) (TextureDescriptor, error) {
	return textureDescriptor(label, f, g.swapChain)
}

func textureDescriptor(label string, f *Field, sc SwapChain) (TextureDescriptor, error) {
	width := f.Width
	if width == 0 {
		width = sc.Width
	}
	height := f.Height
	if height == 0 {
		height = sc.Height
	}
	depth := f.Depth
	if depth == 0 {
		depth = 1
	}
	sampleCount := f.SampleCount
	if sampleCount == 0 {
		sampleCount = 1
	}
	format := f.Format
	if format == gputypes.TextureFormatUndefined {
		format = sc.ColorFormat
	}

	desc := TextureDescriptor{
		Label:         label,
		Width:         width,
		Height:        height,
		Depth:         depth,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Format:        format,
		Usage:         f.Usage | gputypes.TextureUsageTextureBinding,
	}

	switch {
	case depth > 1:
		if sampleCount != 1 {
			return TextureDescriptor{}, fmt.Errorf("%w: %s has %d samples", ErrMultisample3D, label, sampleCount)
		}
		desc.Dimension = gputypes.TextureDimension3D
	case height > 1 || sampleCount > 1:
		desc.Dimension = gputypes.TextureDimension2D
	default:
		desc.Dimension = gputypes.TextureDimension1D
		desc.Height = 1
	}
	return desc, nil
}

func (g *Graph) createTextureForField(label string, f *Field) (*Texture, error) {
	desc, err := textureDescriptor(label, f, g.swapChain)
	if err != nil {
		return nil, err
	}
	tex, err := g.allocator.CreateTexture(desc)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

// release hands textures to the allocator if it owns GPU memory.
func (g *Graph) release(textures []*Texture) {
	if len(textures) == 0 {
		return
	}
	if r, ok := g.allocator.(Releaser); ok {
		r.Release(textures)
	}
}

// Destroy releases every texture of the current generation and marks the
// graph for recompilation. Passes keep their stale references until the
// next compile rebinds them.
func (g *Graph) Destroy() {
	g.release(g.owned)
	g.owned = nil
	g.recompile = true
}
