// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Resource is anything that can be bound to a pass field.
// The compiler only ever creates *Texture values; externally supplied
// resources (SetInput/SetOutput) may be of any type a pass accepts.
type Resource interface {
	Label() string
}

// TextureDescriptor describes a texture the compiler asks an Allocator for.
// This mirrors the WebGPU GPUTextureDescriptor specification.
type TextureDescriptor struct {
	// Label is a debug label, "Pass.Field" for graph-created textures.
	Label string

	// Dimension selects 1-D, 2-D or 3-D.
	Dimension gputypes.TextureDimension

	// Width, Height and Depth are the texture extent. Depth is 1 unless
	// Dimension is 3-D.
	Width, Height, Depth uint32

	// MipLevelCount is the number of mipmap levels.
	MipLevelCount uint32

	// SampleCount is the number of samples. Greater than 1 only for 2-D.
	SampleCount uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage gputypes.TextureUsage
}

// Multisampled reports whether the descriptor requests more than one sample.
func (d TextureDescriptor) Multisampled() bool {
	return d.SampleCount > 1
}

// String returns a compact description such as "2D 1920x1080x1 s1".
func (d TextureDescriptor) String() string {
	return fmt.Sprintf("%s %dx%dx%d s%d", dimensionName(d.Dimension), d.Width, d.Height, d.Depth, d.SampleCount)
}

func dimensionName(d gputypes.TextureDimension) string {
	switch d {
	case gputypes.TextureDimension1D:
		return "1D"
	case gputypes.TextureDimension2D:
		return "2D"
	case gputypes.TextureDimension3D:
		return "3D"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// Texture is a texture resource bound to pass fields.
//
// Textures created by a Graph belong to one compile generation. The
// producing pass's output slot and every consuming pass's input slot share
// the same *Texture until the next compile replaces them; the graph then
// hands the stale generation to the allocator's Releaser, if any.
type Texture struct {
	desc       TextureDescriptor
	generation uint64
	handle     hal.Texture
	view       hal.TextureView
}

// NewTexture wraps a texture. handle and view may be nil for textures
// without GPU backing, such as those made by NullAllocator.
func NewTexture(desc TextureDescriptor, handle hal.Texture, view hal.TextureView) *Texture {
	return &Texture{desc: desc, handle: handle, view: view}
}

// Label returns the debug label.
func (t *Texture) Label() string { return t.desc.Label }

// Descriptor returns the descriptor the texture was created from.
func (t *Texture) Descriptor() TextureDescriptor { return t.desc }

// Width returns the texture width in pixels.
func (t *Texture) Width() uint32 { return t.desc.Width }

// Height returns the texture height in pixels.
func (t *Texture) Height() uint32 { return t.desc.Height }

// Depth returns the texture depth.
func (t *Texture) Depth() uint32 { return t.desc.Depth }

// Format returns the texture pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.desc.Format }

// Generation returns the compile generation that created the texture.
// Zero means the texture was not created by a graph.
func (t *Texture) Generation() uint64 { return t.generation }

// Handle returns the HAL texture, or nil.
func (t *Texture) Handle() hal.Texture { return t.handle }

// View returns the default HAL texture view, or nil.
func (t *Texture) View() hal.TextureView { return t.view }

// Allocator creates the textures a Graph binds to pass fields.
type Allocator interface {
	CreateTexture(desc TextureDescriptor) (*Texture, error)
}

// Releaser is implemented by allocators that own GPU memory. The graph
// calls Release with every texture of a generation once a newer
// generation replaced it, and from Graph.Destroy.
type Releaser interface {
	Release(textures []*Texture)
}

// NullAllocator creates textures without GPU backing. It is the default
// allocator of a Graph and is useful for CPU-only graphs and tests.
type NullAllocator struct{}

// CreateTexture returns a texture with nil handle and view.
func (NullAllocator) CreateTexture(desc TextureDescriptor) (*Texture, error) {
	return NewTexture(desc, nil, nil), nil
}

// Ensure NullAllocator implements Allocator.
var _ Allocator = NullAllocator{}
