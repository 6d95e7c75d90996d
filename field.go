// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import "github.com/gogpu/gputypes"

// Field describes one input or output slot of a pass.
//
// Zero-valued size fields and an undefined format mean "inherit from the
// swap chain" when the compiler creates a texture for the field.
type Field struct {
	// Name identifies the field within its direction. It is the part after
	// the dot in a "PassName.FieldName" address.
	Name string

	// Description is a human readable explanation of the field.
	Description string

	// Required marks an input that must be bound before the pass can run,
	// or an output the compiler always materializes, wired or not.
	Required bool

	// Format is the expected texture format. TextureFormatUndefined means
	// the swap-chain color format.
	Format gputypes.TextureFormat

	// Width, Height and Depth are explicit texture dimensions. Zero means
	// swap-chain width, swap-chain height and 1 respectively.
	Width, Height, Depth uint32

	// SampleCount is the multisample count. Zero means 1.
	SampleCount uint32

	// Usage holds the bind flags the pass needs. The compiler always adds
	// gputypes.TextureUsageTextureBinding.
	Usage gputypes.TextureUsage
}

// Flags adds bind flags to the field.
func (f *Field) Flags(usage gputypes.TextureUsage) *Field {
	f.Usage |= usage
	return f
}

// WithFormat sets the texture format of the field.
func (f *Field) WithFormat(format gputypes.TextureFormat) *Field {
	f.Format = format
	return f
}

// Texture1D requests a 1-D texture of the given width.
func (f *Field) Texture1D(width uint32) *Field {
	f.Width, f.Height, f.Depth, f.SampleCount = width, 1, 1, 1
	return f
}

// Texture2D requests a 2-D texture. Zero dimensions inherit the swap chain.
func (f *Field) Texture2D(width, height uint32) *Field {
	f.Width, f.Height, f.Depth, f.SampleCount = width, height, 1, 1
	return f
}

// Texture2DMS requests a multisampled 2-D texture.
func (f *Field) Texture2DMS(width, height, sampleCount uint32) *Field {
	f.Width, f.Height, f.Depth, f.SampleCount = width, height, 1, sampleCount
	return f
}

// Texture3D requests a 3-D texture.
func (f *Field) Texture3D(width, height, depth uint32) *Field {
	f.Width, f.Height, f.Depth, f.SampleCount = width, height, depth, 1
	return f
}

// Optional clears the Required flag.
func (f *Field) Optional() *Field {
	f.Required = false
	return f
}

// Require sets the Required flag.
func (f *Field) Require() *Field {
	f.Required = true
	return f
}

// Reflection is the ordered list of fields a pass declares.
//
// Example:
//
//	var r rendergraph.Reflection
//	r.AddInput("count", "per-pixel sample count")
//	r.AddOutput("color", "visualized count").
//	    WithFormat(gputypes.TextureFormatRGBA32Float).
//	    Flags(gputypes.TextureUsageStorageBinding)
type Reflection struct {
	Inputs  []*Field
	Outputs []*Field
}

// AddInput declares an input field. Inputs are required by default.
func (r *Reflection) AddInput(name, description string) *Field {
	f := &Field{Name: name, Description: description, Required: true}
	r.Inputs = append(r.Inputs, f)
	return f
}

// AddOutput declares an output field. Outputs are optional by default.
func (r *Reflection) AddOutput(name, description string) *Field {
	f := &Field{Name: name, Description: description}
	r.Outputs = append(r.Outputs, f)
	return f
}

// Input returns the input field with the given name, or nil.
func (r *Reflection) Input(name string) *Field {
	return findField(r.Inputs, name)
}

// Output returns the output field with the given name, or nil.
func (r *Reflection) Output(name string) *Field {
	return findField(r.Outputs, name)
}

func findField(fields []*Field, name string) *Field {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}
