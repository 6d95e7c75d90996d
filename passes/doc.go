// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package passes provides ready-made render passes and the Base type that
// custom passes embed.
//
// A custom pass embeds Base, declares its fields in the Reflection handed
// to NewBase and implements Execute:
//
//	type Blur struct {
//	    passes.Base
//	}
//
//	func NewBlur() *Blur {
//	    var r rendergraph.Reflection
//	    r.AddInput("src", "image to blur")
//	    r.AddOutput("dst", "blurred image").Require()
//	    return &Blur{Base: passes.NewBase(passes.Info{Name: "Blur"}, r)}
//	}
//
//	func (b *Blur) Execute(rc rendergraph.RenderContext) error { ... }
//
// Clear and Record register themselves with passlib under their names.
package passes
