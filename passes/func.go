// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package passes

import "github.com/gogpu/rendergraph"

// ExecuteFunc is the body of a Func pass.
type ExecuteFunc func(rc rendergraph.RenderContext, p *Func) error

// Func is a pass whose Execute calls a function.
type Func struct {
	Base
	fn ExecuteFunc
}

var _ rendergraph.Pass = (*Func)(nil)

// NewFunc returns a pass declaring the fields of r and running fn.
// A nil fn does nothing.
func NewFunc(info Info, r rendergraph.Reflection, fn ExecuteFunc) *Func {
	return &Func{Base: NewBase(info, r), fn: fn}
}

// Execute calls the pass function.
func (p *Func) Execute(rc rendergraph.RenderContext) error {
	if p.fn == nil {
		return nil
	}
	return p.fn(rc, p)
}
