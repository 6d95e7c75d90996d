// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package passes

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph"
)

// ClearInfo describes the Clear pass.
var ClearInfo = Info{Name: "Clear", Description: "Clears a render target to a solid color"}

// Clear fills its "color" output with a solid color.
type Clear struct {
	Base

	// Color is the clear value used by the next Execute.
	Color gputypes.Color
}

var _ rendergraph.Pass = (*Clear)(nil)

// NewClear returns a Clear pass with the given color.
func NewClear(color gputypes.Color) *Clear {
	var r rendergraph.Reflection
	r.AddOutput("color", "cleared render target").
		Flags(gputypes.TextureUsageRenderAttachment).
		Require()
	return &Clear{Base: NewBase(ClearInfo, r), Color: color}
}

// Execute records a render pass that loads with clear and stores.
func (c *Clear) Execute(rc rendergraph.RenderContext) error {
	target := c.OutputTexture("color")
	if target == nil || target.View() == nil {
		return fmt.Errorf("clear: output %q has no texture view", "color")
	}
	return submit(rc, "rendergraph_clear", func(enc hal.CommandEncoder) error {
		rp := enc.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: "rendergraph_clear_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:       target.View(),
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: c.Color,
			}},
		})
		rp.End()
		return nil
	})
}
