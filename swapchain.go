// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import "github.com/gogpu/gputypes"

// BackBuffer reports the formats of the presentation target.
// device.SurfaceBackBuffer adapts a gpucontext.DeviceProvider.
type BackBuffer interface {
	ColorFormat() gputypes.TextureFormat
	DepthFormat() gputypes.TextureFormat
}

// Formats is a BackBuffer with fixed formats.
type Formats struct {
	Color gputypes.TextureFormat
	Depth gputypes.TextureFormat
}

// ColorFormat returns f.Color.
func (f Formats) ColorFormat() gputypes.TextureFormat { return f.Color }

// DepthFormat returns f.Depth.
func (f Formats) DepthFormat() gputypes.TextureFormat { return f.Depth }

// SwapChain is the cached description of the default render target. Its
// color format and size seed every field that does not specify its own.
type SwapChain struct {
	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat
	Width       uint32
	Height      uint32
}

// OnResizeSwapChain records the new back-buffer formats and size, sets the
// recompile flag when any of them changed, and forwards the new swap chain
// to every pass regardless.
//
// bb must not be nil.
func (g *Graph) OnResizeSwapChain(bb BackBuffer, width, height uint32) {
	next := SwapChain{
		ColorFormat: bb.ColorFormat(),
		DepthFormat: bb.DepthFormat(),
		Width:       width,
		Height:      height,
	}
	if next != g.swapChain {
		g.recompile = true
	}
	g.swapChain = next

	for _, p := range g.passes {
		p.OnResizeSwapChain(next)
	}
}

// SwapChain returns the cached swap-chain description.
func (g *Graph) SwapChain() SwapChain {
	return g.swapChain
}
