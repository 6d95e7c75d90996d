// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
)

// SurfaceBackBuffer reports the surface format of a gpucontext provider as
// the back-buffer color format.
//
//	g.OnResizeSwapChain(device.SurfaceBackBuffer{Provider: app}, w, h)
type SurfaceBackBuffer struct {
	Provider gpucontext.DeviceProvider

	// Depth is reported as the depth format. The surface itself has none.
	Depth gputypes.TextureFormat
}

var _ rendergraph.BackBuffer = SurfaceBackBuffer{}

// ColorFormat returns the provider's surface format, or BGRA8Unorm when
// there is no provider or it reports none.
func (b SurfaceBackBuffer) ColorFormat() gputypes.TextureFormat {
	if b.Provider != nil {
		if f := b.Provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			return f
		}
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// DepthFormat returns b.Depth.
func (b SurfaceBackBuffer) DepthFormat() gputypes.TextureFormat {
	return b.Depth
}
