// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph"
)

// ErrNoDevice is returned when an allocator is used without a device.
var ErrNoDevice = errors.New("device: no HAL device")

// Allocator creates graph textures on a hal.Device. It implements
// rendergraph.Allocator and rendergraph.Releaser.
//
// Every texture gets one default view. Release destroys the view before
// the texture.
type Allocator struct {
	device hal.Device

	mu   sync.Mutex
	live map[*rendergraph.Texture]struct{}
}

var (
	_ rendergraph.Allocator = (*Allocator)(nil)
	_ rendergraph.Releaser  = (*Allocator)(nil)
)

// NewAllocator returns an allocator on device.
func NewAllocator(device hal.Device) *Allocator {
	return &Allocator{
		device: device,
		live:   make(map[*rendergraph.Texture]struct{}),
	}
}

// CreateTexture creates the texture and its view. Render attachment usage
// is added to color and depth targets so passes can draw into them.
func (a *Allocator) CreateTexture(desc rendergraph.TextureDescriptor) (*rendergraph.Texture, error) {
	if a.device == nil {
		return nil, ErrNoDevice
	}

	usage := desc.Usage
	if desc.Dimension == gputypes.TextureDimension2D {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	if desc.SampleCount == 1 {
		usage |= gputypes.TextureUsageCopySrc
	}

	tex, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: desc.Depth},
		MipLevelCount: desc.MipLevelCount,
		SampleCount:   desc.SampleCount,
		Dimension:     desc.Dimension,
		Format:        desc.Format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("device: create texture %s: %w", desc, err)
	}

	view, err := a.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: desc.Label + "_view",
	})
	if err != nil {
		a.device.DestroyTexture(tex)
		return nil, fmt.Errorf("device: create view for %s: %w", desc.Label, err)
	}

	desc.Usage = usage
	t := rendergraph.NewTexture(desc, tex, view)

	a.mu.Lock()
	a.live[t] = struct{}{}
	a.mu.Unlock()

	rendergraph.Logger().Debug("device: texture created", "texture", desc.String())
	return t, nil
}

// Release destroys textures created by this allocator. Unknown and
// already released textures are ignored.
func (a *Allocator) Release(textures []*rendergraph.Texture) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range textures {
		if _, ok := a.live[t]; !ok {
			continue
		}
		delete(a.live, t)
		a.destroy(t)
	}
}

// Live returns the number of textures created and not yet released.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// Destroy releases every texture the allocator still owns.
func (a *Allocator) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for t := range a.live {
		a.destroy(t)
	}
	clear(a.live)
}

func (a *Allocator) destroy(t *rendergraph.Texture) {
	if v := t.View(); v != nil {
		a.device.DestroyTextureView(v)
	}
	if h := t.Handle(); h != nil {
		a.device.DestroyTexture(h)
	}
}
