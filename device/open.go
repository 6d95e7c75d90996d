// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Backend names accepted by Open.
const (
	BackendNoop   = "noop"
	BackendVulkan = "vulkan"
)

// Standalone is a device opened by this package rather than by a host.
// It owns the HAL instance and must be closed.
type Standalone struct {
	*Context

	instance hal.Instance

	// Name is the adapter name reported by the driver.
	Name string
}

// Open creates an instance of the named backend and opens its preferred
// adapter: the first discrete or integrated GPU, or else the first one.
func Open(backend string) (*Standalone, error) {
	var (
		instance hal.Instance
		err      error
	)
	switch backend {
	case BackendNoop:
		api := noop.API{}
		instance, err = api.CreateInstance(nil)
	case BackendVulkan:
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("device: vulkan backend not available")
		}
		instance, err = b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	default:
		return nil, fmt.Errorf("device: unknown backend %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("device: create %s instance: %w", backend, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("device: no %s adapters found", backend)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("device: open %s: %w", selected.Info.Name, err)
	}

	return &Standalone{
		Context:  NewContext(openDev.Device, openDev.Queue),
		instance: instance,
		Name:     selected.Info.Name,
	}, nil
}

// Close destroys the device and its instance. Textures created on the
// device must be released first.
func (s *Standalone) Close() {
	if s.device != nil {
		s.device.Destroy()
		s.device = nil
	}
	if s.instance != nil {
		s.instance.Destroy()
		s.instance = nil
	}
	s.queue = nil
}
