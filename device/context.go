// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph"
)

// Context is the rendergraph.RenderContext handed to passes.
type Context struct {
	device hal.Device
	queue  hal.Queue
}

var _ rendergraph.RenderContext = (*Context)(nil)

// NewContext wraps a device and its queue.
func NewContext(device hal.Device, queue hal.Queue) *Context {
	return &Context{device: device, queue: queue}
}

// Device returns the HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// FromProvider builds a Context from a host-supplied device provider
// (e.g. a gogpu window). The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func FromProvider(provider any) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("device: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("device: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("device: provider HalQueue is not hal.Queue")
	}
	return NewContext(device, queue), nil
}
