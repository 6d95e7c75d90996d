// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package device connects a render graph to a WebGPU HAL device.
//
// Allocator creates the textures the graph compiler asks for and destroys
// them once a newer generation replaces them. Context carries the device
// and queue to every pass during Execute.
//
// The host application usually owns the device:
//
//	rc, err := device.FromProvider(provider)
//	g := rendergraph.New(rendergraph.WithAllocator(device.NewAllocator(rc.Device())))
//	...
//	err = g.Execute(rc)
//
// Open creates a standalone device for tools and tests.
package device
