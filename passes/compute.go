// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package passes

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph"
)

// computeParamsSize is the size of the uniform bound at binding 0:
// width, height and two padding words.
const computeParamsSize = 16

// ErrNoShader is returned by NewCompute for empty WGSL source.
var ErrNoShader = errors.New("passes: compute shader source is empty")

// BindFunc returns the bind group entries for every binding after 0.
// It runs once per Execute, after the uniform buffer is written.
type BindFunc func(device hal.Device, p *Compute) ([]gputypes.BindGroupEntry, error)

// ComputeConfig configures a Compute pass.
type ComputeConfig struct {
	// Source is the WGSL module. Binding 0 of group 0 must be
	//
	//	struct Params { width: u32, height: u32, pad0: u32, pad1: u32 }
	//	@group(0) @binding(0) var<uniform> params: Params;
	Source string

	// EntryPoint defaults to "main".
	EntryPoint string

	// WorkgroupSize is the X and Y size declared by the shader.
	// Defaults to 8.
	WorkgroupSize uint32

	// Target names the output whose size drives the dispatch. When empty
	// or unbound the swap-chain size is used.
	Target string

	// Layout lists the bindings after 0.
	Layout []gputypes.BindGroupLayoutEntry

	// Bind supplies the resources for Layout.
	Bind BindFunc
}

// Compute runs a WGSL compute shader over a 2D grid.
//
// The shader is compiled to SPIR-V once, in NewCompute. The pipeline is
// created on first Execute and rebuilt when the render context switches
// to another device.
type Compute struct {
	Base

	cfg   ComputeConfig
	spirv []uint32

	device     hal.Device
	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
	params     hal.Buffer
}

var _ rendergraph.Pass = (*Compute)(nil)

// NewCompute compiles cfg.Source and returns a pass declaring the fields
// of r.
func NewCompute(info Info, r rendergraph.Reflection, cfg ComputeConfig) (*Compute, error) {
	if cfg.Source == "" {
		return nil, ErrNoShader
	}
	if cfg.EntryPoint == "" {
		cfg.EntryPoint = "main"
	}
	if cfg.WorkgroupSize == 0 {
		cfg.WorkgroupSize = 8
	}
	spirv, err := compileWGSL(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("compute %s: %w", info.Name, err)
	}
	return &Compute{Base: NewBase(info, r), cfg: cfg, spirv: spirv}, nil
}

// compileWGSL compiles WGSL to little-endian SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// SPIRV returns the compiled shader.
func (c *Compute) SPIRV() []uint32 { return c.spirv }

// Workgroups returns the dispatch size for a width x height grid.
func (c *Compute) Workgroups(width, height uint32) (x, y uint32) {
	n := c.cfg.WorkgroupSize
	return (width + n - 1) / n, (height + n - 1) / n
}

// Execute dispatches the shader once over the target size.
func (c *Compute) Execute(rc rendergraph.RenderContext) error {
	if rc == nil || rc.Device() == nil || rc.Queue() == nil {
		return ErrNoDevice
	}
	if err := c.ensurePipeline(rc.Device()); err != nil {
		return err
	}

	width, height := c.targetSize(c.cfg.Target)
	x, y := c.Workgroups(width, height)
	if x == 0 || y == 0 {
		return nil
	}

	var params [computeParamsSize]byte
	binary.LittleEndian.PutUint32(params[0:], width)
	binary.LittleEndian.PutUint32(params[4:], height)
	if err := rc.Queue().WriteBuffer(c.params, 0, params[:]); err != nil {
		return fmt.Errorf("compute %s: write params: %w", c.info.Name, err)
	}

	entries := []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.BufferBinding{Buffer: c.params.NativeHandle(), Offset: 0, Size: computeParamsSize}},
	}
	if c.cfg.Bind != nil {
		extra, err := c.cfg.Bind(c.device, c)
		if err != nil {
			return fmt.Errorf("compute %s: bind: %w", c.info.Name, err)
		}
		entries = append(entries, extra...)
	}

	bg, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   c.info.Name + "_bind",
		Layout:  c.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("compute %s: create bind group: %w", c.info.Name, err)
	}
	defer c.device.DestroyBindGroup(bg)

	return submit(rc, c.info.Name, func(enc hal.CommandEncoder) error {
		pass := enc.BeginComputePass(&hal.ComputePassDescriptor{Label: c.info.Name})
		pass.SetPipeline(c.pipeline)
		pass.SetBindGroup(0, bg, nil)
		pass.Dispatch(x, y, 1)
		pass.End()

		rendergraph.Logger().Debug("passes: compute dispatched",
			"pass", c.info.Name, "width", width, "height", height, "x", x, "y", y)
		return nil
	})
}

func (c *Compute) ensurePipeline(device hal.Device) error {
	if c.pipeline != nil && c.device == device {
		return nil
	}
	c.Destroy()
	c.device = device

	label := c.info.Name
	if err := c.createPipeline(label); err != nil {
		c.Destroy()
		return fmt.Errorf("compute %s: %w", label, err)
	}
	return nil
}

func (c *Compute) createPipeline(label string) error {
	module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: c.spirv},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	c.module = module

	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(c.cfg.Layout)+1)
	entries = append(entries, gputypes.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: gputypes.ShaderStageCompute,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	})
	entries = append(entries, c.cfg.Layout...)

	bindLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	c.bindLayout = bindLayout

	pipeLayout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	c.pipeLayout = pipeLayout

	pipeline, err := c.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   label,
		Layout:  c.pipeLayout,
		Compute: hal.ComputeState{Module: c.module, EntryPoint: c.cfg.EntryPoint},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	c.pipeline = pipeline

	params, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_params",
		Size:  computeParamsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	c.params = params
	return nil
}

// Destroy releases the pipeline and its resources. The pass can execute
// again afterwards.
func (c *Compute) Destroy() {
	if c.device == nil {
		return
	}
	if c.params != nil {
		c.device.DestroyBuffer(c.params)
		c.params = nil
	}
	if c.pipeline != nil {
		c.device.DestroyComputePipeline(c.pipeline)
		c.pipeline = nil
	}
	if c.pipeLayout != nil {
		c.device.DestroyPipelineLayout(c.pipeLayout)
		c.pipeLayout = nil
	}
	if c.bindLayout != nil {
		c.device.DestroyBindGroupLayout(c.bindLayout)
		c.bindLayout = nil
	}
	if c.module != nil {
		c.device.DestroyShaderModule(c.module)
		c.module = nil
	}
	c.device = nil
}
