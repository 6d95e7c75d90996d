// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package passes

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph"
)

// submitTimeout bounds the wait for one pass's command buffer.
const submitTimeout = 5 * time.Second

// pollInterval is the sleep between completion checks while waiting.
const pollInterval = 100 * time.Microsecond

// ErrNoDevice is returned by passes executed without a device.
var ErrNoDevice = errors.New("passes: render context has no device")

// ErrTimeout is returned when a submission does not complete in time.
var ErrTimeout = errors.New("passes: timed out waiting for the GPU")

// submit records one command buffer with record, submits it and waits for
// the GPU to finish. The encoder is discarded if record fails.
func submit(rc rendergraph.RenderContext, label string, record func(enc hal.CommandEncoder) error) error {
	if rc == nil || rc.Device() == nil || rc.Queue() == nil {
		return ErrNoDevice
	}
	device, queue := rc.Device(), rc.Queue()

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	if err := record(encoder); err != nil {
		encoder.DiscardEncoding()
		return err
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	idx, err := queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return waitSubmission(queue, idx, submitTimeout)
}

// waitSubmission blocks until queue reports submission idx as completed.
func waitSubmission(queue hal.Queue, idx uint64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for queue.PollCompleted() < idx {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d not completed after %v", ErrTimeout, idx, timeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}
