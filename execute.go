// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"fmt"
	"strings"
)

// Execute runs one frame. It compiles the graph if needed, validates it
// and runs every pass in registration order.
//
// When any pass is invalid no pass runs and the returned error wraps
// ErrInvalidGraph. Nothing needs undoing in that case; fix the graph and
// call Execute again on the next frame. A pass error stops the frame and
// is returned wrapped with the pass name.
//
// rc is handed to every pass unmodified.
func (g *Graph) Execute(rc RenderContext) error {
	if err := g.Compile(); err != nil {
		return err
	}

	var log strings.Builder
	if !g.IsValid(&log) {
		g.logger().Warn("rendergraph: graph is not valid, skipping frame", "diagnostics", log.String())
		return fmt.Errorf("%w:\n%s", ErrInvalidGraph, log.String())
	}

	for i, p := range g.passes {
		if err := p.Execute(rc); err != nil {
			return fmt.Errorf("rendergraph: execute pass %q: %w", g.names[i], err)
		}
	}
	return nil
}
