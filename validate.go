// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"errors"
	"fmt"
	"strings"
)

// IsValid asks every pass, in registration order, whether it can execute
// and appends the diagnostics of each failing pass to log, one per line.
// It reports whether all passes are valid. IsValid does not modify the
// graph. log may be nil.
func (g *Graph) IsValid(log *strings.Builder) bool {
	valid := true
	for i, p := range g.passes {
		err := p.Validate()
		if err == nil {
			continue
		}
		valid = false
		if log == nil {
			continue
		}
		msg := g.names[i] + ": " + err.Error()
		log.WriteString(msg)
		if !strings.HasSuffix(msg, "\n") {
			log.WriteByte('\n')
		}
	}
	return valid
}

// Validate is IsValid in error form. The returned error wraps
// ErrInvalidGraph and the per-pass errors.
func (g *Graph) Validate() error {
	var errs []error
	for i, p := range g.passes {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", g.names[i], err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidGraph, errors.Join(errs...))
}
