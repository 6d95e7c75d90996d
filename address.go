// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"fmt"
	"strings"
)

// direction selects the input or output field list of a pass.
type direction int

const (
	dirInput direction = iota
	dirOutput
)

func (d direction) String() string {
	if d == dirInput {
		return "input"
	}
	return "output"
}

// ParseAddress splits a "PassName.FieldName" address. The address must
// contain exactly one dot.
func ParseAddress(address string) (pass, field string, err error) {
	if strings.Count(address, ".") != 1 {
		return "", "", fmt.Errorf("%w, got %q", ErrMalformedAddress, address)
	}
	pass, field, _ = strings.Cut(address, ".")
	return pass, field, nil
}

// endpoint is a resolved field address.
type endpoint struct {
	pass  Pass
	name  string
	field string
}

// resolve parses address and checks that the pass exists and declares the
// field in the given direction. op names the public entry point for the
// warning that is logged on failure.
func (g *Graph) resolve(op, address string, dir direction) (endpoint, error) {
	passName, field, err := ParseAddress(address)
	if err != nil {
		g.logger().Warn("rendergraph: "+op+": bad field address", "address", address)
		return endpoint{}, err
	}

	index, ok := g.nameToIndex[passName]
	if !ok {
		g.logger().Warn("rendergraph: "+op+": can't find render pass", "pass", passName)
		return endpoint{}, fmt.Errorf("%w: %q", ErrPassNotFound, passName)
	}

	p := g.passes[index]
	r := p.Reflect()
	fields := r.Inputs
	if dir == dirOutput {
		fields = r.Outputs
	}
	if findField(fields, field) == nil {
		g.logger().Warn("rendergraph: "+op+": can't find field", "pass", passName, "field", field, "direction", dir.String())
		return endpoint{}, fmt.Errorf("%w: %s field %q in pass %q", ErrFieldNotFound, dir, field, passName)
	}

	return endpoint{pass: p, name: passName, field: field}, nil
}
