// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"fmt"
	"strings"
)

// CheckOrder reports edges whose producer is registered after (or is the
// same pass as) its consumer. Such a graph still executes in registration
// order, so the consumer reads the producer's output of the previous frame
// or an uninitialized texture. The returned error wraps ErrOutOfOrder and,
// when the edges form a cycle, ErrCycle.
func (g *Graph) CheckOrder() error {
	var bad []string
	for _, e := range g.edges {
		if g.nameToIndex[e.SrcPass] >= g.nameToIndex[e.DstPass] {
			bad = append(bad, e.String())
		}
	}
	if len(bad) == 0 {
		return nil
	}

	if order, err := g.TopologicalOrder(); err == nil {
		return fmt.Errorf("%w: %s (a valid order is %s)", ErrOutOfOrder,
			strings.Join(bad, ", "), strings.Join(order, ", "))
	}
	return fmt.Errorf("%w: %w: %s", ErrOutOfOrder, ErrCycle, strings.Join(bad, ", "))
}

// TopologicalOrder returns the pass names in an order that runs every
// producer before its consumers. Among passes that are ready at the same
// time, the earlier registered one comes first, so a correctly registered
// graph yields its registration order. The graph itself is not reordered.
func (g *Graph) TopologicalOrder() ([]string, error) {
	n := len(g.passes)
	indegree := make([]int, n)
	consumers := make([][]int, n)
	for _, e := range g.edges {
		s, d := g.nameToIndex[e.SrcPass], g.nameToIndex[e.DstPass]
		consumers[s] = append(consumers[s], d)
		indegree[d]++
	}

	order := make([]string, 0, n)
	done := make([]bool, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i := 0; i < n; i++ {
				if !done[i] {
					stuck = append(stuck, g.names[i])
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(stuck, ", "))
		}
		done[next] = true
		order = append(order, g.names[next])
		for _, d := range consumers[next] {
			indegree[d]--
		}
	}
	return order, nil
}
