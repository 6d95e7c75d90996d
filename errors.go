// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import "errors"

// Graph mutation errors. None of them leave the graph partially modified.
var (
	// ErrPassExists is returned when a pass name is already registered.
	ErrPassExists = errors.New("rendergraph: pass name already exists")

	// ErrPassNotFound is returned when a pass name is not registered.
	ErrPassNotFound = errors.New("rendergraph: pass not found")

	// ErrNilPass is returned when AddPass is called with a nil pass.
	ErrNilPass = errors.New("rendergraph: pass is nil")

	// ErrMalformedAddress is returned when a field address is not of the
	// form "PassName.FieldName".
	ErrMalformedAddress = errors.New("rendergraph: field address must be of the form PassName.FieldName")

	// ErrFieldNotFound is returned when a pass does not declare the field
	// in the requested direction.
	ErrFieldNotFound = errors.New("rendergraph: field not found")

	// ErrDestinationBound is returned when an edge targets an input that is
	// already fed by another edge.
	ErrDestinationBound = errors.New("rendergraph: destination field is already bound")

	// ErrEdgeNotFound is returned by RemoveEdge when no such edge exists.
	ErrEdgeNotFound = errors.New("rendergraph: edge not found")

	// ErrBindRejected is returned when a pass refuses a resource passed to
	// SetInput or SetOutput.
	ErrBindRejected = errors.New("rendergraph: pass rejected resource")
)

// Compile and execute errors.
var (
	// ErrInvalidGraph is returned when at least one pass fails validation.
	// The frame is skipped: no pass executes.
	ErrInvalidGraph = errors.New("rendergraph: graph is not valid")

	// ErrMultisample3D is returned when a field requests a multisampled
	// 3-D texture.
	ErrMultisample3D = errors.New("rendergraph: 3D textures cannot be multisampled")

	// ErrOutOfOrder is returned by CheckOrder when passes are not registered
	// in data-flow order.
	ErrOutOfOrder = errors.New("rendergraph: passes are not registered in data-flow order")

	// ErrCycle is returned when the edges form a cycle.
	ErrCycle = errors.New("rendergraph: edges form a cycle")
)
