// Package mip specifies the boundary to the mixed-integer-programming
// collaborator (symmetric degree model, MTZ, Gavish-Graves, Benders cuts,
// hard/soft fixing matheuristics around a commercial LP solver) as an
// interface only. It is deliberately never implemented beyond a
// deterministic stub: optimality proofs are explicitly out of scope for the
// heuristic/metaheuristic core.
package mip

import (
	"errors"

	"github.com/dariolupo/tsplab/tour"
)

// ErrNotImplemented is returned by any Collaborator that does not wrap a
// real external solver.
var ErrNotImplemented = errors.New("mip: no external solver configured")

// Collaborator consumes a tour and returns one, exactly as the core sees it:
// a single blocking call whose internal multi-threading (if any) is opaque.
type Collaborator interface {
	Solve(t *tour.Tour, d tour.Dist) (*tour.Tour, error)
}

// NoopCollaborator always returns ErrNotImplemented; it exists so callers
// can wire the interface boundary end-to-end in tests without a real
// solver present.
type NoopCollaborator struct{}

// Solve implements Collaborator.
func (NoopCollaborator) Solve(t *tour.Tour, d tour.Dist) (*tour.Tour, error) {
	return nil, ErrNotImplemented
}
