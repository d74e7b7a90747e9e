// Package tracker records the time-stamped incumbent trajectory of a solver
// run: a strictly-decreasing sequence of (time_ms, objective) points.
package tracker

import (
	"github.com/google/uuid"
)

// Point is one incumbent-improvement record.
type Point struct {
	TimeMS float64
	Obj    float64
}

// Tracker accumulates strict incumbent improvements for a single run,
// identified by a run ID for correlation with battery-test output.
type Tracker struct {
	RunID  uuid.UUID
	points []Point
}

// New creates an empty Tracker with a fresh run ID.
func New() *Tracker {
	return &Tracker{RunID: uuid.New()}
}

// Add appends (timeMS, obj) only if obj strictly improves on the last
// recorded objective (or if this is the first record).
func (tr *Tracker) Add(timeMS, obj float64) {
	if len(tr.points) > 0 && obj >= tr.points[len(tr.points)-1].Obj {
		return
	}
	tr.points = append(tr.points, Point{TimeMS: timeMS, Obj: obj})
}

// Points returns the recorded trajectory in insertion order.
func (tr *Tracker) Points() []Point {
	out := make([]Point, len(tr.points))
	copy(out, tr.points)
	return out
}

// Find returns the earliest time at which the incumbent reached obj
// (exact float match against a recorded point), and whether it was found.
func (tr *Tracker) Find(obj float64) (float64, bool) {
	for _, p := range tr.points {
		if p.Obj == obj {
			return p.TimeMS, true
		}
	}
	return 0, false
}

// Best returns the best (lowest) objective recorded so far, and whether
// anything has been recorded yet.
func (tr *Tracker) Best() (float64, bool) {
	if len(tr.points) == 0 {
		return 0, false
	}
	return tr.points[len(tr.points)-1].Obj, true
}
