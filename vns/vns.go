// Package vns implements Variable Neighborhood Search: a kick + refinement
// loop with adaptive kick strength that widens on stagnation and resets on
// improvement.
package vns

import (
	"math/rand"
	"time"

	"github.com/dariolupo/tsplab/kick"
	"github.com/dariolupo/tsplab/refine"
	"github.com/dariolupo/tsplab/tour"
	"github.com/dariolupo/tsplab/tracker"
)

// Options configures a VNS run. Defaults match the laboratory-wide tuning
// constants (GRASP_K is irrelevant here; VNS's own constants are K_START,
// K_STEP, K_MAX).
type Options struct {
	KStart  int
	KStep   int
	KMax    int
	Use3Opt bool
	Epsilon float64
}

// DefaultOptions returns K_START=5, K_STEP=1, K_MAX=20, EPSILON=1e-9,
// 2-opt only.
func DefaultOptions() Options {
	return Options{KStart: 5, KStep: 1, KMax: 20, Use3Opt: false, Epsilon: 1e-9}
}

// Run improves t in place until the deadline expires or k reaches KMax,
// returning the Tracker recording every strict incumbent improvement. The
// objective sequence recorded is strictly decreasing by construction (only
// strict improvements are ever recorded).
func Run(t *tour.Tour, d tour.Dist, opts Options, rng *rand.Rand, start time.Time, deadline time.Time) *tracker.Tracker {
	tr := tracker.New()
	n := t.N()
	maxStrength := n/2 - 1
	if maxStrength < 2 {
		// too small for any kick: just refine once and stop.
		refineInPlace(t, d, opts, deadline)
		tr.Add(elapsedMS(start), t.Cost(d))
		return tr
	}

	best := t.Clone()
	bestCost := best.Cost(d)
	tr.Add(elapsedMS(start), bestCost)

	k := opts.KStart
	first := true
	for k < opts.KMax {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		if !first {
			strength := k
			if strength > maxStrength {
				strength = maxStrength
			}
			_ = kick.Run(t, strength, rng)
		}
		first = false

		refineInPlace(t, d, opts, deadline)

		cost := t.Cost(d)
		if cost < bestCost-opts.Epsilon {
			best = t.Clone()
			bestCost = cost
			tr.Add(elapsedMS(start), bestCost)
			k = opts.KStart
		} else {
			k += opts.KStep
		}
	}

	t.Succ = best.Succ
	return tr
}

func refineInPlace(t *tour.Tour, d tour.Dist, opts Options, deadline time.Time) {
	refine.TwoOpt(t, d, deadline)
	if opts.Use3Opt {
		refine.ThreeOpt(t, d, deadline)
	}
}

func elapsedMS(start time.Time) float64 {
	if start.IsZero() {
		return 0
	}
	return float64(time.Since(start).Microseconds()) / 1000.0
}
