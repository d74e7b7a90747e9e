// Package tabusearch implements tabu-guided 2-opt: best non-tabu moves are
// accepted unconditionally (even uphill), a node-tabu list with a phased
// tenure prevents immediate move reversal, and a downhill flag detects each
// local-minimum crossing to snapshot a new incumbent candidate.
package tabusearch

import (
	"math"
	"time"

	"github.com/dariolupo/tsplab/refine"
	"github.com/dariolupo/tsplab/tour"
	"github.com/dariolupo/tsplab/tracker"
)

// Options configures a tabu search run.
type Options struct {
	MinTenure     int
	MaxTenure     int
	PhaseDuration int
	Epsilon       float64
	MaxIterations int
}

// DefaultOptions returns MIN_TENURE=ceil(n/20), MAX_TENURE=ceil(n/10),
// PHASE_DURATION=100, EPSILON=1e-9 for the given instance size n.
func DefaultOptions(n int) Options {
	return Options{
		MinTenure:     ceilDiv(n, 20),
		MaxTenure:     ceilDiv(n, 10),
		PhaseDuration: 100,
		Epsilon:       1e-9,
		MaxIterations: 10000,
	}
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 1
	}
	v := (n + d - 1) / d
	if v < 1 {
		return 1
	}
	return v
}

const negInf = math.MinInt64 / 2

// Run improves t in place, returning the Tracker of recorded incumbent
// improvements. t is left as the best tour found (B), re-checked against
// the final working tour C on exit.
func Run(t *tour.Tour, d tour.Dist, opts Options, deadline time.Time) *tracker.Tracker {
	start := time.Now()
	tr := tracker.New()

	n := t.N()
	best := t.Clone()
	bestCost := best.Cost(d)
	tr.Add(0, bestCost)

	current := t.Clone()
	currentCost := current.Cost(d)

	lastMoveIter := make([]int, n)
	for i := range lastMoveIter {
		lastMoveIter[i] = negInf
	}

	tenure := opts.MaxTenure
	downhill := false

	for k := 0; k < opts.MaxIterations; k++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		i, j, delta, ok := refine.TabuPick(current, d, lastMoveIter, k, tenure)
		if !ok {
			break
		}

		if delta > opts.Epsilon && downhill {
			if currentCost < bestCost {
				best = current.Clone()
				bestCost = currentCost
				tr.Add(msSince(start), bestCost)
			}
			downhill = false
		}
		if delta < -opts.Epsilon {
			downhill = true
		}

		realized := refine.ApplyTwoOptMove(current, d, i, j)
		currentCost += realized

		if realized > opts.Epsilon {
			lastMoveIter[i] = k
			lastMoveIter[j] = k
		}

		if opts.PhaseDuration > 0 && (k+1)%opts.PhaseDuration == 0 {
			if tenure == opts.MaxTenure {
				tenure = opts.MinTenure
			} else {
				tenure = opts.MaxTenure
			}
		}
	}

	if currentCost < bestCost {
		best = current.Clone()
		bestCost = currentCost
		tr.Add(msSince(start), bestCost)
	}

	t.Succ = best.Succ
	return tr
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
