// Package refine implements neighbourhood local search over the successor
// array: full-neighbourhood 2-opt and 3-opt (best-improvement, iterated to a
// local optimum), and a tabu-aware 2-opt pick for use by tabusearch.
package refine

import (
	"time"

	"github.com/dariolupo/tsplab/tour"
)

// Epsilon is the default tolerance used to decide whether a Δ is a strict
// improvement, matching the laboratory-wide default of 1e-9.
const Epsilon = 1e-9

func expired(step int, deadline time.Time) bool {
	if deadline.IsZero() {
		return false
	}
	if step&2047 != 0 {
		return false
	}
	return time.Now().After(deadline)
}

// twoOptDelta computes Δ for replacing edges (i,succ[i]) and (j,succ[j])
// with (i,j) and (succ[i],succ[j]).
func twoOptDelta(d tour.Dist, succ []int, i, j int) float64 {
	return d.Dist(i, j) + d.Dist(succ[i], succ[j]) - d.Dist(i, succ[i]) - d.Dist(j, succ[j])
}

// applyTwoOpt performs the move described by twoOptDelta(i,j): reverse the
// path from succ[i] to j, then rewire the two outer arcs.
func applyTwoOpt(t *tour.Tour, i, j int) {
	a, b := t.Succ[i], t.Succ[j]
	t.ReversePath(t.Succ[i], j)
	t.Succ[i] = j
	t.Succ[a] = b
}

// eligible reports whether (i,j) is a non-degenerate 2-opt candidate: i and
// j must be distinct nodes whose outgoing arcs don't already coincide.
func eligible(succ []int, i, j int) bool {
	if i == j {
		return false
	}
	if succ[i] == j || succ[j] == i {
		return false
	}
	return true
}

// TwoOpt iterates best-improvement full-neighbourhood 2-opt to a local
// optimum, honoring an optional deadline (zero value: unbounded). Always
// returns a feasible tour — the one it was given, possibly improved.
func TwoOpt(t *tour.Tour, d tour.Dist, deadline time.Time) {
	n := t.N()
	if n < 4 {
		return
	}
	step := 0
	for {
		bestI, bestJ, bestDelta := -1, -1, -Epsilon
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				step++
				if expired(step, deadline) {
					goto done
				}
				if !eligible(t.Succ, i, j) {
					continue
				}
				delta := twoOptDelta(d, t.Succ, i, j)
				if delta < bestDelta {
					bestI, bestJ, bestDelta = i, j, delta
				}
			}
		}
		if bestI == -1 {
			break
		}
		applyTwoOpt(t, bestI, bestJ)
	}
done:
}

// TabuPick scans the full 2-opt neighbourhood and returns the best move
// whose endpoints are NOT tabu (current iteration k minus last-move-iter <
// tenure), possibly with positive Δ (an uphill move). ok is false if every
// candidate was tabu.
func TabuPick(t *tour.Tour, d tour.Dist, lastMoveIter []int, k, tenure int) (i, j int, delta float64, ok bool) {
	n := t.N()
	bestDelta := 0.0
	found := false
	isTabu := func(node int) bool {
		return k-lastMoveIter[node] < tenure
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if !eligible(t.Succ, a, b) {
				continue
			}
			if isTabu(a) || isTabu(b) || isTabu(t.Succ[a]) || isTabu(t.Succ[b]) {
				continue
			}
			dl := twoOptDelta(d, t.Succ, a, b)
			if !found || dl < bestDelta {
				i, j, bestDelta, found = a, b, dl, true
			}
		}
	}
	return i, j, bestDelta, found
}

// ApplyTwoOptMove applies the 2-opt move (i,j) in place and returns the
// realised Δ (same value TabuPick reported, recomputed defensively).
func ApplyTwoOptMove(t *tour.Tour, d tour.Dist, i, j int) float64 {
	delta := twoOptDelta(d, t.Succ, i, j)
	applyTwoOpt(t, i, j)
	return delta
}

// ThreeOpt iterates best-improvement full-neighbourhood 3-opt to a local
// optimum. i<j<k range over array indices, not tour positions, so for every
// candidate triple tourOrder first walks the cycle from i to discover
// whether j or k is reached first and relabels them (tj, tk) into tour
// order; the four reconnection cases assume i, tj, tk appear on the tour in
// that order. Ties are not canonicalised between cases (matching the
// original's first-best behaviour — tests must not depend on which case
// fires).
func ThreeOpt(t *tour.Tour, d tour.Dist, deadline time.Time) {
	n := t.N()
	if n < 6 {
		return
	}
	step := 0
	for {
		improved := false
		var bestI, bestTJ, bestTK, bestCase int
		bestDelta := -Epsilon
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for k := j + 1; k < n; k++ {
					step++
					if expired(step, deadline) {
						goto done
					}
					if !distinctArcs(t.Succ, i, j, k) {
						continue
					}
					tj, tk := tourOrder(t.Succ, i, j, k)
					for c := 0; c < 4; c++ {
						delta := threeOptDelta(d, t.Succ, i, tj, tk, c)
						if delta < bestDelta {
							bestI, bestTJ, bestTK, bestCase, bestDelta = i, tj, tk, c, delta
							improved = true
						}
					}
				}
			}
		}
		if !improved {
			break
		}
		applyThreeOpt(t, bestI, bestTJ, bestTK, bestCase)
	}
done:
}

func distinctArcs(succ []int, i, j, k int) bool {
	nodes := []int{i, succ[i], j, succ[j], k, succ[k]}
	for x := 0; x < len(nodes); x++ {
		for y := x + 1; y < len(nodes); y++ {
			if nodes[x] == nodes[y] {
				return false
			}
		}
	}
	return true
}

// tourOrder walks the tour cycle starting at i and reports which of j, k is
// reached first, returning them relabeled (tj, tk) so that i, tj, tk appear
// on the tour in that order. Ported from the original's threeopt_pick walk:
// the first of j, k encountered after i becomes tj, the other becomes tk.
func tourOrder(succ []int, i, j, k int) (tj, tk int) {
	g := i
	swap := 0
	for succ[g] != i {
		if swap == 0 {
			if succ[g] == k {
				swap = 1
			} else if succ[g] == j {
				swap = -1
			}
		}
		g = succ[g]
	}
	if swap == 1 {
		return k, j
	}
	return j, k
}

// threeOptDelta evaluates one of the 4 non-trivial reconnections of edges
// (i,succ[i]), (tj,succ[tj]), (tk,succ[tk]), where i, tj, tk are already in
// tour order (see tourOrder). All four replace the three edges: case 0
// reverses both inner segments, case 1 reconnects them without reversal, and
// cases 2 and 3 reverse one of them.
func threeOptDelta(d tour.Dist, succ []int, i, tj, tk, c int) float64 {
	ii, jj, kk := succ[i], succ[tj], succ[tk]
	old := d.Dist(i, ii) + d.Dist(tj, jj) + d.Dist(tk, kk)
	switch c {
	case 0:
		return d.Dist(i, tj) + d.Dist(ii, tk) + d.Dist(jj, kk) - old
	case 1:
		return d.Dist(i, jj) + d.Dist(tk, ii) + d.Dist(tj, kk) - old
	case 2:
		return d.Dist(i, jj) + d.Dist(tk, tj) + d.Dist(ii, kk) - old
	default:
		return d.Dist(i, tk) + d.Dist(jj, ii) + d.Dist(tj, kk) - old
	}
}

// applyThreeOpt performs reconnection case c for the tour-ordered triple
// (i, tj, tk), reversing the affected internal segments via ReversePath and
// rewiring the three outer arcs. Ported from the original's threeopt_move.
func applyThreeOpt(t *tour.Tour, i, tj, tk, c int) {
	ii, jj, kk := t.Succ[i], t.Succ[tj], t.Succ[tk]
	switch c {
	case 0:
		t.ReversePath(ii, tj)
		t.ReversePath(jj, tk)
		t.Succ[i] = tj
		t.Succ[ii] = tk
		t.Succ[jj] = kk
	case 1:
		t.Succ[i] = jj
		t.Succ[tk] = ii
		t.Succ[tj] = kk
	case 2:
		t.ReversePath(ii, tj)
		t.Succ[i] = jj
		t.Succ[tk] = tj
		t.Succ[ii] = kk
	default:
		t.ReversePath(jj, tk)
		t.Succ[i] = tk
		t.Succ[jj] = ii
		t.Succ[tj] = kk
	}
}
