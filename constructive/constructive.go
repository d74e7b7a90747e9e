// Package constructive builds initial tours: nearest-neighbour over all
// starts, GRASP (randomised greedy with a bounded top-k pick), extra-mileage
// from a convex hull, an MST-shortcut via Kruskal and union-find, and a
// random-permutation baseline.
package constructive

import (
	"math/rand"
	"sort"
	"time"

	"github.com/dariolupo/tsplab/pqueue"
	"github.com/dariolupo/tsplab/tour"
	"github.com/dariolupo/tsplab/unionfind"
)

// expired checks the deadline every 2048 steps (step&2047==0), matching the
// teacher's throttled-stopwatch idiom so hot loops don't pay a time.Now()
// call on every iteration. A zero deadline means "no limit".
func expired(step int, deadline time.Time) bool {
	if deadline.IsZero() {
		return false
	}
	if step&2047 != 0 {
		return false
	}
	return time.Now().After(deadline)
}

// NearestNeighbourAllStarts builds a tour from every possible starting node
// (subject to deadline), keeping the best. Ties are first-seen-wins because
// a strictly-less comparison never replaces the incumbent on equal cost.
func NearestNeighbourAllStarts(d tour.Dist, n int, deadline time.Time) *tour.Tour {
	var best *tour.Tour
	bestCost := 0.0
	for start := 0; start < n; start++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		t := nearestNeighbourFrom(d, n, start)
		c := t.Cost(d)
		if best == nil || c < bestCost {
			best, bestCost = t, c
		}
	}
	if best == nil {
		best = nearestNeighbourFrom(d, n, 0)
	}
	return best
}

func nearestNeighbourFrom(d tour.Dist, n int, start int) *tour.Tour {
	if n <= 1 {
		return tour.FromIdentity(n)
	}
	visited := make([]bool, n)
	visited[start] = true
	order := make([]int, 1, n)
	order[0] = start
	cur := start
	for len(order) < n {
		bestNext, bestDist := -1, 0.0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			dj := d.Dist(cur, j)
			if bestNext == -1 || dj < bestDist {
				bestNext, bestDist = j, dj
			}
		}
		visited[bestNext] = true
		order = append(order, bestNext)
		cur = bestNext
	}
	return fromOrder(order)
}

func fromOrder(order []int) *tour.Tour {
	n := len(order)
	t := tour.New(n)
	for i := 0; i < n; i++ {
		t.Succ[order[i]] = order[(i+1)%n]
	}
	return t
}

// GRASPOptions configures the Greedy Randomised Adaptive Search Procedure.
type GRASPOptions struct {
	K          int // top-k candidate pool size (GRASP_K, default 3)
	OneSolution bool // run exactly one pass instead of looping on the deadline
}

// DefaultGRASPOptions returns GRASP_K = 3, OneSolution = false.
func DefaultGRASPOptions() GRASPOptions {
	return GRASPOptions{K: 3, OneSolution: false}
}

// GRASP runs the randomised-greedy constructive: random start, at each step
// push every unvisited candidate's insertion cost into a TopKQueue(K) and
// pick one uniformly. Repeats from fresh random starts until the deadline
// (or exactly once if OneSolution), keeping the best.
func GRASP(d tour.Dist, n int, opts GRASPOptions, rng *rand.Rand, deadline time.Time) *tour.Tour {
	var best *tour.Tour
	bestCost := 0.0
	for pass := 0; ; pass++ {
		if pass > 0 && (opts.OneSolution || deadline.IsZero() || time.Now().After(deadline)) {
			break
		}
		start := rng.Intn(n)
		t := graspPass(d, n, start, opts.K, rng)
		c := t.Cost(d)
		if best == nil || c < bestCost {
			best, bestCost = t, c
		}
		if opts.OneSolution {
			break
		}
	}
	return best
}

func graspPass(d tour.Dist, n int, start, k int, rng *rand.Rand) *tour.Tour {
	if n <= 1 {
		return tour.FromIdentity(n)
	}
	visited := make([]bool, n)
	visited[start] = true
	order := make([]int, 1, n)
	order[0] = start
	cur := start
	for len(order) < n {
		tk := pqueue.NewTopK(k)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			tk.Push(d.Dist(cur, j), j)
		}
		pick, err := tk.RandomPick(rng)
		if err != nil {
			break
		}
		visited[pick.Val] = true
		order = append(order, pick.Val)
		cur = pick.Val
	}
	return fromOrder(order)
}

// ExtraMileage builds a tour from the convex hull of nodes (Andrew's
// monotone chain), then repeatedly inserts each unvisited node into the
// tour edge that minimises insertion delta d(u,a)+d(u,b)-d(a,b), splitting
// that edge. Ties: first-found wins.
func ExtraMileage(d tour.Dist, n int, coords []Point) *tour.Tour {
	if n <= 3 {
		return tour.FromIdentity(n)
	}
	hull := convexHull(coords)
	if len(hull) < 3 {
		// degenerate (collinear) input: fall back to hull order, which
		// still visits every node once we append the rest below.
		hull = append([]int{}, hull...)
	}
	visited := make([]bool, n)
	order := append([]int{}, hull...)
	for _, v := range order {
		visited[v] = true
	}
	remaining := []int{}
	for i := 0; i < n; i++ {
		if !visited[i] {
			remaining = append(remaining, i)
		}
	}
	order = CompleteByExtraMileage(d, order, remaining)
	return fromOrder(order)
}

// CompleteByExtraMileage repeatedly inserts each node in remaining into the
// cyclic order at the edge minimising insertion delta
// d(u,a)+d(u,b)-d(a,b), splitting that edge. Ties: first-found wins. order
// must already form a closed cycle (its last node wraps back to its first).
func CompleteByExtraMileage(d tour.Dist, order []int, remaining []int) []int {
	order = append([]int{}, order...)
	remaining = append([]int{}, remaining...)
	for len(remaining) > 0 {
		bestU, bestPos, bestDelta := -1, -1, 0.0
		for ri, u := range remaining {
			for pos := 0; pos < len(order); pos++ {
				a := order[pos]
				b := order[(pos+1)%len(order)]
				delta := d.Dist(u, a) + d.Dist(u, b) - d.Dist(a, b)
				if bestU == -1 || delta < bestDelta {
					bestU, bestPos, bestDelta = ri, pos, delta
				}
			}
		}
		u := remaining[bestU]
		newOrder := make([]int, 0, len(order)+1)
		newOrder = append(newOrder, order[:bestPos+1]...)
		newOrder = append(newOrder, u)
		newOrder = append(newOrder, order[bestPos+1:]...)
		order = newOrder
		remaining = append(remaining[:bestU], remaining[bestU+1:]...)
	}
	return order
}

// OrderFromTour returns the visiting order (starting at node 0) implied by
// a successor array, the inverse of fromOrder.
func OrderFromTour(succ []int) []int {
	n := len(succ)
	order := make([]int, 0, n)
	cur := 0
	for i := 0; i < n; i++ {
		order = append(order, cur)
		cur = succ[cur]
	}
	return order
}

// Point is a planar coordinate used by ExtraMileage's convex-hull pass.
type Point struct {
	Idx  int
	X, Y float64
}

// ccw returns >0 if a->b->c turns counter-clockwise, <0 clockwise, 0 collinear.
func ccw(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// convexHull computes the hull via Andrew's monotone chain over a
// lexicographically sorted copy of coords, dropping collinear points (the
// ccw == 0 guard on each chain).
func convexHull(coords []Point) []int {
	pts := append([]Point{}, coords...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	n := len(pts)
	if n < 3 {
		idx := make([]int, n)
		for i, p := range pts {
			idx[i] = p.Idx
		}
		return idx
	}

	build := func(points []Point) []Point {
		hull := make([]Point, 0, len(points))
		for _, p := range points {
			for len(hull) >= 2 && ccw(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		return hull
	}
	lower := build(pts)
	upper := build(reversed(pts))
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)

	idx := make([]int, len(hull))
	for i, p := range hull {
		idx[i] = p.Idx
	}
	return idx
}

func reversed(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// MSTShortcut builds a tour by Kruskal's MST over all N(N-1)/2 edges, then
// enumerating the resulting spanning set's connectivity via union-find's
// next-pointer members and closing the loop. No triangle-inequality
// guarantee is claimed; the result is a feasible tour.
func MSTShortcut(d tour.Dist, n int) *tour.Tour {
	if n <= 1 {
		return tour.FromIdentity(n)
	}
	type edge struct {
		a, b int
		w    float64
	}
	edges := make([]edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, edge{i, j, d.Dist(i, j)})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].w < edges[j].w })

	uf := unionfind.New(n)
	taken := 0
	for _, e := range edges {
		if taken == n-1 {
			break
		}
		if !uf.SameSet(e.a, e.b) {
			uf.Union(e.a, e.b)
			taken++
		}
	}
	// Enumerate the single resulting set via the next-pointer cycle and
	// visit nodes in that order, which is a valid (if not optimal) tour.
	order := uf.Members(0)
	return fromOrder(order)
}

// Random builds a uniformly random permutation tour via Fisher-Yates.
func Random(n int, rng *rand.Rand) *tour.Tour {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return fromOrder(order)
}
