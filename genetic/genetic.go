// Package genetic implements a memetic/genetic engine: a population of
// tours evolved by splicing a tour-prefix crossover (inherit half of one
// parent, extend via the other, complete by extra-mileage insertion) and
// periodically culled back down to the fittest n.
package genetic

import (
	"math/rand"
	"sort"
	"time"

	"github.com/dariolupo/tsplab/constructive"
	"github.com/dariolupo/tsplab/refine"
	"github.com/dariolupo/tsplab/tour"
	"github.com/dariolupo/tsplab/tracker"
)

// Options configures population size, children per generation, whether
// children get a 2-opt polish, and whether the final result gets an extended
// 2-opt pass (large N).
type Options struct {
	PopulationSize int
	Children       int
	Refine2Opt     bool // apply 2-opt to each child (only worthwhile for N < 750)
	FinalExtended  bool // N >= 750: shrink remaining time 10% and run a final longer 2-opt
}

// SizeForN returns the size-calibrated (population, children) pair from the
// laboratory's tuning table, plus whether this N needs the final-extended
// 2-opt tail (N >= 750).
func SizeForN(n int) Options {
	switch {
	case n < 100:
		return Options{PopulationSize: 1000, Children: 100, Refine2Opt: true}
	case n < 400:
		return Options{PopulationSize: 600, Children: 60, Refine2Opt: true}
	case n < 750:
		return Options{PopulationSize: 120, Children: 40, Refine2Opt: true}
	default:
		return Options{PopulationSize: 1000, Children: 100, Refine2Opt: false, FinalExtended: true}
	}
}

type individual struct {
	t    *tour.Tour
	cost float64
}

// Run evolves a population of tours for the given instance until the
// deadline, returning the best tour found and the Tracker of incumbent
// improvements.
func Run(d tour.Dist, n int, opts Options, rng *rand.Rand, start, deadline time.Time) (*tour.Tour, *tracker.Tracker) {
	tr := tracker.New()

	pop := make([]individual, 0, opts.PopulationSize)
	for i := 0; i < opts.PopulationSize; i++ {
		t := constructive.Random(n, rng)
		if n < 200 {
			refine.TwoOpt(t, d, deadline)
		}
		pop = append(pop, individual{t: t, cost: t.Cost(d)})
	}
	sortByCost(pop)
	bestCost := pop[0].cost
	tr.Add(msSince(start), bestCost)

	genDeadline := deadline
	if opts.FinalExtended && !deadline.IsZero() {
		remaining := time.Until(deadline)
		genDeadline = time.Now().Add(remaining * 9 / 10)
	}

	for {
		if !genDeadline.IsZero() && time.Now().After(genDeadline) {
			break
		}
		children := make([]individual, 0, opts.Children)
		for len(children) < opts.Children {
			p1 := pop[rng.Intn(len(pop))]
			p2 := pop[rng.Intn(len(pop))]
			child := crossover(d, n, p1.t, p2.t)
			if opts.Refine2Opt {
				refine.TwoOpt(child, d, genDeadline)
			}
			children = append(children, individual{t: child, cost: child.Cost(d)})
		}
		pop = append(pop, children...)
		sortByCost(pop)
		if len(pop) > opts.PopulationSize {
			pop = pop[:opts.PopulationSize]
		}
		if pop[0].cost < bestCost-1e-9 {
			bestCost = pop[0].cost
			tr.Add(msSince(start), bestCost)
		}
	}

	best := pop[0].t
	if opts.FinalExtended {
		refine.TwoOpt(best, d, deadline)
		cost := best.Cost(d)
		if cost < bestCost-1e-9 {
			bestCost = cost
			tr.Add(msSince(start), bestCost)
		}
	}

	return best, tr
}

func sortByCost(pop []individual) {
	sort.Slice(pop, func(i, j int) bool { return pop[i].cost < pop[j].cost })
}

// crossover copies the first floor(n/2) nodes of parent1's tour starting at
// node 0, then takes the node parent1 visits next and appends the nodes that
// follow it in parent2, stopping at the first node already on the path; the
// remaining nodes are inserted by extra-mileage.
func crossover(d tour.Dist, n int, p1, p2 *tour.Tour) *tour.Tour {
	half := n / 2
	visited := make([]bool, n)
	path := make([]int, 0, n)

	cur := 0
	for len(path) < half {
		path = append(path, cur)
		visited[cur] = true
		cur = p1.Succ[cur]
	}

	for {
		next := p2.Succ[cur]
		if visited[next] {
			break
		}
		path = append(path, next)
		visited[next] = true
		cur = next
		if len(path) == n {
			break
		}
	}

	remaining := make([]int, 0, n-len(path))
	for i := 0; i < n; i++ {
		if !visited[i] {
			remaining = append(remaining, i)
		}
	}
	order := constructive.CompleteByExtraMileage(d, path, remaining)
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

func msSince(start time.Time) float64 {
	if start.IsZero() {
		return 0
	}
	return float64(time.Since(start).Microseconds()) / 1000.0
}
