// Package solver wires components A-K into the handful of entry points the
// CLI needs: run one named algorithm against one instance, or drive a
// battery test of randomly generated instances in parallel.
package solver

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dariolupo/tsplab/constructive"
	"github.com/dariolupo/tsplab/distance"
	"github.com/dariolupo/tsplab/genetic"
	"github.com/dariolupo/tsplab/internal/solverlog"
	"github.com/dariolupo/tsplab/refine"
	"github.com/dariolupo/tsplab/tabusearch"
	"github.com/dariolupo/tsplab/tour"
	"github.com/dariolupo/tsplab/tracker"
	"github.com/dariolupo/tsplab/vns"
)

// ErrUnknownModel is returned when Options.ModelName does not name a
// recognised algorithm.
var ErrUnknownModel = errors.New("solver: unknown model_name")

// Model names accepted by Options.ModelName.
const (
	ModelNearestNeighbour = "nearest_neighbour"
	ModelGRASP            = "grasp"
	ModelExtraMileage     = "extra_mileage"
	ModelMST              = "mst_shortcut"
	ModelVNS              = "vns"
	ModelTabu             = "tabu_search"
	ModelGenetic          = "genetic"
)

// Options mirrors the CLI surface plus the supplemented --config override.
type Options struct {
	ModelName    string
	TimeLimit    time.Duration
	Seed         int64
	Threads      int
	MemoryMB     int
	IntegerCosts bool
	Verbose      bool
	BatteryTest  int
}

// DefaultOptions returns the normative defaults: one thread, no time limit
// override, nearest-neighbour as the cheapest always-available model.
func DefaultOptions() Options {
	return Options{
		ModelName: ModelNearestNeighbour,
		TimeLimit: 10 * time.Second,
		Seed:      1,
		Threads:   1,
		MemoryMB:  0,
	}
}

// Result is what a single run produces: the final tour, its objective, the
// tracker of incumbent improvements, and wall-clock elapsed time.
type Result struct {
	Tour      *tour.Tour
	Objective float64
	Tracker   *tracker.Tracker
	ElapsedMS float64
}

// Run dispatches to one named algorithm against nodes under the given
// metric, honoring opts.TimeLimit as a deadline from the call's start.
func Run(opts Options, nodes []distance.Node, metric distance.Metric, log *solverlog.Logger) (*Result, error) {
	n := len(nodes)
	start := time.Now()
	deadline := start.Add(opts.TimeLimit)
	rng := rand.New(rand.NewSource(opts.Seed))

	var oracle *distance.Oracle
	var err error
	if metric == distance.Explicit {
		return nil, fmt.Errorf("%w: explicit metric requires RunExplicit", ErrUnknownModel)
	}
	oracle, err = distance.NewOracle(nodes, metric)
	if err != nil {
		return nil, err
	}

	log.Infof("run model=%s n=%d metric=%v time_limit=%s", opts.ModelName, n, metric, opts.TimeLimit)
	return runWithOracle(opts, oracle, n, nodes, rng, start, deadline, log)
}

// RunExplicit is Run for instances whose distances come from an explicit
// weight matrix rather than coordinates. ModelExtraMileage is unavailable
// here: its convex-hull pass requires planar coordinates, which an explicit
// matrix does not carry.
func RunExplicit(opts Options, oracle *distance.Oracle, log *solverlog.Logger) (*Result, error) {
	start := time.Now()
	deadline := start.Add(opts.TimeLimit)
	rng := rand.New(rand.NewSource(opts.Seed))
	n := oracle.N()
	log.Infof("run model=%s n=%d metric=explicit time_limit=%s", opts.ModelName, n, opts.TimeLimit)
	return runWithOracle(opts, oracle, n, nil, rng, start, deadline, log)
}

func runWithOracle(opts Options, d *distance.Oracle, n int, nodes []distance.Node, rng *rand.Rand, start, deadline time.Time, log *solverlog.Logger) (*Result, error) {
	tr := tracker.New()

	var best *tour.Tour
	switch opts.ModelName {
	case ModelNearestNeighbour:
		best = constructive.NearestNeighbourAllStarts(d, n, deadline)
		refine.TwoOpt(best, d, deadline)

	case ModelGRASP:
		gopts := constructive.DefaultGRASPOptions()
		best = constructive.GRASP(d, n, gopts, rng, deadline)
		refine.TwoOpt(best, d, deadline)

	case ModelExtraMileage:
		if nodes == nil {
			return nil, fmt.Errorf("%w: extra_mileage requires planar coordinates", ErrUnknownModel)
		}
		best = constructive.ExtraMileage(d, n, nodesToPoints(nodes))
		refine.TwoOpt(best, d, deadline)

	case ModelMST:
		best = constructive.MSTShortcut(d, n)
		refine.TwoOpt(best, d, deadline)

	case ModelVNS:
		start0 := constructive.NearestNeighbourAllStarts(d, n, deadline)
		refine.TwoOpt(start0, d, deadline)
		tr = vns.Run(start0, d, vns.DefaultOptions(), rng, start, deadline)
		best = start0

	case ModelTabu:
		start0 := constructive.NearestNeighbourAllStarts(d, n, deadline)
		refine.TwoOpt(start0, d, deadline)
		tr = tabusearch.Run(start0, d, tabusearch.DefaultOptions(n), deadline)
		best = start0

	case ModelGenetic:
		gopts := genetic.SizeForN(n)
		var gtr *tracker.Tracker
		best, gtr = genetic.Run(d, n, gopts, rng, start, deadline)
		tr = gtr

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, opts.ModelName)
	}

	obj := best.Cost(d)
	tr.Add(float64(time.Since(start).Milliseconds()), obj)
	log.Infof("done model=%s objective=%.6f elapsed=%s", opts.ModelName, obj, time.Since(start))

	return &Result{
		Tour:      best,
		Objective: obj,
		Tracker:   tr,
		ElapsedMS: float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}

// BatteryResult is one instance's outcome within a battery test.
type BatteryResult struct {
	Index     int
	N         int
	Objective float64
	ElapsedMS float64
	Err       error
}

// RunBattery generates count random Euclidean instances of the given size
// and solves each with opts.ModelName, bounded to opts.Threads concurrent
// workers via errgroup (the core itself never spawns threads; this is the
// boundary-layer parallel-restart path the spec explicitly permits).
func RunBattery(opts Options, count, n int, log *solverlog.Logger) ([]BatteryResult, error) {
	results := make([]BatteryResult, count)
	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}

	var g errgroup.Group
	g.SetLimit(threads)

	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(opts.Seed + int64(i)))
			nodes := randomInstance(n, rng)

			instOpts := opts
			instOpts.Seed = opts.Seed + int64(i)

			res, err := Run(instOpts, nodes, distance.L2Real, log)
			if err != nil {
				results[i] = BatteryResult{Index: i, N: n, Err: err}
				return nil
			}
			results[i] = BatteryResult{Index: i, N: n, Objective: res.Objective, ElapsedMS: res.ElapsedMS}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func nodesToPoints(nodes []distance.Node) []constructive.Point {
	pts := make([]constructive.Point, len(nodes))
	for i, nd := range nodes {
		pts[i] = constructive.Point{Idx: i, X: nd.X, Y: nd.Y}
	}
	return pts
}

func randomInstance(n int, rng *rand.Rand) []distance.Node {
	nodes := make([]distance.Node, n)
	for i := range nodes {
		nodes[i] = distance.Node{X: rng.Float64() * 1000, Y: rng.Float64() * 1000}
	}
	return nodes
}
