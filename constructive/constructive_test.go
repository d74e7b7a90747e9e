package constructive_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/dariolupo/tsplab/constructive"
	"github.com/dariolupo/tsplab/distance"
	"github.com/dariolupo/tsplab/tour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() (*distance.Oracle, []constructive.Point) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	o, _ := distance.NewOracle(nodes, distance.L2Real)
	pts := make([]constructive.Point, len(nodes))
	for i, nd := range nodes {
		pts[i] = constructive.Point{Idx: i, X: nd.X, Y: nd.Y}
	}
	return o, pts
}

func TestNearestNeighbourUnitSquare(t *testing.T) {
	o, _ := unitSquare()
	tr := constructive.NearestNeighbourAllStarts(o, 4, time.Time{})
	require.NoError(t, tour.Validate(tr.Succ))
	assert.InDelta(t, 4.0, tr.Cost(o), 1e-6)
}

func TestExtraMileageUnitSquare(t *testing.T) {
	o, pts := unitSquare()
	tr := constructive.ExtraMileage(o, 4, pts)
	require.NoError(t, tour.Validate(tr.Succ))
	assert.InDelta(t, 4.0, tr.Cost(o), 1e-6)
}

func TestMSTShortcutValidTour(t *testing.T) {
	o, _ := unitSquare()
	tr := constructive.MSTShortcut(o, 4)
	require.NoError(t, tour.Validate(tr.Succ))
}

func TestGRASPOneSolutionProducesValidTour(t *testing.T) {
	o, _ := unitSquare()
	rng := rand.New(rand.NewSource(42))
	opts := constructive.GRASPOptions{K: 2, OneSolution: true}
	tr := constructive.GRASP(o, 4, opts, rng, time.Time{})
	require.NotNil(t, tr)
	require.NoError(t, tour.Validate(tr.Succ))
}

func TestRandomProducesValidTour(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := constructive.Random(10, rng)
	require.NoError(t, tour.Validate(tr.Succ))
}

func TestTriangleAllConstructivesOptimal(t *testing.T) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 4}}
	o, _ := distance.NewOracle(nodes, distance.L2Real)
	pts := make([]constructive.Point, len(nodes))
	for i, nd := range nodes {
		pts[i] = constructive.Point{Idx: i, X: nd.X, Y: nd.Y}
	}

	nn := constructive.NearestNeighbourAllStarts(o, 3, time.Time{})
	em := constructive.ExtraMileage(o, 3, pts)
	mst := constructive.MSTShortcut(o, 3)

	assert.InDelta(t, 12.0, nn.Cost(o), 1e-6)
	assert.InDelta(t, 12.0, em.Cost(o), 1e-6)
	assert.InDelta(t, 12.0, mst.Cost(o), 1e-6)
}

func TestExtraMileageSquareWithCentrePoint(t *testing.T) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5}}
	o, _ := distance.NewOracle(nodes, distance.L2Real)
	pts := make([]constructive.Point, len(nodes))
	for i, nd := range nodes {
		pts[i] = constructive.Point{Idx: i, X: nd.X, Y: nd.Y}
	}

	tr := constructive.ExtraMileage(o, 5, pts)
	require.NoError(t, tour.Validate(tr.Succ))

	want := 40.0 + (2*math.Sqrt(50) - 10)
	assert.InDelta(t, want, tr.Cost(o), 1e-6)
}
