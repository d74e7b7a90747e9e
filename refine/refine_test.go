package refine_test

import (
	"testing"
	"time"

	"github.com/dariolupo/tsplab/distance"
	"github.com/dariolupo/tsplab/refine"
	"github.com/dariolupo/tsplab/tour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoOptFixesCrossedUnitSquare(t *testing.T) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	o, err := distance.NewOracle(nodes, distance.L2Real)
	require.NoError(t, err)

	// crossed tour: 0 -> 2 -> 1 -> 3 -> 0 (diagonals)
	tr := &tour.Tour{Succ: []int{2, 3, 1, 0}}
	before := tr.Cost(o)

	refine.TwoOpt(tr, o, time.Time{})

	require.NoError(t, tour.Validate(tr.Succ))
	after := tr.Cost(o)
	assert.LessOrEqual(t, after, before)
	assert.InDelta(t, 4.0, after, 1e-6)
}

func TestTwoOptNoChangeOnLocalOptimum(t *testing.T) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	o, _ := distance.NewOracle(nodes, distance.L2Real)
	tr := tour.FromIdentity(4)
	refine.TwoOpt(tr, o, time.Time{})
	before := tr.Clone()
	refine.TwoOpt(tr, o, time.Time{})
	assert.Equal(t, before.Succ, tr.Succ)
}

func TestThreeOptProducesValidTour(t *testing.T) {
	nodes := []distance.Node{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 5}, {X: 2, Y: 8},
	}
	o, _ := distance.NewOracle(nodes, distance.L2Real)
	tr := tour.FromIdentity(6)
	before := tr.Cost(o)

	refine.ThreeOpt(tr, o, time.Time{})

	require.NoError(t, tour.Validate(tr.Succ))
	assert.LessOrEqual(t, tr.Cost(o), before+1e-9)
}

// TestThreeOptHandlesTourOrderMismatch reproduces a triple where the array
// indices i<j<k do not appear on the tour in that order: starting from the
// cycle 0->4->2->5->1->3->0, the triple (i=0,j=1,k=2) has k (node 2) visited
// before j (node 1). Without relabeling via tourOrder, threeOptDelta and
// applyThreeOpt disagree on which segment is reversed and corrupt succ into
// a non-permutation; this guards against that regression.
func TestThreeOptHandlesTourOrderMismatch(t *testing.T) {
	nodes := []distance.Node{
		{X: 0, Y: 0}, {X: 3, Y: 1}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 2, Y: 4}, {X: 0, Y: 5},
	}
	o, err := distance.NewOracle(nodes, distance.L2Real)
	require.NoError(t, err)

	tr := &tour.Tour{Succ: []int{4, 3, 5, 0, 2, 1}}
	require.NoError(t, tour.Validate(tr.Succ))
	before := tr.Cost(o)

	refine.ThreeOpt(tr, o, time.Time{})

	require.NoError(t, tour.Validate(tr.Succ))
	assert.LessOrEqual(t, tr.Cost(o), before+1e-9)
}

func TestTabuPickSkipsTabuEndpoints(t *testing.T) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	o, _ := distance.NewOracle(nodes, distance.L2Real)
	tr := &tour.Tour{Succ: []int{2, 3, 1, 0}} // crossed, improvable via (0,1)

	lastMoveIter := []int{-1 << 30, -1 << 30, -1 << 30, -1 << 30}
	lastMoveIter[0] = 5 // node 0 is tabu at iteration 10 with tenure 10

	_, _, _, ok := refine.TabuPick(tr, o, lastMoveIter, 10, 10)
	// every eligible candidate touches node 0, either as an endpoint or as
	// an endpoint's successor (succ[3] == 0), and (1,2) is degenerate, so
	// with node 0 tabu no move is available.
	assert.False(t, ok)
}

func TestTabuPickFindsMoveWhenNoneTabu(t *testing.T) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	o, _ := distance.NewOracle(nodes, distance.L2Real)
	tr := &tour.Tour{Succ: []int{2, 3, 1, 0}}

	lastMoveIter := []int{-1 << 30, -1 << 30, -1 << 30, -1 << 30}
	i, j, delta, ok := refine.TabuPick(tr, o, lastMoveIter, 0, 10)
	require.True(t, ok)
	assert.NotEqual(t, i, j)
	assert.LessOrEqual(t, delta, 0.0)
}
