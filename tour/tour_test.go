package tour_test

import (
	"testing"

	"github.com/dariolupo/tsplab/tour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDist struct{ m [][]float64 }

func (f fakeDist) Dist(i, j int) float64 { return f.m[i][j] }

func TestFromIdentityValidates(t *testing.T) {
	tr := tour.FromIdentity(5)
	require.NoError(t, tour.Validate(tr.Succ))
}

func TestValidateRejectsNonPermutation(t *testing.T) {
	err := tour.Validate([]int{1, 1, 2})
	assert.ErrorIs(t, err, tour.ErrNotPermutation)
}

func TestValidateRejectsTwoCycles(t *testing.T) {
	// 0<->1 and 2<->3: two separate 2-cycles.
	err := tour.Validate([]int{1, 0, 3, 2})
	assert.ErrorIs(t, err, tour.ErrNotSingleCycle)
}

func TestCostUnitSquare(t *testing.T) {
	// (0,0) (1,0) (1,1) (0,1) in identity order: perimeter = 4.
	d := fakeDist{m: [][]float64{
		{0, 1, 1.41421356, 1},
		{1, 0, 1, 1.41421356},
		{1.41421356, 1, 0, 1},
		{1, 1.41421356, 1, 0},
	}}
	tr := tour.FromIdentity(4)
	assert.InDelta(t, 4.0, tr.Cost(d), 1e-6)
}

func TestReversePathPreservesNodeSet(t *testing.T) {
	tr := tour.FromIdentity(6) // 0->1->2->3->4->5->0
	tr.ReversePath(1, 4)       // reverse the 1..4 segment
	// 2, 3 and 4 now point at their old predecessors; the arcs 0->1 and
	// 1->2 are untouched and left for the caller to rewire.
	assert.Equal(t, []int{1, 2, 1, 2, 3, 0}, tr.Succ)

	// Close the move as a 2-opt caller does: the predecessor of the old
	// path (node 0) points at 4 (new head), and 1 points past the old end.
	tr.Succ[0] = 4
	tr.Succ[1] = 5
	require.NoError(t, tour.Validate(tr.Succ))

	// walking from 0 should still visit all 6 nodes exactly once, with the
	// segment in reverse order.
	seen := map[int]bool{}
	order := make([]int, 0, 6)
	cur := 0
	for i := 0; i < 6; i++ {
		seen[cur] = true
		order = append(order, cur)
		cur = tr.Succ[cur]
	}
	assert.Equal(t, []int{0, 4, 3, 2, 1, 5}, order)
	assert.Len(t, seen, 6)
}

func TestEdgesSuccRoundTrip(t *testing.T) {
	tr := tour.FromIdentity(5)
	edges := tour.SuccToEdges(tr.Succ)
	assert.Len(t, edges, 5)

	succ, err := tour.EdgesToSucc(5, edges)
	require.NoError(t, err)
	assert.Equal(t, tr.Succ, succ)
}

func TestEdgesToSuccDetectsInfeasible(t *testing.T) {
	// A triangle on 0,1,2 plus a self-loop edge on 3: every node has degree
	// 2, but the edges form two cycles rather than one Hamiltonian cycle.
	edges := []tour.Edge{{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 0}, {A: 3, B: 3}}
	_, err := tour.EdgesToSucc(4, edges)
	assert.Error(t, err)
}
