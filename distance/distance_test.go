package distance_test

import (
	"testing"

	"github.com/dariolupo/tsplab/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitSquareL2Real(t *testing.T) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	o, err := distance.NewOracle(nodes, distance.L2Real)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, o.Dist(0, 1), 1e-9)
	assert.InDelta(t, 1.0, o.Dist(1, 2), 1e-9)
	assert.InDelta(t, 0.0, o.Dist(0, 0), 1e-9)
	assert.Equal(t, o.Dist(2, 3), o.Dist(3, 2)) // symmetric
}

func TestTriangleCost(t *testing.T) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 4}}
	o, err := distance.NewOracle(nodes, distance.L2Real)
	require.NoError(t, err)

	z := o.Dist(0, 1) + o.Dist(1, 2) + o.Dist(2, 0)
	assert.InDelta(t, 12.0, z, 1e-9)
}

func TestL2RoundedFloorsHalves(t *testing.T) {
	nodes := []distance.Node{{X: 0, Y: 0}, {X: 2.4, Y: 0}}
	o, err := distance.NewOracle(nodes, distance.L2Rounded)
	require.NoError(t, err)
	assert.Equal(t, 2.0, o.Dist(0, 1))
}

func TestExplicitOracleReadsFromRows(t *testing.T) {
	rows := [][]float64{
		{},
		{5},
		{9, 7},
	}
	o, err := distance.NewExplicitOracle(rows, 3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, o.Dist(0, 1))
	assert.Equal(t, 7.0, o.Dist(1, 2))
	assert.Equal(t, 9.0, o.Dist(0, 2))
}

func TestExplicitOraclePreservesFractionalWeights(t *testing.T) {
	rows := [][]float64{
		{},
		{2.5},
	}
	o, err := distance.NewExplicitOracle(rows, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.5, o.Dist(0, 1))
}

func TestExplicitOracleRejectsMalformedRows(t *testing.T) {
	_, err := distance.NewExplicitOracle([][]float64{{1, 2}}, 2)
	assert.ErrorIs(t, err, distance.ErrIllegalMetric)
}
