package kick_test

import (
	"math/rand"
	"testing"

	"github.com/dariolupo/tsplab/kick"
	"github.com/dariolupo/tsplab/tour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProducesValidSingleCycleTour(t *testing.T) {
	tr := tour.FromIdentity(20)
	original := tr.Clone()

	rng := rand.New(rand.NewSource(1))
	err := kick.Run(tr, 3, rng)
	require.NoError(t, err)

	require.NoError(t, tour.Validate(tr.Succ))
	assert.NotEqual(t, original.Succ, tr.Succ)
	for i, s := range tr.Succ {
		assert.NotEqual(t, i, s, "no self-loops")
	}
}

func TestRunRejectsBadStrength(t *testing.T) {
	tr := tour.FromIdentity(10)
	rng := rand.New(rand.NewSource(1))

	assert.ErrorIs(t, kick.Run(tr, 1, rng), kick.ErrStrengthOutOfRange)
	assert.ErrorIs(t, kick.Run(tr, 5, rng), kick.ErrStrengthOutOfRange)
}

func TestRunManySeedsAlwaysValid(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		tr := tour.FromIdentity(16)
		rng := rand.New(rand.NewSource(seed))
		require.NoError(t, kick.Run(tr, 3, rng))
		require.NoError(t, tour.Validate(tr.Succ))
	}
}
