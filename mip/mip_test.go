package mip_test

import (
	"testing"

	"github.com/dariolupo/tsplab/mip"
	"github.com/dariolupo/tsplab/tour"
	"github.com/stretchr/testify/assert"
)

type fakeDist struct{}

func (fakeDist) Dist(i, j int) float64 { return 1 }

func TestNoopCollaboratorReportsUnimplemented(t *testing.T) {
	var c mip.Collaborator = mip.NoopCollaborator{}
	_, err := c.Solve(tour.FromIdentity(4), fakeDist{})
	assert.ErrorIs(t, err, mip.ErrNotImplemented)
}
