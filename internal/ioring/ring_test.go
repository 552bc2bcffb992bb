package ioring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/morselq1/internal/ioring"
)

func TestFakeRingDrainsSubmittedCompletionsInOrder(t *testing.T) {
	requireT := require.New(t)

	r := ioring.NewFake(4)
	requireT.EqualValues(4, r.Capacity())
	requireT.Zero(r.Outstanding())

	r.SubmitCompleted(1)
	r.SubmitCompleted(2)

	done, err := r.Wait()
	requireT.NoError(err)
	requireT.Equal([]uint64{1, 2}, done)

	// Completions are drained, a second Wait with nothing pending must error
	// rather than block forever on a ring with no backing kernel ring.
	_, err = r.Wait()
	requireT.Error(err)
}

func TestFakeRingSubmitReadErrors(t *testing.T) {
	requireT := require.New(t)

	r := ioring.NewFake(1)
	err := r.SubmitRead(0, make([]byte, 8), 0, 1)
	requireT.Error(err)
}
