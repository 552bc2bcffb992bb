package ioring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/morselq1/internal/ioring"
)

func TestCountdownReachesDoneAfterNDecrements(t *testing.T) {
	requireT := require.New(t)

	c := ioring.NewCountdown(3)
	requireT.False(c.IsDone())
	c.Decrement()
	requireT.False(c.IsDone())
	c.Decrement()
	requireT.False(c.IsDone())
	c.Decrement()
	requireT.True(c.IsDone())
}

func TestCountdownOfZeroStartsDone(t *testing.T) {
	requireT := require.New(t)

	c := ioring.NewCountdown(0)
	requireT.True(c.IsDone())
}
