package alloc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/morselq1/internal/alloc"
)

func TestFixedAllocatorReturnsDistinctBlocksWithinASlab(t *testing.T) {
	requireT := require.New(t)

	fa := alloc.NewFixedAllocator(16, 2)
	a := fa.Allocate()
	b := fa.Allocate()

	requireT.Len(a, 16)
	requireT.Len(b, 16)
	a[0] = 1
	b[0] = 2
	requireT.EqualValues(1, a[0])
	requireT.EqualValues(2, b[0])
}

func TestFixedAllocatorGrowsANewSlabWhenFreeListIsEmpty(t *testing.T) {
	requireT := require.New(t)

	fa := alloc.NewFixedAllocator(8, 1)
	first := fa.Allocate()
	second := fa.Allocate()

	requireT.Len(first, 8)
	requireT.Len(second, 8)
}

func TestFixedAllocatorReusesDeallocatedBlock(t *testing.T) {
	requireT := require.New(t)

	fa := alloc.NewFixedAllocator(8, 1)
	block := fa.Allocate()
	fa.Deallocate(block)

	reused := fa.Allocate()
	requireT.Len(reused, 8)
}
