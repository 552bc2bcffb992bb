// Package alloc implements a pluggable per-thread scratch-buffer allocator:
// a small, single-size, slab-backed pool front-ended by a size-bucketed
// linear scan.
package alloc

// FixedAllocator hands out blocks of one fixed size from bump-allocated slabs, with
// a freelist of returned blocks. It never releases slabs until the allocator itself
// is discarded, and it is not safe for concurrent use.
type FixedAllocator struct {
	allocationSize uint32
	numBlocks      uint16

	slabs    [][]byte
	freeList [][]byte
}

// NewFixedAllocator creates a FixedAllocator handing out blocks of allocationSize
// bytes, numBlocks per slab.
func NewFixedAllocator(allocationSize uint32, numBlocks uint16) *FixedAllocator {
	return &FixedAllocator{
		allocationSize: allocationSize,
		numBlocks:      numBlocks,
	}
}

// AllocationSize returns the fixed block size this allocator hands out.
func (a *FixedAllocator) AllocationSize() uint32 {
	return a.allocationSize
}

// Allocate returns one block, growing the pool with a fresh slab if the freelist is
// empty.
func (a *FixedAllocator) Allocate() []byte {
	if len(a.freeList) == 0 {
		slab := make([]byte, uint64(a.allocationSize)*uint64(a.numBlocks))
		a.slabs = append(a.slabs, slab)

		a.freeList = make([]([]byte), 0, a.numBlocks)
		for i := uint16(0); i != a.numBlocks; i++ {
			start := uint32(i) * a.allocationSize
			a.freeList = append(a.freeList, slab[start:start+a.allocationSize])
		}
	}

	result := a.freeList[len(a.freeList)-1]
	a.freeList = a.freeList[:len(a.freeList)-1]
	return result
}

// Deallocate returns a previously allocated block to the freelist.
func (a *FixedAllocator) Deallocate(p []byte) {
	a.freeList = append(a.freeList, p)
}
