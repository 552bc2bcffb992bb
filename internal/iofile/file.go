// Package iofile implements the paged File contract: synchronous blocking
// page reads, and asynchronous page reads submitted onto an io_uring.
package iofile

import (
	"github.com/outofforest/morselq1/internal/ioring"
	"github.com/outofforest/morselq1/internal/types"
)

// File is the paged read contract the query engine consumes. It never mutates
// the underlying data; the loader that produces it is an external
// collaborator.
type File interface {
	// ReadSize returns the total size of the backing file, in bytes.
	ReadSize() uint64

	// ReadPage synchronously reads one page-sized block at the given page index into
	// dst, which must be at least PageSize bytes.
	ReadPage(index types.PageIndex, dst []byte) error

	// SubmitAsyncRead enqueues a read of the given page index into dst on ring,
	// tagged with userData. The caller observes completion through ring.Wait.
	SubmitAsyncRead(ring *ioring.Ring, index types.PageIndex, dst []byte, userData uint64) error
}

func offsetOf(index types.PageIndex, pageSize uint64) int64 {
	return int64(uint64(index) * pageSize)
}
