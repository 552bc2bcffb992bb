package iofile

import (
	"github.com/pkg/errors"

	"github.com/outofforest/morselq1/internal/ioring"
	"github.com/outofforest/morselq1/internal/types"
)

// NewMemFile wraps a fixed in-memory byte slice as a File, sized as a whole
// number of pageSize pages. Used by tests in place of a real file.
func NewMemFile(data []byte, pageSize uint64) *MemFile {
	return &MemFile{data: data, pageSize: pageSize}
}

// MemFile is an in-memory File, used by tests in place of a DirectFile.
type MemFile struct {
	data     []byte
	pageSize uint64
}

// ReadSize returns the length of the backing slice.
func (f *MemFile) ReadSize() uint64 {
	return uint64(len(f.data))
}

// ReadPage copies page index out of the backing slice into dst.
func (f *MemFile) ReadPage(index types.PageIndex, dst []byte) error {
	off := uint64(index) * f.pageSize
	if off+f.pageSize > uint64(len(f.data)) {
		return errors.Errorf("page %d out of range", index)
	}
	copy(dst[:f.pageSize], f.data[off:off+f.pageSize])
	return nil
}

// SubmitAsyncRead performs the copy immediately and enqueues an already-completed
// entry on ring, so MemFile can stand in for either scan mode in tests.
func (f *MemFile) SubmitAsyncRead(ring *ioring.Ring, index types.PageIndex, dst []byte, userData uint64) error {
	if err := f.ReadPage(index, dst); err != nil {
		return err
	}
	ring.SubmitCompleted(userData)
	return nil
}
