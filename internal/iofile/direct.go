package iofile

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/outofforest/morselq1/internal/ioring"
	"github.com/outofforest/morselq1/internal/types"
)

// NewDirectFile opens path for O_DIRECT reads. pageSize must equal page.PageSize;
// it is threaded through explicitly rather than imported so this package stays
// independent of the page layout.
func NewDirectFile(path string, pageSize uint64) (*DirectFile, func(), error) {
	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_DIRECT, 0)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.WithStack(err)
	}

	return &DirectFile{
			file:     f,
			fd:       int(f.Fd()),
			pageSize: pageSize,
			size:     uint64(size),
		}, func() {
			_ = f.Close()
		}, nil
}

// DirectFile is the production File implementation: plain pread for
// synchronous reads, io_uring submission for asynchronous ones.
type DirectFile struct {
	file     *os.File
	fd       int
	pageSize uint64
	size     uint64
}

// ReadSize returns the total size of the file in bytes.
func (f *DirectFile) ReadSize() uint64 {
	return f.size
}

// ReadPage synchronously reads page index into dst via pread.
func (f *DirectFile) ReadPage(index types.PageIndex, dst []byte) error {
	n, err := unix.Pread(f.fd, dst[:f.pageSize], offsetOf(index, f.pageSize))
	if err != nil {
		return errors.WithStack(err)
	}
	if uint64(n) != f.pageSize {
		return errors.Errorf("short read at page %d: got %d bytes, want %d", index, n, f.pageSize)
	}
	return nil
}

// SubmitAsyncRead enqueues a read of page index into dst on ring.
func (f *DirectFile) SubmitAsyncRead(
	ring *ioring.Ring,
	index types.PageIndex,
	dst []byte,
	userData uint64,
) error {
	return ring.SubmitRead(f.fd, dst[:f.pageSize], offsetOf(index, f.pageSize), userData)
}
