package iofile

import (
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// AllocateAlignedPage returns one buffer of size bytes, aligned to the OS page
// size as O_DIRECT requires of both the read destination and its length.
// Callers that hand a DirectFile a scratch buffer outside the io_uring path -
// query.syncWorker's single reusable scratch frame, in particular - must get
// it from here rather than a bare make([]byte, ...), which carries no
// alignment guarantee.
func AllocateAlignedPage(size uint64) ([]byte, func(), error) {
	return allocateAligned(size, pageSize)
}

// allocateAligned allocates size bytes of anonymous memory aligned to
// alignment, as required by O_DIRECT reads/writes.
func allocateAligned(size, alignment uint64) ([]byte, func(), error) {
	alignmentUintptr := uintptr(alignment)
	allocatedSize := uintptr(size) + alignmentUintptr

	data, err := unix.Mmap(-1, 0, int(allocatedSize), unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "memory allocation failed")
	}

	dataP := unsafe.Pointer(&data[0])
	diff := uint64((uintptr(dataP)+alignmentUintptr-1)/alignmentUintptr*alignmentUintptr - uintptr(dataP))

	return data[diff : diff+size], func() {
		_ = unix.Munmap(data)
	}, nil
}

var pageSize = uint64(os.Getpagesize())
