// Package ioring wraps a kernel io_uring submission/completion ring behind a
// minimal contract: enqueue a read carrying a resumption token, and drain
// until at least one completion is observed. It is not shared across
// threads - each worker owns its own Ring.
package ioring

import (
	"github.com/godzie44/go-uring/queue"
	"github.com/godzie44/go-uring/uring"
	"github.com/pkg/errors"
)

// Ring is a thread-local, fixed-capacity submission/completion queue.
type Ring struct {
	capacity uint32
	ring     *uring.Ring

	outstanding int

	// fakeCompletions services rings built with NewFake, where reads are resolved
	// synchronously by the caller (see iofile.MemFile) instead of by a kernel ring;
	// used only in tests.
	fakeCompletions []uint64
}

// New creates a Ring backed by a real io_uring instance of the given fixed
// capacity.
func New(capacity uint32) (*Ring, error) {
	r, err := uring.New(capacity)
	if err != nil {
		return nil, errors.Wrapf(err, "creating io_uring of capacity %d", capacity)
	}
	return &Ring{capacity: capacity, ring: r}, nil
}

// NewFake creates a Ring with no backing kernel ring, for use with a File
// implementation (iofile.MemFile) that resolves reads synchronously and reports
// them via SubmitCompleted.
func NewFake(capacity uint32) *Ring {
	return &Ring{capacity: capacity}
}

// Capacity returns the fixed number of ring entries.
func (r *Ring) Capacity() uint32 {
	return r.capacity
}

// Outstanding returns the number of submitted reads not yet observed as complete.
func (r *Ring) Outstanding() int {
	return r.outstanding
}

// SubmitRead enqueues a read of len(dst) bytes at offset from fd, tagged with
// userData, and submits it immediately.
func (r *Ring) SubmitRead(fd int, dst []byte, offset int64, userData uint64) error {
	if r.ring == nil {
		return errors.New("ioring: SubmitRead called on a fake ring")
	}

	entry := queue.Read(fd, dst, uint64(offset))
	if err := r.ring.QueueSQE(entry, userData, 0); err != nil {
		return errors.WithStack(err)
	}
	if _, err := r.ring.Submit(); err != nil {
		return errors.WithStack(err)
	}
	r.outstanding++
	return nil
}

// SubmitCompleted records a synthetic completion for userData, for use by File
// implementations that don't need a real kernel ring (tests).
func (r *Ring) SubmitCompleted(userData uint64) {
	r.fakeCompletions = append(r.fakeCompletions, userData)
}

// Wait blocks until at least one read completes and returns the userData tokens of
// every read that completed.
func (r *Ring) Wait() ([]uint64, error) {
	if len(r.fakeCompletions) > 0 {
		done := r.fakeCompletions
		r.fakeCompletions = nil
		return done, nil
	}

	if r.ring == nil {
		return nil, errors.New("ioring: Wait called on an empty fake ring")
	}

	cqes, err := r.ring.WaitCQEvents(1)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	done := make([]uint64, 0, len(cqes))
	for _, cqe := range cqes {
		done = append(done, cqe.UserData())
		r.outstanding--
	}
	return done, nil
}

// Close releases the kernel ring, if any.
func (r *Ring) Close() error {
	if r.ring == nil {
		return nil
	}
	return errors.WithStack(r.ring.Close())
}
