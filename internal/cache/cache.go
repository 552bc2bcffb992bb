// Package cache implements the cache populator: given a set of Swip
// positions, it resolves each to a freshly loaded in-memory frame, draining a
// fixed fan-out of concurrent producer tasks over one ring exactly like the
// query engine's asynchronous scan path.
package cache

import (
	"unsafe"

	"github.com/outofforest/morselq1/internal/iofile"
	"github.com/outofforest/morselq1/internal/ioring"
	"github.com/outofforest/morselq1/internal/page"
	"github.com/outofforest/morselq1/internal/swip"
)

// NumConcurrentTasks is the fixed fan-out of the populator's ring.
const NumConcurrentTasks = 64

// Cache owns the Swip vector being populated and the in-memory frames
// resolved into it.
type Cache struct {
	swips  []swip.Swip
	file   iofile.File
	frames []page.LineitemPageQ1

	newRing func(capacity uint32) (*ioring.Ring, error)
}

// New returns a Cache over swips backed by file. swips is shared with the
// query engine that will scan it afterward.
func New(swips []swip.Swip, file iofile.File) *Cache {
	return NewWithRing(swips, file, ioring.New)
}

// NewWithRing is New with the ring constructor overridable, so tests can
// substitute ioring.NewFake paired with an iofile.MemFile.
func NewWithRing(swips []swip.Swip, file iofile.File, newRing func(capacity uint32) (*ioring.Ring, error)) *Cache {
	return &Cache{swips: swips, file: file, newRing: newRing}
}

// Populate reads every page named by swipIndexes (positions into c.swips) into
// a freshly allocated frame and upgrades the corresponding Swip to point at
// it. The frames vector is reserved to len(swipIndexes) up front so element
// addresses never move for the life of the run.
func (c *Cache) Populate(swipIndexes []uint64) error {
	if len(swipIndexes) == 0 {
		return nil
	}

	c.frames = make([]page.LineitemPageQ1, 0, len(swipIndexes))

	ring, err := c.newRing(NumConcurrentTasks)
	if err != nil {
		return err
	}
	defer func() {
		_ = ring.Close()
	}()

	numTasks := NumConcurrentTasks
	if numTasks > len(swipIndexes) {
		numTasks = len(swipIndexes)
	}
	partitionSize := ceilDiv(uint64(len(swipIndexes)), uint64(numTasks))

	countdown := ioring.NewCountdown(numTasks)
	tasks := make(map[uint64]*loadTask, numTasks)

	for i := 0; i < numTasks; i++ {
		begin := min64(uint64(i)*partitionSize, uint64(len(swipIndexes)))
		end := min64(begin+partitionSize, uint64(len(swipIndexes)))

		t := &loadTask{
			cache:     c,
			ring:      ring,
			countdown: countdown,
			userData:  uint64(i),
			indexes:   swipIndexes[begin:end],
		}
		tasks[t.userData] = t
		if err := t.resume(); err != nil {
			return err
		}
	}

	return drainRing(ring, countdown, tasks)
}

// loadTask is one of NumConcurrentTasks producer tasks scanning a contiguous
// run of swipIndexes.
type loadTask struct {
	cache     *Cache
	ring      *ioring.Ring
	countdown *ioring.Countdown
	userData  uint64

	indexes  []uint64
	pos      int
	frameIdx int
}

// resume submits the read for the current index. It captures the frame's
// index (not just a pointer taken now) because other tasks append to the
// shared frames vector between this call and the matching onReadComplete -
// resolving "the last element" at completion time would name the wrong frame.
func (t *loadTask) resume() error {
	if t.pos >= len(t.indexes) {
		t.countdown.Decrement()
		return nil
	}

	t.cache.frames = append(t.cache.frames, page.LineitemPageQ1{})
	t.frameIdx = len(t.cache.frames) - 1
	frame := &t.cache.frames[t.frameIdx]

	swipPos := t.indexes[t.pos]
	pageIndex := t.cache.swips[swipPos].GetPageIndex()

	return t.cache.file.SubmitAsyncRead(t.ring, pageIndex, page.Bytes(frame), t.userData)
}

// onReadComplete stamps the just-loaded frame's pointer into its Swip and
// advances to the next index in this task's run.
func (t *loadTask) onReadComplete() error {
	frame := &t.cache.frames[t.frameIdx]
	swipPos := t.indexes[t.pos]
	t.cache.swips[swipPos].SetPointer(unsafe.Pointer(frame))

	t.pos++
	return t.resume()
}

func drainRing(ring *ioring.Ring, countdown *ioring.Countdown, tasks map[uint64]*loadTask) error {
	for {
		if countdown.IsDone() && ring.Outstanding() == 0 {
			return nil
		}

		done, err := ring.Wait()
		if err != nil {
			return err
		}
		for _, userData := range done {
			task, ok := tasks[userData]
			if !ok {
				continue
			}
			if err := task.onReadComplete(); err != nil {
				return err
			}
		}
	}
}

func ceilDiv(n, d uint64) uint64 {
	return (n + d - 1) / d
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
