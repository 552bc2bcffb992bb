package query

import (
	"unsafe"

	"github.com/outofforest/photon"

	"github.com/outofforest/morselq1/internal/aggregate"
	"github.com/outofforest/morselq1/internal/ioring"
	"github.com/outofforest/morselq1/internal/page"
	"github.com/outofforest/morselq1/internal/swip"
)

// taskState is an explicit state machine standing in for a first-class
// coroutine, named for the verbs a worker's own thread actually performs.
type taskState uint8

const (
	taskRunning taskState = iota
	taskAwaitingRead
	taskDone
)

// producerTask is one of NumRingEntries concurrent tasks scanning a slice of
// the claimed morsel. It owns a private scratch frame so concurrent in-flight
// reads never collide. Pooled via mass so repeated claims don't allocate a
// new task object per morsel.
type producerTask struct {
	runner    *Runner
	table     *aggregate.HashTable
	ring      *ioring.Ring
	countdown *ioring.Countdown
	userData  uint64

	swips      []swip.Swip
	pos        int
	scratchBuf []byte
	state      taskState
}

// scratch views the task's allocator-owned scratch buffer as a page.
func (t *producerTask) scratch() *page.LineitemPageQ1 {
	return photon.FromPointer[page.LineitemPageQ1](unsafe.Pointer(&t.scratchBuf[0]))
}

// resume drives the task forward until it either suspends on a read or
// finishes. runClaim partitions the task's slice once, before the task
// starts, so that all page-index (must-read) Swips are visited before the
// cached ones - clustering suspensions early.
func (t *producerTask) resume() error {
	for t.pos < len(t.swips) {
		sw := t.swips[t.pos]
		if sw.IsPageIndex() {
			if err := t.runner.cfg.File.SubmitAsyncRead(
				t.ring, sw.GetPageIndex(), t.scratchBuf, t.userData,
			); err != nil {
				return err
			}
			t.state = taskAwaitingRead
			return nil
		}

		data := swip.GetPointer[page.LineitemPageQ1](sw)
		if t.runner.cfg.DoWork {
			t.runner.ProcessTuples(data, t.table)
		}
		t.pos++
	}

	t.state = taskDone
	t.countdown.Decrement()
	return nil
}

// onReadComplete is invoked by the drain loop when this task's outstanding
// read finishes; it aggregates the freshly filled scratch frame and resumes.
func (t *producerTask) onReadComplete() error {
	if t.runner.cfg.DoWork {
		t.runner.ProcessTuples(t.scratch(), t.table)
	}
	t.pos++
	t.state = taskRunning
	return t.resume()
}

// partitionByResolution reorders swips in place so unresolved (page-index)
// entries come first and resolved (pointer) entries come second. Stable
// within each group.
func partitionByResolution(swips []swip.Swip) {
	out := make([]swip.Swip, 0, len(swips))
	for _, s := range swips {
		if s.IsPageIndex() {
			out = append(out, s)
		}
	}
	for _, s := range swips {
		if !s.IsPageIndex() {
			out = append(out, s)
		}
	}
	copy(swips, out)
}
