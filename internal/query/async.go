package query

import (
	"github.com/outofforest/mass"

	"github.com/outofforest/morselq1/internal/aggregate"
	"github.com/outofforest/morselq1/internal/alloc"
	"github.com/outofforest/morselq1/internal/ioring"
	"github.com/outofforest/morselq1/internal/page"
	"github.com/outofforest/morselq1/internal/swip"
)

// asyncWorker runs the asynchronous scan path: a single-threaded cooperative
// scheduler interleaving NumRingEntries producer tasks and one drain task
// over one ring, claiming NumRingEntries morsels per fetch-add.
//
// Two allocators are installed for the lifetime of the worker and torn down
// on exit: frameAlloc hands out the fixed-size scratch page buffers producer
// tasks read into, while taskPool pools the producerTask objects themselves
// so a busy worker doesn't churn the GC one object per morsel.
func (r *Runner) asyncWorker(table *aggregate.HashTable) error {
	ring, err := r.cfg.NewRing(uint32(r.cfg.NumRingEntries))
	if err != nil {
		return err
	}
	defer func() {
		_ = ring.Close()
	}()

	frameAlloc := alloc.NewAllocator(1)
	taskPool := mass.New[producerTask](uint64(r.cfg.NumRingEntries))

	scratchBufs := make([][]byte, r.cfg.NumRingEntries)
	for i := range scratchBufs {
		scratchBufs[i] = frameAlloc.Allocate(page.PageSize)
	}
	defer func() {
		for _, buf := range scratchBufs {
			frameAlloc.Deallocate(buf, page.PageSize)
		}
	}()

	morsel := r.morselPages()
	increment := morsel * uint64(r.cfg.NumRingEntries)
	size := uint64(len(r.cfg.Swips))

	for {
		begin := r.claim(increment)
		if begin >= size {
			return nil
		}
		end := begin + increment
		if end > size {
			end = size
		}
		if err := r.runClaim(ring, taskPool, table, scratchBufs, r.cfg.Swips[begin:end], morsel); err != nil {
			return err
		}
	}
}

// runClaim splits one claimed range into up to NumRingEntries contiguous
// per-task chunks of morsel pages each, launches a producerTask per chunk and
// drains the ring until every task in the claim has finished.
func (r *Runner) runClaim(
	ring *ioring.Ring,
	taskPool *mass.Mass[producerTask],
	table *aggregate.HashTable,
	scratchBufs [][]byte,
	claimed []swip.Swip,
	morsel uint64,
) error {
	numTasks := int(ceilDiv(uint64(len(claimed)), morsel))
	countdown := ioring.NewCountdown(numTasks)
	tasks := make(map[uint64]*producerTask, numTasks)

	for i := 0; i < numTasks; i++ {
		lo := uint64(i) * morsel
		hi := lo + morsel
		if hi > uint64(len(claimed)) {
			hi = uint64(len(claimed))
		}
		chunk := claimed[lo:hi]
		partitionByResolution(chunk)

		t := taskPool.New()
		t.runner = r
		t.table = table
		t.ring = ring
		t.countdown = countdown
		t.userData = uint64(i)
		t.swips = chunk
		t.scratchBuf = scratchBufs[i]
		t.pos = 0
		t.state = taskRunning

		tasks[t.userData] = t
		if err := t.resume(); err != nil {
			return err
		}
	}

	return drainRing(ring, countdown, tasks)
}
