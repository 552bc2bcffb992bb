// Package query implements the morsel-driven parallel scan-and-aggregate
// engine: an outer layer of OS-thread workers synchronized only through one
// atomic fetch-add counter, each running either a plain blocking scan or, in
// ring mode, a single-threaded cooperative pipeline of producer tasks
// draining a shared io_uring.
package query

import (
	"context"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/outofforest/parallel"
	"github.com/outofforest/photon"

	"github.com/outofforest/morselq1/internal/aggregate"
	"github.com/outofforest/morselq1/internal/iofile"
	"github.com/outofforest/morselq1/internal/ioring"
	"github.com/outofforest/morselq1/internal/page"
	"github.com/outofforest/morselq1/internal/swip"
)

// highDate is the fixed TPC-H Q1 filter literal, l_shipdate <= 1998-09-02.
var highDate = mustHighDate()

// Config configures one Runner invocation.
type Config struct {
	// Swips is the full, shared vector of page references, one per page in the
	// file. No Swip is resolved or changed during the scan; in asynchronous
	// mode each claimed range is reordered in place so unresolved Swips come
	// first.
	Swips []swip.Swip

	// File is the paged read collaborator.
	File iofile.File

	// NumThreads is the number of outer-layer worker threads.
	NumThreads int

	// NumRingEntries selects the scan mode: 0 selects synchronous mode, any
	// positive value selects asynchronous mode with that many concurrent
	// in-flight reads per worker.
	NumRingEntries int

	// NumTuplesPerMorsel sizes a morsel: ceil(NumTuplesPerMorsel/kMaxNumTuples)
	// pages.
	NumTuplesPerMorsel int

	// DoWork selects whether scanned pages are actually aggregated (false
	// measures pure I/O cost).
	DoWork bool

	// NewRing constructs the per-worker ring used in asynchronous mode. Defaults
	// to a real kernel io_uring (ioring.New); tests substitute ioring.NewFake to
	// pair with an iofile.MemFile that resolves reads synchronously.
	NewRing func(capacity uint32) (*ioring.Ring, error)
}

// Runner executes one full scan-and-aggregate pass over Config.Swips, using
// either the synchronous or the asynchronous scan path.
type Runner struct {
	cfg Config

	currentSwip uint64
}

// New returns a Runner ready to execute a single Run.
func New(cfg Config) *Runner {
	if cfg.NewRing == nil {
		cfg.NewRing = ioring.New
	}
	return &Runner{cfg: cfg}
}

// morselPages is the number of pages in one morsel.
func (r *Runner) morselPages() uint64 {
	return ceilDiv(uint64(r.cfg.NumTuplesPerMorsel), page.KMaxNumTuples)
}

// fetchIncrement is the number of pages claimed per atomic fetch-add: one
// morsel in synchronous mode, NumRingEntries morsels in asynchronous mode.
func (r *Runner) fetchIncrement() uint64 {
	morsel := r.morselPages()
	if r.cfg.NumRingEntries == 0 {
		return morsel
	}
	return morsel * uint64(r.cfg.NumRingEntries)
}

// claim performs one atomic fetch-add of increment against currentSwip and
// returns the range start. Callers stop when the returned value is >= the
// size of the Swip vector.
func (r *Runner) claim(increment uint64) uint64 {
	return atomic.AddUint64(&r.currentSwip, increment) - increment
}

// Run scans every page exactly once across cfg.NumThreads workers and returns
// the merged, sorted result.
func (r *Runner) Run(ctx context.Context) ([]*aggregate.Entry, error) {
	atomic.StoreUint64(&r.currentSwip, 0)

	tables := make([]*aggregate.HashTable, r.cfg.NumThreads)

	err := parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		for i := 0; i < r.cfg.NumThreads; i++ {
			workerIdx := i
			spawn("worker", parallel.Fail, func(ctx context.Context) error {
				table, err := r.runWorker(workerIdx)
				if err != nil {
					return err
				}
				tables[workerIdx] = table
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	merged := aggregate.Merge(tables)
	return merged.SortedEntries(), nil
}

func (r *Runner) runWorker(workerIdx int) (*aggregate.HashTable, error) {
	table := aggregate.New()
	if r.cfg.NumRingEntries == 0 {
		if err := r.syncWorker(table); err != nil {
			return nil, errors.Wrapf(err, "worker %d", workerIdx)
		}
		return table, nil
	}

	if err := r.asyncWorker(table); err != nil {
		return nil, errors.Wrapf(err, "worker %d", workerIdx)
	}
	return table, nil
}

func (r *Runner) syncWorker(table *aggregate.HashTable) error {
	scratchBuf, release, err := iofile.AllocateAlignedPage(page.PageSize)
	if err != nil {
		return err
	}
	defer release()
	scratch := photon.FromPointer[page.LineitemPageQ1](unsafe.Pointer(&scratchBuf[0]))

	increment := r.fetchIncrement()
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
		if err := r.ProcessPages(scratch, r.cfg.Swips[begin:end], table); err != nil {
			return err
		}
	}
}

// ProcessPages is the synchronous scan path: for each Swip, resolve to a page
// (reading it via scratch if unresolved) and aggregate it.
func (r *Runner) ProcessPages(scratch *page.LineitemPageQ1, swips []swip.Swip, table *aggregate.HashTable) error {
	for i := range swips {
		data, err := r.resolve(scratch, swips[i])
		if err != nil {
			return err
		}
		if r.cfg.DoWork {
			r.ProcessTuples(data, table)
		}
	}
	return nil
}

func (r *Runner) resolve(scratch *page.LineitemPageQ1, sw swip.Swip) (*page.LineitemPageQ1, error) {
	if sw.IsPageIndex() {
		if err := r.cfg.File.ReadPage(sw.GetPageIndex(), page.Bytes(scratch)); err != nil {
			return nil, err
		}
		return scratch, nil
	}
	return swip.GetPointer[page.LineitemPageQ1](sw), nil
}

// ProcessTuples is the per-tuple aggregation step: filters on
// l_shipdate <= highDate and folds every surviving tuple into table.
func (r *Runner) ProcessTuples(p *page.LineitemPageQ1, table *aggregate.HashTable) {
	for i := uint32(0); i < p.NumTuples; i++ {
		if p.LShipdate[i] > highDate {
			continue
		}
		table.Accumulate(
			p.LReturnflag[i],
			p.LLinestatus[i],
			p.Quantity(i),
			p.ExtendedPrice(i),
			p.Discount(i),
			p.Tax(i),
		)
	}
}

func ceilDiv(n, d uint64) uint64 {
	return (n + d - 1) / d
}
