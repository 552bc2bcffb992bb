package main

import (
	"fmt"
	"io"
	"time"

	"github.com/outofforest/morselq1/internal/aggregate"
	"github.com/outofforest/morselq1/internal/page"
)

const csvHeader = "kind_of_io,page_size_power,num_threads,num_cached_pages,num_total_pages," +
	"num_entries_per_ring,num_tuples_per_morsel,do_work,do_random_io,time_ms,file_size,throughput_gb_s\n"

// csvRow prints one row of the CSV stream. throughput is
// GB/s = (file_size/1e9) / (elapsed seconds).
func csvRow(
	w io.Writer,
	kindOfIO string,
	numThreads, numCachedPages, numTotalPages, numEntriesPerRing, numTuplesPerMorsel int,
	doWork, doRandomIO bool,
	elapsed time.Duration,
	fileSize uint64,
) {
	milliseconds := float64(elapsed.Microseconds()) / 1000.0
	throughput := (float64(fileSize) / 1e9) / (milliseconds / 1000.0)

	fmt.Fprintf(w, "%s,%d,%d,%d,%d,%d,%d,%t,%t,%d,%d,%g\n",
		kindOfIO,
		page.PageSizePower,
		numThreads,
		numCachedPages,
		numTotalPages,
		numEntriesPerRing,
		numTuplesPerMorsel,
		doWork,
		doRandomIO,
		int64(milliseconds),
		fileSize,
		throughput,
	)
}

const resultHeader = "l_returnflag|l_linestatus|sum_qty|sum_base_price|sum_disc_price|" +
	"sum_charge|avg_qty|avg_price|avg_disc|count_order\n"

// printResults writes the group-by-sorted result stream.
func printResults(w io.Writer, entries []*aggregate.Entry) {
	fmt.Fprint(w, resultHeader)
	for _, e := range entries {
		r := e.Result()
		fmt.Fprintf(w, "%c|%c|%s|%s|%s|%s|%s|%s|%s|%d\n",
			r.ReturnFlag, r.LineStatus,
			r.SumQty, r.SumBasePrice, r.SumDiscPrice, r.SumCharge,
			r.AvgQty, r.AvgPrice, r.AvgDisc, r.CountOrder,
		)
	}
}
