package main

import (
	"strconv"

	"github.com/pkg/errors"
)

// benchConfig holds the 8 positional benchmark arguments, parsed and typed.
type benchConfig struct {
	path               string
	numThreads         int
	numEntriesPerRing  int
	numTuplesPerMorsel int
	doWork             bool
	doRandomIO         bool
	printResult        bool
	printHeader        bool
}

func parseArgs(args []string) (benchConfig, error) {
	numThreads, err := strconv.Atoi(args[1])
	if err != nil {
		return benchConfig{}, errors.Wrapf(err, "parsing num_threads %q", args[1])
	}
	numEntriesPerRing, err := strconv.Atoi(args[2])
	if err != nil {
		return benchConfig{}, errors.Wrapf(err, "parsing num_entries_per_ring %q", args[2])
	}
	numTuplesPerMorsel, err := strconv.Atoi(args[3])
	if err != nil {
		return benchConfig{}, errors.Wrapf(err, "parsing num_tuples_per_morsel %q", args[3])
	}
	doWork, err := strconv.ParseBool(args[4])
	if err != nil {
		return benchConfig{}, errors.Wrapf(err, "parsing do_work %q", args[4])
	}
	doRandomIO, err := strconv.ParseBool(args[5])
	if err != nil {
		return benchConfig{}, errors.Wrapf(err, "parsing do_random_io %q", args[5])
	}
	printResult, err := strconv.ParseBool(args[6])
	if err != nil {
		return benchConfig{}, errors.Wrapf(err, "parsing print_result %q", args[6])
	}
	printHeader, err := strconv.ParseBool(args[7])
	if err != nil {
		return benchConfig{}, errors.Wrapf(err, "parsing print_header %q", args[7])
	}

	return benchConfig{
		path:               args[0],
		numThreads:         numThreads,
		numEntriesPerRing:  numEntriesPerRing,
		numTuplesPerMorsel: numTuplesPerMorsel,
		doWork:             doWork,
		doRandomIO:         doRandomIO,
		printResult:        printResult,
		printHeader:        printHeader,
	}, nil
}
