package main

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/outofforest/logger"
	"go.uber.org/zap"

	"github.com/outofforest/morselq1/internal/cache"
	"github.com/outofforest/morselq1/internal/iofile"
	"github.com/outofforest/morselq1/internal/page"
	"github.com/outofforest/morselq1/internal/query"
	"github.com/outofforest/morselq1/internal/swip"
	"github.com/outofforest/morselq1/internal/types"
)

// rngSeed is the fixed seed so benchmark runs are reproducible.
const rngSeed = 42

// numSweepSteps is the number of cached-fraction increments, 0% through 100%
// in ten-percent steps.
const numSweepSteps = 10

func run(ctx context.Context, cfg benchConfig, stdout, stderr io.Writer) error {
	log := logger.Get(ctx)

	file, closeFile, err := iofile.NewDirectFile(cfg.path, page.PageSize)
	if err != nil {
		return err
	}
	defer closeFile()

	fileSize := file.ReadSize()
	numPages := fileSize / page.PageSize

	swips := makeSwips(numPages)
	swipIndexes := shuffle(swips, cfg.doRandomIO)

	if cfg.printHeader {
		io.WriteString(stdout, csvHeader)
	}

	if numPages == 0 {
		return nil
	}

	c := cache.New(swips, file)
	partitionSize := ceilDiv(uint64(len(swipIndexes)), numSweepSteps)

	for i := 0; i <= numSweepSteps; i++ {
		if i > 0 {
			offset := min64(uint64(i-1)*partitionSize, uint64(len(swipIndexes)))
			size := min64(partitionSize, uint64(len(swipIndexes))-offset)
			if size > 0 {
				log.Info("populating cache step", zap.Int("step", i), zap.Uint64("pages", size))
				if err := c.Populate(swipIndexes[offset : offset+size]); err != nil {
					return err
				}
			}
		}
		numCached := min64(uint64(i)*partitionSize, uint64(len(swipIndexes)))

		if err := runOnce(ctx, stdout, stderr, cfg, swips, file, 0, numCached, fileSize); err != nil {
			return err
		}
		if err := runOnce(ctx, stdout, stderr, cfg, swips, file, cfg.numEntriesPerRing, numCached, fileSize); err != nil {
			return err
		}
	}

	return nil
}

// runOnce times one QueryRunner pass - synchronous when numRingEntries==0,
// asynchronous otherwise - and writes its CSV row and, if requested, its
// result stream.
func runOnce(
	ctx context.Context,
	stdout, stderr io.Writer,
	cfg benchConfig,
	swips []swip.Swip,
	file iofile.File,
	numRingEntries int,
	numCached uint64,
	fileSize uint64,
) error {
	runner := query.New(query.Config{
		Swips:              swips,
		File:               file,
		NumThreads:         cfg.numThreads,
		NumRingEntries:     numRingEntries,
		NumTuplesPerMorsel: cfg.numTuplesPerMorsel,
		DoWork:             cfg.doWork,
	})

	kindOfIO := "synchronous"
	reportedRingEntries := 0
	if numRingEntries != 0 {
		kindOfIO = "asynchronous"
		reportedRingEntries = numRingEntries
	}

	start := time.Now()
	entries, err := runner.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	logger.Get(ctx).Info("scan pass complete", zap.String("mode", kindOfIO), zap.Duration("elapsed", elapsed))

	csvRow(stdout, kindOfIO, cfg.numThreads, int(numCached), len(swips), reportedRingEntries,
		cfg.numTuplesPerMorsel, cfg.doWork, cfg.doRandomIO, elapsed, fileSize)

	if cfg.doWork && cfg.printResult {
		printResults(stderr, entries)
	}
	return nil
}

func makeSwips(numPages uint64) []swip.Swip {
	swips := make([]swip.Swip, numPages)
	for i := range swips {
		swips[i] = swip.MakePageIndex(types.PageIndex(i))
	}
	return swips
}

// shuffle seeds a deterministic RNG, optionally shuffles the Swips themselves
// (simulating random I/O order), then always shuffles a fresh permutation of
// page positions used to drive cache population.
func shuffle(swips []swip.Swip, doRandomIO bool) []uint64 {
	rng := rand.New(rand.NewSource(rngSeed))

	if doRandomIO {
		rng.Shuffle(len(swips), func(i, j int) {
			swips[i], swips[j] = swips[j], swips[i]
		})
	}

	indexes := make([]uint64, len(swips))
	for i := range indexes {
		indexes[i] = uint64(i)
	}
	rng.Shuffle(len(indexes), func(i, j int) {
		indexes[i], indexes[j] = indexes[j], indexes[i]
	})
	return indexes
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
