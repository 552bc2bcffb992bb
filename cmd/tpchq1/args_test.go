package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgsHappyPath(t *testing.T) {
	requireT := require.New(t)

	cfg, err := parseArgs([]string{
		"/tmp/lineitem.dat", "4", "32", "322", "true", "false", "true", "true",
	})
	requireT.NoError(err)
	requireT.Equal("/tmp/lineitem.dat", cfg.path)
	requireT.Equal(4, cfg.numThreads)
	requireT.Equal(32, cfg.numEntriesPerRing)
	requireT.Equal(322, cfg.numTuplesPerMorsel)
	requireT.True(cfg.doWork)
	requireT.False(cfg.doRandomIO)
	requireT.True(cfg.printResult)
	requireT.True(cfg.printHeader)
}

func TestParseArgsRejectsNonIntegerThreadCount(t *testing.T) {
	requireT := require.New(t)

	_, err := parseArgs([]string{
		"/tmp/lineitem.dat", "four", "32", "322", "true", "false", "true", "true",
	})
	requireT.Error(err)
}

func TestParseArgsRejectsNonBoolFlag(t *testing.T) {
	requireT := require.New(t)

	_, err := parseArgs([]string{
		"/tmp/lineitem.dat", "4", "32", "322", "maybe", "false", "true", "true",
	})
	requireT.Error(err)
}
