// Command tpchq1 is the benchmark front-end: it loads a paged lineitem file,
// sweeps the cached-fraction axis from 0% to 100%, and times a synchronous
// and an asynchronous scan-and-aggregate pass at each step.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outofforest/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tpchq1 <lineitem.dat> <num_threads> <num_entries_per_ring> <num_tuples_per_morsel> <do_work> <do_random_io> <print_result> <print_header>",
		Short: "Runs the morsel-driven TPC-H Q1 scan-and-aggregate benchmark",
		Args:  cobra.ExactArgs(8),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parseArgs(args)
			if err != nil {
				return err
			}
			ctx := logger.WithLogger(cmd.Context(), logger.New(logger.DefaultConfig))
			return run(ctx, cfg, os.Stdout, os.Stderr)
		},
		SilenceUsage: true,
	}
	return cmd
}
