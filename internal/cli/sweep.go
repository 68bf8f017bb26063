package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"walks/internal/sweep"
)

type sweepOpts struct {
	sceneOpts
	strengths  []float64
	thresholds []float64
	workers    int
	outDir     string
	top        int
}

func newSweepCmd() *cobra.Command {
	opts := sweepOpts{
		strengths:  []float64{0.1, 0.25, 0.5, 1, 2},
		thresholds: []float64{0.5, 1.1, 2, 4},
		workers:    runtime.NumCPU(),
		top:        5,
	}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Render a grid of refraction settings in parallel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			if opts.outDir != "" {
				if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
					return err
				}
			}
			logger := loggerFromContext(cmd.Context()).With("run", newRunID())
			sets := sweep.Grid(opts.strengths, opts.thresholds)
			logger.Info("sweeping", "sets", len(sets), "workers", opts.workers, "preset", opts.preset)

			prog := newProgress(logger)
			results, err := sweep.Run(cmd.Context(), sets, sweep.Options{
				Base:    cfg,
				Workers: opts.workers,
				OutDir:  opts.outDir,
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			prog.done("sweep finished", "sets", len(results))
			return printResults(cmd.OutOrStdout(), results, opts.top)
		},
	}

	opts.bind(cmd.Flags(), "refract")
	cmd.Flags().Float64SliceVar(&opts.strengths, "strengths", opts.strengths, "refraction strengths to try")
	cmd.Flags().Float64SliceVar(&opts.thresholds, "thresholds", opts.thresholds, "activation thresholds to try, in pixels")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "number of worker goroutines")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "write one PNG per scenario into this directory")
	cmd.Flags().IntVar(&opts.top, "top", opts.top, "how many results to print")
	return cmd
}

func printResults(w io.Writer, results []sweep.Result, top int) error {
	fmt.Fprintf(w, "Top %d results:\n", min(top, len(results)))
	for i := 0; i < len(results) && i < top; i++ {
		r := results[i]
		if r.Err != nil {
			fmt.Fprintf(w, "%2d) %s failed: %v\n", i+1, r.Params, r.Err)
			continue
		}
		fmt.Fprintf(w, "%2d) bends=%d ink=%.3f ticks=%d elapsed=%s %s\n",
			i+1, r.Stats.Bends, r.Ink, r.Stats.Ticks, r.Elapsed.Round(time.Millisecond), r.Params)
	}
	best, err := sweep.Best(results)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nBest overall: %s (bends=%d)\n", best.Params, best.Stats.Bends)
	return err
}
