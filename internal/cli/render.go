package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"walks/internal/core"
	"walks/internal/scene"
	"walks/internal/surface"
)

type renderOpts struct {
	sceneOpts
	output string // PNG path; derived from preset, seed and run ID when empty
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a scene to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			path, err := runRender(cmd.Context(), cfg, opts.preset, opts.output)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	opts.bind(cmd.Flags(), "rings")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG (default <preset>-<seed>-<run>.png)")
	return cmd
}

// runRender draws cfg to completion without pacing and saves the result.
func runRender(ctx context.Context, cfg scene.Config, name, output string) (string, error) {
	runID := newRunID()
	logger := loggerFromContext(ctx).With("run", runID)
	if output == "" {
		output = fmt.Sprintf("%s-%d-%s.png", name, cfg.Seed, runID)
	}
	cfg.Mode = "immediate"

	raster, err := surface.NewRaster(core.Size{W: cfg.Width, H: cfg.Height})
	if err != nil {
		return "", err
	}
	defer raster.Close()

	prog := newProgress(logger)
	sc, err := scene.Assemble(cfg, raster, scene.WithLogger(logger))
	if err != nil {
		return "", err
	}
	logger.Info("rendering", "preset", name, "seed", cfg.Seed, "fibers", cfg.FiberCount, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	if err := sc.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		// Failed fibers stop alone; what the others drew is still saved.
		logger.Warn("some fibers failed", "failed", sc.Stats().Failed, "err", err)
	}
	if err := raster.SavePNG(output); err != nil {
		return "", fmt.Errorf("save %s: %w", output, err)
	}
	stats := sc.Stats()
	prog.done("rendered", "ticks", stats.Ticks, "reseeds", stats.Reseeds, "bends", stats.Bends, "out", output)
	return output, nil
}
