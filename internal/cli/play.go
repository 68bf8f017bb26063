//go:build ebiten

package cli

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"walks/internal/app"
	"walks/internal/scene"
)

func newPlayCmd() *cobra.Command {
	var opts sceneOpts
	view := app.NewConfig()

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Watch a scene being drawn frame by frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			view.InheritTPS(cmd.Flags(), cfg.TPS)
			view.Normalize()
			logger := loggerFromContext(cmd.Context()).With("run", newRunID())

			anim, err := scene.NewAnimation(opts.preset, cfg, scene.WithLogger(logger))
			if err != nil {
				return err
			}
			defer anim.Close()

			game := app.New(anim, *view, cfg.Seed, logger)
			size := anim.Size()
			ebiten.SetWindowTitle("walks: " + anim.Name())
			ebiten.SetTPS(view.TPS)
			ebiten.SetWindowSize(size.W*view.Scale+view.HUDWidth, size.H*view.Scale)

			logger.Info("playing", "preset", opts.preset, "seed", cfg.Seed, "tps", view.TPS)
			if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}

	opts.bind(cmd.Flags(), "rings")
	view.Bind(cmd.Flags())
	return cmd
}
