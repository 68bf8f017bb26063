package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"walks/internal/scene"
)

// Execute runs the walks CLI with ctx and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Logs go to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "walks",
		Short:        "walks draws line art from many small directed walks",
		Long:         `walks simulates fibers, short walks that step, turn and re-seed themselves, and records their paths as line art. Scenes are built from presets, TOML files and key=value overrides.`,
		SilenceUsage: true,
	}
	withLogging(root, logOut)

	root.AddCommand(newRenderCmd())
	root.AddCommand(newPlayCmd())
	root.AddCommand(newSweepCmd())
	root.AddCommand(newPresetsCmd())
	return root
}

// NewSweepCommand returns the sweep command as a root of its own, for the
// standalone refract-sweep binary.
func NewSweepCommand(logOut io.Writer) *cobra.Command {
	cmd := newSweepCmd()
	cmd.Use = "refract-sweep"
	cmd.SilenceUsage = true
	return withLogging(cmd, logOut)
}

// withLogging adds --verbose to root and hands every subcommand a logger
// through its context. gg logs through the same logger.
func withLogging(root *cobra.Command, logOut io.Writer) *cobra.Command {
	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		logger := newLogger(logOut, level)
		gg.SetLogger(slog.New(logger))
		cmd.SetContext(withLogger(cmd.Context(), logger))
	}
	return root
}

// sceneOpts are the flags every scene-building command shares.
type sceneOpts struct {
	preset string
	config string
	set    []string
	seed   int64
}

func (o *sceneOpts) bind(fs *pflag.FlagSet, preset string) {
	fs.StringVarP(&o.preset, "preset", "p", preset, "preset to start from: "+strings.Join(scene.PresetNames(), ", "))
	fs.StringVarP(&o.config, "config", "c", "", "TOML scene file applied on top of the preset")
	fs.StringArrayVarP(&o.set, "set", "s", nil, "key=value override, repeatable (see 'walks presets --keys')")
	fs.Int64Var(&o.seed, "seed", 0, "random seed (defaults to the scene's)")
}

// load layers preset, file, overrides and seed, in that order.
func (o *sceneOpts) load(fs *pflag.FlagSet) (scene.Config, error) {
	cfg, ok := scene.Preset(o.preset)
	if !ok {
		return scene.Config{}, fmt.Errorf("unknown preset %q (have %s)", o.preset, strings.Join(scene.PresetNames(), ", "))
	}
	if o.config != "" {
		var err error
		if cfg, err = scene.LoadFile(o.config, cfg); err != nil {
			return scene.Config{}, err
		}
	}
	if len(o.set) > 0 {
		m, err := scene.ParseAssignments(o.set)
		if err != nil {
			return scene.Config{}, err
		}
		if cfg, err = scene.Override(cfg, m); err != nil {
			return scene.Config{}, err
		}
	}
	if fs.Changed("seed") {
		cfg.Seed = o.seed
	}
	if err := cfg.Validate(); err != nil {
		return scene.Config{}, err
	}
	return cfg, nil
}
