package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"walks/internal/scene"
)

func newPresetsCmd() *cobra.Command {
	var keys bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List presets, strategies and override keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPresets(cmd.OutOrStdout(), keys)
		},
	}

	cmd.Flags().BoolVar(&keys, "keys", false, "also list every key accepted by --set")
	return cmd
}

func printPresets(w io.Writer, keys bool) error {
	for _, name := range scene.PresetNames() {
		cfg, _ := scene.Preset(name)
		if _, err := fmt.Fprintf(w, "%-8s %s / %s / %s, %d fibers\n",
			name, cfg.Placement, cfg.Transform, cfg.Renderer, cfg.FiberCount); err != nil {
			return err
		}
	}
	placements, transforms, renderers := scene.Strategies()
	fmt.Fprintf(w, "\nplacements: %s\n", strings.Join(placements, ", "))
	fmt.Fprintf(w, "transforms: %s (chain with +)\n", strings.Join(transforms, ", "))
	fmt.Fprintf(w, "renderers:  %s\n", strings.Join(renderers, ", "))
	if keys {
		_, err := fmt.Fprintf(w, "\nkeys: %s\n", strings.Join(scene.OverrideKeys(), ", "))
		return err
	}
	return nil
}
