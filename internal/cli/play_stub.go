//go:build !ebiten

package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoViewer = errors.New("play requires building with the 'ebiten' tag: go run -tags ebiten ./cmd/walks play")

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Watch a scene being drawn (needs the ebiten build tag)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errNoViewer
		},
	}
}
