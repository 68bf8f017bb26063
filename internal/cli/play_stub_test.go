//go:build !ebiten

package cli

import (
	"errors"
	"testing"
)

func TestPlayNeedsViewerBuild(t *testing.T) {
	if _, err := execute(t, "play"); !errors.Is(err, errNoViewer) {
		t.Fatalf("err = %v", err)
	}
}
