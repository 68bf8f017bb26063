//go:build !ebiten

package app

import (
	"errors"

	"github.com/charmbracelet/log"

	"walks/internal/core"
)

var errHeadless = errors.New("app: the viewer needs the 'ebiten' build tag")

// Game stands in for the viewer in headless builds. New panics; there is
// nothing to show a window with.
type Game struct{}

func New(core.Sim, Config, int64, *log.Logger) *Game { panic(errHeadless) }

func (g *Game) Reset(int64) {}

func (g *Game) Update() error { return errHeadless }

func (g *Game) Draw(any) {}

func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
