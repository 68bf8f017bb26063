//go:build ebiten

package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"walks/internal/core"
	"walks/internal/render"
	"walks/internal/ui"
)

type pngSaver interface {
	SavePNG(path string) error
}

// Game adapts a core animation to the ebiten.Game interface. Every Update
// advances the animation by one frame, so the ebiten TPS sets the pace.
type Game struct {
	sim     core.Sim
	painter *render.ImagePainter
	overlay *ui.Overlay
	hud     *ui.HUD
	log     *log.Logger

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
	failed   bool
}

// New constructs a Game for the provided animation.
func New(sim core.Sim, cfg Config, seed int64, logger *log.Logger) *Game {
	cfg.Normalize()
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewImagePainter(size.W, size.H, nil),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		log:      logger,
		scale:    cfg.Scale,
		hudWidth: cfg.HUDWidth,
		seed:     seed,
	}
}

// Reset restarts the drawing with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	if err := g.sim.Reset(seed); err != nil {
		g.log.Error("reset failed", "seed", seed, "err", err)
	}
	g.tickOnce = false
	g.failed = false
	g.log.Debug("reset", "seed", seed)
}

// Update handles keys and advances the animation. Q or Esc quits, Space
// pauses, Enter resumes, N steps once, R restarts, S restarts with a new seed
// and P saves the current frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.save()
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update()
	}

	if ((!g.paused) || g.tickOnce) && !g.sim.Done() {
		// A failing fiber halts alone; the rest of the drawing carries on.
		if err := g.sim.Step(); err != nil && !g.failed {
			g.failed = true
			g.log.Warn("fiber error", "err", err)
		}
		if g.sim.Done() {
			g.log.Info("drawing complete", "seed", g.seed)
		}
		g.tickOnce = false
	}
	return nil
}

// save writes the current frame to <name>-<seed>-<unix time>.png in the
// working directory.
func (g *Game) save() {
	saver, ok := g.sim.(pngSaver)
	if !ok {
		return
	}
	path := fmt.Sprintf("%s-%d-%d.png", g.sim.Name(), g.seed, time.Now().Unix())
	if err := saver.SavePNG(path); err != nil {
		g.log.Error("save failed", "path", path, "err", err)
		return
	}
	g.log.Info("saved frame", "path", path)
}

// Draw renders the current surface, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Image(), g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
