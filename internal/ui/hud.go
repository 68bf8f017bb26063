//go:build ebiten

package ui

import (
	"image/color"
	"unicode"

	"walks/internal/core"
	"walks/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type progressProvider interface {
	Progress() scene.Progress
}

// HUD is the side panel next to the drawing. It shows drawing progress, the
// adjustable controls and the rest of the scene configuration.
//
// Up and Down pick a control, Left and Right change it by one step, ten with
// Shift held. Every change restarts the drawing.
type HUD struct {
	sim   core.Sim
	width int
	title string

	knobs    *knobs
	ints     core.IntParameterSetter
	floats   core.FloatParameterSetter
	info     []core.Parameter
	progress scene.Progress
	tracked  bool

	panel *ebiten.Image
	pixel *ebiten.Image
}

// NewHUD builds a panel of the given width for sim.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: title(sim.Name())}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	var ctrls []core.ParameterControl
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		ctrls = p.ParameterControls()
	}
	h.knobs = newKnobs(ctrls)
	h.ints, _ = sim.(core.IntParameterSetter)
	h.floats, _ = sim.(core.FloatParameterSetter)
	return h
}

func title(name string) string {
	if name == "" {
		return "walks"
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Update handles panel keys and refreshes what the panel shows.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	if p, ok := h.sim.(parameterProvider); ok {
		h.info = h.knobs.sync(p.Parameters())
	}
	h.handleKeys()
	if p, ok := h.sim.(progressProvider); ok {
		h.progress, h.tracked = p.Progress(), true
	}
}

func (h *HUD) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		h.knobs.move(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		h.knobs.move(1)
	}
	steps := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		steps--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		steps++
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		steps *= 10
	}
	h.knobs.nudge(steps, h.ints, h.floats)
}

var (
	panelBg   = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	dimText   = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	brightTxt = color.RGBA{R: 225, G: 225, B: 235, A: 255}
	rowFocus  = color.RGBA{R: 44, G: 46, B: 58, A: 255}
	gaugeBg   = color.RGBA{R: 36, G: 38, B: 46, A: 255}
	gaugeFill = color.RGBA{R: 110, G: 150, B: 220, A: 255}
	doneFill  = color.RGBA{R: 120, G: 200, B: 140, A: 255}
)

const (
	pad       = 12
	rowHeight = 16
	gaugeH    = 3
)

// Draw paints the panel at offsetX, as tall as the scaled drawing.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBg)

	y := pad + rowHeight
	y = h.drawProgress(y)
	y = h.drawKnobs(y + rowHeight)
	h.drawInfo(y+rowHeight, height-pad)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

// drawProgress draws the title with the drawing state, a bar of finished
// fibers and the counters. It returns the baseline below the block.
func (h *HUD) drawProgress(y int) int {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, pad, y, brightTxt)
	if !h.tracked {
		return y
	}
	p := h.progress
	h.drawRight(stateText(p), y, dimText)

	y += 8
	fill := gaugeFill
	if p.Done {
		fill = doneFill
	}
	h.gauge(y, doneFraction(p), fill)
	y += gaugeH + rowHeight

	for _, line := range statusLines(p) {
		text.Draw(h.panel, line.label, face, pad, y, dimText)
		h.drawRight(line.value, y, brightTxt)
		if line.label == "Bends" && p.Bends > 0 {
			h.rect(pad+90, y-8, 8, 8, p.Quadrant.Marker())
		}
		y += rowHeight
	}
	return y
}

// drawKnobs lists the controls, the selected one highlighted, each with a
// gauge when it is bounded on both sides.
func (h *HUD) drawKnobs(y int) int {
	face := basicfont.Face7x13
	for i, k := range h.knobs.items {
		if i == h.knobs.selected {
			h.rect(pad/2, y-rowHeight+4, h.width-pad, rowHeight+gaugeH, rowFocus)
		}
		text.Draw(h.panel, k.ctrl.Label, face, pad, y, brightTxt)
		h.drawRight(k.text(), y, brightTxt)
		if f, ok := k.fill(); ok {
			h.gauge(y+3, f, gaugeFill)
		}
		y += rowHeight + gaugeH + 2
	}
	return y
}

// drawInfo lists the read-only parameters until bottom is reached.
func (h *HUD) drawInfo(y, bottom int) {
	face := basicfont.Face7x13
	for _, p := range h.info {
		if y > bottom {
			return
		}
		text.Draw(h.panel, p.Label, face, pad, y, dimText)
		h.drawRight(p.Value, y, dimText)
		y += rowHeight
	}
}

func (h *HUD) drawRight(s string, y int, clr color.Color) {
	face := basicfont.Face7x13
	w := text.BoundString(face, s).Dx()
	text.Draw(h.panel, s, face, h.width-pad-w, y, clr)
}

func (h *HUD) gauge(y int, f float64, clr color.Color) {
	w := h.width - 2*pad
	h.rect(pad, y, w, gaugeH, gaugeBg)
	h.rect(pad, y, int(float64(w)*clamp01(f)), gaugeH, clr)
}

func (h *HUD) rect(x, y, w, hgt int, clr color.Color) {
	if w <= 0 || hgt <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(hgt))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	h.panel.DrawImage(h.pixel, op)
}
