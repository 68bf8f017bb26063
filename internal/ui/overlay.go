//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"walks/internal/core"
	"walks/internal/fiber"
	"walks/internal/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type boundaryProvider interface {
	Boundary() (p1, p2 geom.Point, threshold float64, ok bool)
}

type headsProvider interface {
	Heads() []fiber.State
}

// Overlay draws optional debugging visuals on top of the scene: the
// refraction boundary with its activation band, and the head of every fiber
// still drawing.
type Overlay struct {
	sim          core.Sim
	scale        int
	showBoundary bool
	showHeads    bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: 1 for the boundary, 2 for fiber heads.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBoundary = !o.showBoundary
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeads = !o.showHeads
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := float64(o.scale)
	if scale <= 0 {
		scale = 1
	}

	if o.showBoundary {
		if provider, ok := o.sim.(boundaryProvider); ok {
			if p1, p2, threshold, ok := provider.Boundary(); ok {
				o.drawBoundary(screen, p1, p2, threshold, scale)
			}
		}
	}
	if o.showHeads {
		if provider, ok := o.sim.(headsProvider); ok {
			o.drawHeads(screen, provider.Heads(), scale)
		}
	}
}

func (o *Overlay) drawBoundary(screen *ebiten.Image, p1, p2 geom.Point, threshold, scale float64) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	if length <= 1e-9 {
		return
	}
	// Unit normal, scaled to the band half-width.
	nx, ny := -dy/length*threshold, dx/length*threshold

	band := color.RGBA{R: 255, G: 200, B: 80, A: 110}
	o.drawLine(screen, (p1.X+nx)*scale, (p1.Y+ny)*scale, (p2.X+nx)*scale, (p2.Y+ny)*scale, 1, band)
	o.drawLine(screen, (p1.X-nx)*scale, (p1.Y-ny)*scale, (p2.X-nx)*scale, (p2.Y-ny)*scale, 1, band)
	o.drawLine(screen, p1.X*scale, p1.Y*scale, p2.X*scale, p2.Y*scale, math.Max(1, scale*0.75), color.RGBA{R: 255, G: 120, B: 40, A: 220})

	end := color.RGBA{R: 255, G: 80, B: 40, A: 255}
	o.drawPoint(screen, p1.X*scale, p1.Y*scale, 4*scale, end)
	o.drawPoint(screen, p2.X*scale, p2.Y*scale, 4*scale, end)
}

func (o *Overlay) drawHeads(screen *ebiten.Image, heads []fiber.State, scale float64) {
	const tick = 6.0
	for _, s := range heads {
		x, y := s.X*scale, s.Y*scale
		col := headingColor(s.Theta)
		o.drawPoint(screen, x, y, 3*scale, col)
		o.drawLine(screen, x, y, x+math.Cos(s.Theta)*tick*scale, y+math.Sin(s.Theta)*tick*scale, 1, col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

// headingColor maps a heading onto a cyan-to-white ramp so opposite
// directions read differently.
func headingColor(theta float64) color.RGBA {
	t := clamp01((math.Cos(theta) + 1) / 2)
	r := uint8(math.Round(80 + 170*t))
	g := uint8(math.Round(170 + 80*t))
	b := uint8(math.Round(230 + 20*t))
	return color.RGBA{R: r, G: g, B: b, A: 220}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
