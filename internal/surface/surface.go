// Package surface defines the drawing primitives the fiber engine paints
// through. The engine never creates or resizes surfaces itself; it receives a
// Canvas and issues clear, rectangle, line, dot, pattern and compositing calls.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"walks/internal/core"
)

// ErrUnsupportedComposite is returned when a canvas cannot switch to the
// requested compositing mode.
var ErrUnsupportedComposite = errors.New("surface: unsupported composite mode")

// Composite selects how subsequent drawing is blended onto the surface.
type Composite uint8

const (
	CompositeNormal Composite = iota
	CompositeOverlay
)

func (c Composite) String() string {
	switch c {
	case CompositeNormal:
		return "normal"
	case CompositeOverlay:
		return "overlay"
	default:
		return fmt.Sprintf("composite(%d)", uint8(c))
	}
}

// Canvas is a 2D raster drawing context. Calls are not reentrant: each call
// completes before the next one starts.
type Canvas interface {
	Size() core.Size
	// Clear resets the whole surface to bg, or to transparent when bg is nil.
	Clear(bg color.Color) error
	FillRect(x, y, w, h float64, p Paint) error
	// Line strokes a straight segment. Gradient paints run from (x1,y1) to (x2,y2).
	Line(x1, y1, x2, y2, width float64, p Paint) error
	// Dot fills a circle of radius r centred on (x, y).
	Dot(x, y, r float64, p Paint) error
	// FillPattern covers the surface with tile repeated in both directions.
	FillPattern(tile image.Image) error
	SetComposite(mode Composite) error
}

// Paint is either a solid color or a two-stop linear gradient. Gradient
// endpoints are not part of the paint: they are taken from the geometry of
// each draw call.
type Paint struct {
	From   color.NRGBA // solid color, or gradient start
	To     color.NRGBA // gradient end, unused for solid paints
	Linear bool
}

// Solid returns a single-color paint.
func Solid(c color.NRGBA) Paint { return Paint{From: c} }

// Linear returns a two-stop gradient paint.
func Linear(from, to color.NRGBA) Paint { return Paint{From: from, To: to, Linear: true} }

// At returns the paint color at gradient offset t in [0, 1].
func (p Paint) At(t float64) color.NRGBA {
	if !p.Linear {
		return p.From
	}
	t = math.Max(0, math.Min(1, t))
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.NRGBA{
		R: lerp(p.From.R, p.To.R),
		G: lerp(p.From.G, p.To.G),
		B: lerp(p.From.B, p.To.B),
		A: lerp(p.From.A, p.To.A),
	}
}

// Alpha returns the opacity of the paint's first stop in [0, 1].
func (p Paint) Alpha() float64 { return float64(p.From.A) / 255 }

// WithAlpha returns a copy with every stop's opacity set to a in [0, 1].
func (p Paint) WithAlpha(a float64) Paint {
	v := uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
	p.From.A = v
	if p.Linear {
		p.To.A = v
	}
	return p
}

// RGBA builds a non-premultiplied color from 0-255 channels (clamped) and an
// alpha in [0, 1].
func RGBA(r, g, b, a float64) color.NRGBA {
	return color.NRGBA{
		R: clampByte(r),
		G: clampByte(g),
		B: clampByte(b),
		A: clampByte(a * 255),
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
