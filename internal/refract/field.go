// Package refract implements a virtual boundary that bends fibers passing
// close to it, coloring each bend by its direction and strength.
package refract

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"walks/internal/core"
	"walks/internal/fiber"
	"walks/internal/geom"
	"walks/internal/surface"
)

// ErrCoincident is returned when both boundary points are the same.
var ErrCoincident = errors.New("refract: boundary points coincide")

// DefaultThreshold is the activation distance in surface units.
const DefaultThreshold = 1.1

// Options tunes a Field.
type Options struct {
	Refraction float64 // bend strength
	DotChroma  float64 // channel shift per radian of bend for the trace dot
	LineChroma float64 // channel shift per radian of bend for the fiber tint
	Threshold  float64 // activation distance from the line, surface units

	TraceRadius float64
	TraceAlpha  float64
	TintAlpha   float64

	// Debug paints a quadrant marker wherever the field activates.
	Debug bool
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		Refraction:  0.5,
		DotChroma:   100,
		LineChroma:  200,
		Threshold:   DefaultThreshold,
		TraceRadius: 1,
		TraceAlpha:  0.1,
		TintAlpha:   0.05,
	}
}

// Field is an immutable refracting boundary in surface coordinates.
type Field struct {
	a, b   geom.Point
	line   geom.Line
	bounds geom.Bounds
	opts   Options
}

// New builds a field from two normalized boundary points, denormalized
// against size.
func New(a, b geom.Point, size core.Size, opts Options) (*Field, error) {
	return NewAbsolute(geom.Denormalize(a, size), geom.Denormalize(b, size), opts)
}

// NewAbsolute builds a field from two boundary points in surface coordinates.
func NewAbsolute(a, b geom.Point, opts Options) (*Field, error) {
	if a == b {
		return nil, fmt.Errorf("%w: %v", ErrCoincident, a)
	}
	if !(opts.Threshold > 0) {
		return nil, fmt.Errorf("refract: threshold must be positive, got %v", opts.Threshold)
	}
	if math.IsNaN(opts.Refraction) || math.IsInf(opts.Refraction, 0) {
		return nil, fmt.Errorf("refract: refraction must be finite, got %v", opts.Refraction)
	}
	return &Field{
		a:      a,
		b:      b,
		line:   geom.LineThrough(a, b),
		bounds: geom.SegmentBounds(a, b, opts.Threshold),
		opts:   opts,
	}, nil
}

// Endpoints returns the boundary segment in surface coordinates.
func (f *Field) Endpoints() (geom.Point, geom.Point) { return f.a, f.b }

// Line returns the implicit line through the boundary.
func (f *Field) Line() geom.Line { return f.line }

// Options returns the field tuning.
func (f *Field) Options() Options { return f.opts }

// Bend describes how the field acts on one fiber step.
type Bend struct {
	R        float64 // distance from the boundary line
	Ad       float64 // heading-to-normal angle after quadrant adjustment
	Quadrant geom.Quadrant
	Delta    float64     // heading change
	Trace    color.NRGBA // low-opacity dot left at the crossing
	Tint     color.NRGBA // new fiber paint
}

// Bend computes the effect of the field on s. ok is false when s lies outside
// the activation band, in which case the field does nothing.
func (f *Field) Bend(s fiber.State) (Bend, bool) {
	p := geom.Pt(s.X, s.Y)
	if !f.bounds.Contains(p) {
		return Bend{}, false
	}
	r := geom.PointToLine(p, f.a, f.b)
	if r >= f.opts.Threshold {
		return Bend{}, false
	}
	ad, q := geom.ClassifyAngle(f.line.Norm, s.Theta)
	delta := f.opts.Refraction * math.Sin(ad)
	dot := delta * f.opts.DotChroma
	tint := delta * f.opts.LineChroma
	return Bend{
		R:        r,
		Ad:       ad,
		Quadrant: q,
		Delta:    delta,
		Trace:    surface.RGBA(128-dot, 128+dot, 64, f.opts.TraceAlpha),
		Tint:     surface.RGBA(128-tint, 128+tint, 160, f.opts.TintAlpha),
	}, true
}

// Transform returns the fiber transform that applies the field. Trace dots
// and debug markers are painted on c; a nil canvas skips them.
func (f *Field) Transform(c surface.Canvas) fiber.Transform {
	return func(s fiber.State, _ int) (fiber.State, error) {
		bend, ok := f.Bend(s)
		if !ok {
			return s, nil
		}
		if c != nil {
			if f.opts.Debug {
				marker := surface.Solid(bend.Quadrant.Marker())
				if err := c.Dot(s.X, s.Y, f.opts.TraceRadius*2, marker); err != nil {
					return s, err
				}
			}
			if err := c.Dot(s.X, s.Y, f.opts.TraceRadius, surface.Solid(bend.Trace)); err != nil {
				return s, err
			}
		}
		s.Theta += bend.Delta
		s.Color = surface.Solid(bend.Tint)
		return s, nil
	}
}
