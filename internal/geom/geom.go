// Package geom holds the small amount of plane geometry the fiber engine needs:
// point-to-line distance, resolution-independent coordinates and the angle
// bucketing used by the refraction field.
package geom

import (
	"image/color"
	"math"

	"walks/internal/core"
)

// Point is a position in surface coordinates (or normalized coordinates when
// produced by Normalize).
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// PointToLine returns the perpendicular distance from p to the infinite line
// through l1 and l2. l1 and l2 must be distinct.
func PointToLine(p, l1, l2 Point) float64 {
	dx := l2.X - l1.X
	dy := l2.Y - l1.Y
	cross := dy*p.X - dx*p.Y + l2.X*l1.Y - l2.Y*l1.X
	return math.Abs(cross) / math.Hypot(dx, dy)
}

// Normalize maps p from surface coordinates into [0, 1] space.
func Normalize(p Point, size core.Size) Point {
	return Point{X: p.X / float64(size.W), Y: p.Y / float64(size.H)}
}

// Denormalize maps p from [0, 1] space back into surface coordinates.
func Denormalize(p Point, size core.Size) Point {
	return Point{X: p.X * float64(size.W), Y: p.Y * float64(size.H)}
}

// Line is the implicit infinite line through a segment.
type Line struct {
	M    float64 // slope, ±Inf for vertical lines
	B    float64 // y intercept, infinite for vertical lines
	Norm float64 // normal angle: atan(M) + π/2
}

// LineThrough derives slope, intercept and normal angle for the line through a and b.
func LineThrough(a, b Point) Line {
	m := (b.Y - a.Y) / (b.X - a.X)
	return Line{
		M:    m,
		B:    a.Y - m*a.X,
		Norm: math.Atan(m) + math.Pi/2,
	}
}

// Bounds is an axis-aligned rectangle.
type Bounds struct {
	Min, Max Point
}

// SegmentBounds returns the bounding box of segment a-b grown by pad on every side.
func SegmentBounds(a, b Point, pad float64) Bounds {
	return Bounds{
		Min: Point{X: math.Min(a.X, b.X) - pad, Y: math.Min(a.Y, b.Y) - pad},
		Max: Point{X: math.Max(a.X, b.X) + pad, Y: math.Max(a.Y, b.Y) + pad},
	}
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Quadrant buckets the angle between a heading and a line normal.
type Quadrant uint8

const (
	QuadrantA Quadrant = iota // |ad| > 3π/2
	QuadrantB                 // |ad| > π
	QuadrantC                 // |ad| > π/2
	QuadrantD                 // |ad| <= π/2
)

var quadrantMarkers = [...]color.NRGBA{
	QuadrantA: {R: 255, G: 0, B: 0, A: 255},
	QuadrantB: {R: 0, G: 255, B: 0, A: 255},
	QuadrantC: {R: 0, G: 0, B: 255, A: 255},
	QuadrantD: {R: 255, G: 255, B: 0, A: 255},
}

// Marker returns the fixed debug color of the quadrant.
func (q Quadrant) Marker() color.NRGBA {
	if int(q) >= len(quadrantMarkers) {
		return color.NRGBA{A: 255}
	}
	return quadrantMarkers[q]
}

func (q Quadrant) String() string {
	switch q {
	case QuadrantA:
		return "A"
	case QuadrantB:
		return "B"
	case QuadrantC:
		return "C"
	case QuadrantD:
		return "D"
	default:
		return "?"
	}
}

// ClassifyAngle computes ad = norm - theta wrapped into (-2π, 2π) and buckets
// |ad| into a quadrant. Quadrants B and C shift ad by -π.
func ClassifyAngle(norm, theta float64) (float64, Quadrant) {
	ad := math.Mod(norm-theta, 2*math.Pi)
	abs := math.Abs(ad)
	switch {
	case abs > 3*math.Pi/2:
		return ad, QuadrantA
	case abs > math.Pi:
		return ad - math.Pi, QuadrantB
	case abs > math.Pi/2:
		return ad - math.Pi, QuadrantC
	default:
		return ad, QuadrantD
	}
}
