package fiber

import (
	"math"

	"walks/internal/core"
	"walks/internal/geom"
	rng "walks/pkg/core"
)

// RingSpec describes a circular spawn band.
type RingSpec struct {
	Center geom.Point
	RMin   float64
	RMax   float64
}

// RingFor centres a band on the surface with radii expressed as fractions of
// the surface's smaller dimension.
func RingFor(size core.Size, inner, outer float64) RingSpec {
	m := float64(size.Min())
	return RingSpec{
		Center: geom.Pt(float64(size.W)/2, float64(size.H)/2),
		RMin:   inner * m,
		RMax:   outer * m,
	}
}

// Ring spawns on a uniformly random angle of the band, heading outward.
func Ring(r *rng.RNG, spec RingSpec) Placement {
	return func(s State, _ int) State {
		return onRing(r, s, spec.Center, spec.RMin, spec.RMax)
	}
}

// MovingRing is Ring whose centre drifts by velocity per completed loop, plus
// a uniform jitter of up to ±jitter on each axis.
func MovingRing(r *rng.RNG, spec RingSpec, velocity geom.Point, jitter float64) Placement {
	return func(s State, loop int) State {
		c := geom.Pt(
			spec.Center.X+velocity.X*float64(loop)+r.Range(-jitter, jitter),
			spec.Center.Y+velocity.Y*float64(loop)+r.Range(-jitter, jitter),
		)
		return onRing(r, s, c, spec.RMin, spec.RMax)
	}
}

// ExpandingRing is Ring whose band grows by growth per completed loop, plus a
// uniform radial jitter of up to ±jitter.
func ExpandingRing(r *rng.RNG, spec RingSpec, growth, jitter float64) Placement {
	return func(s State, loop int) State {
		grow := growth*float64(loop) + r.Range(-jitter, jitter)
		lo := math.Max(0, spec.RMin+grow)
		hi := math.Max(lo, spec.RMax+grow)
		return onRing(r, s, spec.Center, lo, hi)
	}
}

// Random spawns anywhere on the surface, heading away from its centre.
func Random(r *rng.RNG, size core.Size) Placement {
	cx, cy := float64(size.W)/2, float64(size.H)/2
	return func(s State, _ int) State {
		s.X = r.Range(0, float64(size.W))
		s.Y = r.Range(0, float64(size.H))
		s.Theta = math.Atan2(s.Y-cy, s.X-cx)
		return s
	}
}

// Fixed always spawns at the same point and heading.
func Fixed(x, y, theta float64) Placement {
	return func(s State, _ int) State {
		s.X, s.Y, s.Theta = x, y, theta
		return s
	}
}

func onRing(r *rng.RNG, s State, c geom.Point, rMin, rMax float64) State {
	theta := r.Angle()
	radius := r.Range(rMin, rMax)
	s.X = c.X + radius*math.Cos(theta)
	s.Y = c.Y + radius*math.Sin(theta)
	s.Theta = theta
	return s
}
