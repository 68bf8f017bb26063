package fiber

import (
	"math"

	"walks/internal/core"
	rng "walks/pkg/core"
)

// Identity leaves the state untouched.
func Identity() Transform {
	return func(s State, _ int) (State, error) { return s, nil }
}

// Fade sets the paint opacity to k·(1 − step/steps), so a fiber dissolves
// towards the end of every loop.
func Fade(k float64) Transform {
	return func(s State, step int) (State, error) {
		s.Color = s.Color.WithAlpha(k * (1 - float64(step)/float64(s.Steps)))
		return s, nil
	}
}

// Wander nudges the heading by up to ±π/10 and scales the step length by a
// factor in [0.9, 1.1).
func Wander(r *rng.RNG) Transform {
	return WanderWithin(r, 0, math.Inf(1))
}

// WanderWithin is Wander with the step length clamped to [min, max].
func WanderWithin(r *rng.RNG, min, max float64) Transform {
	return func(s State, _ int) (State, error) {
		s.Theta += r.Range(-math.Pi/10, math.Pi/10)
		s.D = math.Max(min, math.Min(max, s.D*r.Range(0.9, 1.1)))
		return s, nil
	}
}

// Spiral turns the heading by U(0.1, 1)·π/steps every step, curling the path.
func Spiral(r *rng.RNG) Transform {
	return func(s State, _ int) (State, error) {
		s.Theta += r.Range(0.1, 1) * math.Pi / float64(s.Steps)
		return s, nil
	}
}

// Bounce reverses the heading of a fiber that has left the surface.
func Bounce(size core.Size) Transform {
	w, h := float64(size.W), float64(size.H)
	return func(s State, _ int) (State, error) {
		if s.X > w || s.X < 0 || s.Y > h || s.Y < 0 {
			s.Theta += math.Pi
		}
		return s, nil
	}
}

// Chain applies transforms left to right, stopping at the first error.
func Chain(ts ...Transform) Transform {
	if len(ts) == 1 {
		return ts[0]
	}
	return func(s State, step int) (State, error) {
		var err error
		for _, t := range ts {
			if s, err = t(s, step); err != nil {
				return s, err
			}
		}
		return s, nil
	}
}
