// Package fiber models a single directed walk and the interchangeable
// strategies that move, restyle and paint it.
//
// A fiber's life is split three ways: a Placement picks where a loop starts,
// a Renderer paints the current step and advances the position, and a
// Transform mutates heading, step length or paint after each step. Strategies
// are plain function values chosen at scene assembly; any randomness comes
// from the *core.RNG they close over.
package fiber

import (
	"fmt"
	"math"

	"walks/internal/surface"
)

// State is the record a fiber carries from one step to the next. The step
// counter within a loop is owned by the driver and is not part of State.
type State struct {
	X, Y  float64 // position in surface coordinates
	Theta float64 // heading in radians
	D     float64 // step length
	Color surface.Paint

	Steps int // steps per loop, fixed at creation
	Loop  int // remaining re-seed budget
}

// Validate checks the structural invariants of a freshly built state.
func (s State) Validate() error {
	if s.Steps <= 0 {
		return fmt.Errorf("fiber: steps must be positive, got %d", s.Steps)
	}
	if s.Loop < 0 {
		return fmt.Errorf("fiber: loop must not be negative, got %d", s.Loop)
	}
	if math.IsNaN(s.D) || math.IsInf(s.D, 0) {
		return fmt.Errorf("fiber: step length must be finite, got %v", s.D)
	}
	return nil
}

// Next returns the position one step ahead along the current heading.
func (s State) Next() (float64, float64) {
	return s.X + s.D*math.Cos(s.Theta), s.Y + s.D*math.Sin(s.Theta)
}

// Placement computes a spawn or respawn position and heading. loop is the
// number of loops the fiber has completed so far.
type Placement func(s State, loop int) State

// Transform mutates heading, step length or paint after a step has been drawn.
// step is the index of the step just drawn. Transforms must leave Steps and
// Loop alone.
type Transform func(s State, step int) (State, error)

// Renderer paints the current step on c and returns the state at the new
// position. Renderers never change Theta or D.
type Renderer func(c surface.Canvas, s State) (State, error)
