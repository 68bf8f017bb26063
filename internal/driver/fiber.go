// Package driver advances fibers tick by tick. A Fiber owns one walk and its
// per-loop step counter; a Scheduler interleaves many fibers on a single
// goroutine, one atomic tick per fiber per frame.
package driver

import (
	"errors"
	"fmt"

	"walks/internal/fiber"
	"walks/internal/surface"
)

// Status is the lifecycle stage of a fiber.
type Status uint8

const (
	// StatusActive means the fiber is inside a loop.
	StatusActive Status = iota
	// StatusReseed means the last tick closed a loop and the fiber was
	// placed again; the next tick starts a fresh loop.
	StatusReseed
	// StatusTerminated means the loop budget is spent.
	StatusTerminated
	// StatusFailed means a render or transform returned an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusReseed:
		return "reseed"
	case StatusTerminated:
		return "terminated"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Pending reports whether a fiber in this status still wants ticks.
func (s Status) Pending() bool {
	return s == StatusActive || s == StatusReseed
}

// ErrFinished is returned when ticking a fiber that no longer runs.
var ErrFinished = errors.New("driver: fiber finished")

// TickEvent describes one completed tick.
type TickEvent struct {
	Fiber  int
	Tick   int // 1-based count of ticks run by the fiber
	Step   int // step index that was just drawn
	Loop   int // loops completed before this tick
	Before fiber.State
	After  fiber.State
	Status Status
}

// Observer is notified after every successful tick.
type Observer func(TickEvent)

// Strategies bundles the three pluggable behaviors of a fiber. A nil Place
// keeps the previous position on reseed and a nil Transform is the identity.
type Strategies struct {
	Place     fiber.Placement
	Transform fiber.Transform
	Render    fiber.Renderer
}

// Options carries the optional parts of a fiber.
type Options struct {
	// Tones are alternated into the fiber paint at every loop boundary.
	// Leave both zero to keep the paint as the transform left it.
	Tones    [2]surface.Paint
	Observer Observer
}

// Fiber drives one walk through its loops.
type Fiber struct {
	id       int
	state    fiber.State
	strat    Strategies
	tones    [2]surface.Paint
	hasTones bool
	observer Observer

	step   int
	ticks  int
	loops  int
	tone   int
	status Status
	err    error
}

// NewFiber validates s and returns a fiber ready for its first tick.
func NewFiber(id int, s fiber.State, strat Strategies, opts Options) (*Fiber, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("fiber %d: %w", id, err)
	}
	if strat.Render == nil {
		return nil, fmt.Errorf("fiber %d: renderer is required", id)
	}
	if strat.Transform == nil {
		strat.Transform = fiber.Identity()
	}
	return &Fiber{
		id:       id,
		state:    s,
		strat:    strat,
		tones:    opts.Tones,
		hasTones: opts.Tones != [2]surface.Paint{},
		observer: opts.Observer,
	}, nil
}

func (f *Fiber) ID() int { return f.id }
func (f *Fiber) State() fiber.State { return f.state }
func (f *Fiber) Step() int { return f.step }
func (f *Fiber) Ticks() int { return f.ticks }
func (f *Fiber) LoopsCompleted() int { return f.loops }
func (f *Fiber) Status() Status { return f.status }

// Err returns the error that failed the fiber, if any.
func (f *Fiber) Err() error { return f.err }

// Tick runs one render and transform cycle on c and advances the state
// machine. Errors fail the fiber; it is never ticked again.
func (f *Fiber) Tick(c surface.Canvas) error {
	if !f.status.Pending() {
		return fmt.Errorf("fiber %d: %w (%s)", f.id, ErrFinished, f.status)
	}
	before := f.state
	steps, loop := before.Steps, before.Loop

	drawn, err := f.strat.Render(c, before)
	if err != nil {
		return f.fail(fmt.Errorf("render step %d: %w", f.step, err))
	}
	next, err := f.strat.Transform(drawn, f.step)
	if err != nil {
		return f.fail(fmt.Errorf("transform step %d: %w", f.step, err))
	}
	next.Steps, next.Loop = steps, loop

	f.ticks++
	event := TickEvent{Fiber: f.id, Tick: f.ticks, Step: f.step, Loop: f.loops, Before: before}

	switch {
	case f.step+1 < steps:
		f.step++
		f.status = StatusActive
	case next.Loop > 0:
		next.Loop--
		f.step = 0
		f.loops++
		if f.hasTones {
			f.tone ^= 1
			next.Color = f.tones[f.tone]
		}
		if f.strat.Place != nil {
			next = f.strat.Place(next, f.loops)
			next.Steps, next.Loop = steps, loop-1
		}
		f.status = StatusReseed
	default:
		f.status = StatusTerminated
	}
	f.state = next

	if f.observer != nil {
		event.After = next
		event.Status = f.status
		f.observer(event)
	}
	return nil
}

func (f *Fiber) fail(err error) error {
	f.status = StatusFailed
	f.err = fmt.Errorf("fiber %d: %w", f.id, err)
	return f.err
}
