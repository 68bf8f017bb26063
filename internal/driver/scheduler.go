package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"walks/internal/core"
	"walks/internal/surface"
)

// Mode selects how Run spaces frames.
type Mode uint8

const (
	// ModePaced runs one frame per FixedStep tick.
	ModePaced Mode = iota
	// ModeImmediate runs frames back to back.
	ModeImmediate
)

func (m Mode) String() string {
	switch m {
	case ModePaced:
		return "paced"
	case ModeImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode maps "paced" or "immediate" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paced", "":
		return ModePaced, nil
	case "immediate", "batch":
		return ModeImmediate, nil
	default:
		return ModePaced, fmt.Errorf("driver: unknown mode %q", s)
	}
}

// SchedulerConfig is fixed at construction.
type SchedulerConfig struct {
	Mode Mode
	TPS  int              // frames per second in paced mode, 60 when <= 0
	Now  func() time.Time // clock for pacing, time.Now when nil
}

// Scheduler owns the frame-tick queue. Fibers tick in creation order, one
// tick each per frame. It is not safe for concurrent use.
type Scheduler struct {
	canvas  surface.Canvas
	mode    Mode
	timer   *core.FixedStep
	queue   []*Fiber
	fibers  []*Fiber
	frames  int
	stopped bool
}

// NewScheduler returns a scheduler drawing on c.
func NewScheduler(c surface.Canvas, cfg SchedulerConfig) *Scheduler {
	return &Scheduler{
		canvas: c,
		mode:   cfg.Mode,
		timer:  core.NewFixedStepWithClock(cfg.TPS, cfg.Now),
	}
}

// Spawn queues f behind every fiber spawned before it.
func (s *Scheduler) Spawn(f *Fiber) {
	if f == nil || s.stopped {
		return
	}
	s.fibers = append(s.fibers, f)
	if f.Status().Pending() {
		s.queue = append(s.queue, f)
	}
}

func (s *Scheduler) Mode() Mode { return s.mode }
func (s *Scheduler) Frames() int { return s.frames }
func (s *Scheduler) Fibers() []*Fiber { return s.fibers }
func (s *Scheduler) Pending() int { return len(s.queue) }
func (s *Scheduler) Stopped() bool { return s.stopped }
func (s *Scheduler) SetTPS(tps int) { s.timer.SetTPS(tps) }
func (s *Scheduler) Interval() time.Duration { return s.timer.Interval() }

// Stop drops every pending tick. Fibers keep their last state.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.queue = nil
}

// Frame runs one tick of every pending fiber. Failed fibers leave the queue;
// their errors are joined and returned while the others carry on.
func (s *Scheduler) Frame() error {
	if s.stopped || len(s.queue) == 0 {
		return nil
	}
	s.frames++
	current := s.queue
	s.queue = make([]*Fiber, 0, len(current))
	var errs []error
	for _, f := range current {
		if err := f.Tick(s.canvas); err != nil {
			errs = append(errs, err)
		}
		if s.stopped {
			// Stop was called from an observer mid-frame.
			s.queue = nil
			return errors.Join(errs...)
		}
		if f.Status().Pending() {
			s.queue = append(s.queue, f)
		}
	}
	return errors.Join(errs...)
}

// Run drives frames until every fiber has finished, Stop is called or ctx
// ends. Fiber errors are collected and returned together at the end.
func (s *Scheduler) Run(ctx context.Context) error {
	var errs []error
	for s.Pending() > 0 && !s.stopped {
		if err := ctx.Err(); err != nil {
			s.Stop()
			errs = append(errs, err)
			break
		}
		if s.mode == ModePaced && !s.timer.ShouldStep() {
			if err := sleep(ctx, s.timer.Remaining()); err != nil {
				s.Stop()
				errs = append(errs, err)
				break
			}
			continue
		}
		if err := s.Frame(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
