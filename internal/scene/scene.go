// Package scene turns a Config into a set of fibers wired to their
// strategies, drives them through a driver.Scheduler and grains the result.
package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"walks/internal/core"
	"walks/internal/driver"
	"walks/internal/fiber"
	"walks/internal/geom"
	"walks/internal/noise"
	"walks/internal/refract"
	"walks/internal/surface"
	rng "walks/pkg/core"
)

// Stats counts what happened during a run.
type Stats struct {
	Ticks      int
	Reseeds    int
	Terminated int
	Failed     int
	Bends      int
	// Quadrant is where the latest bend was classified. Meaningless while
	// Bends is zero.
	Quadrant geom.Quadrant
}

// Option tweaks assembly.
type Option func(*options)

type options struct {
	logger    *log.Logger
	rng       *rng.RNG
	observers []driver.Observer
	noiseTile image.Image
}

// WithLogger sets the logger used for assembly and run events.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithRNG replaces the seeded random source.
func WithRNG(r *rng.RNG) Option { return func(o *options) { o.rng = r } }

// WithObserver receives every tick of every fiber.
func WithObserver(obs driver.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// WithNoiseTile grains the surface with a pre-built tile.
func WithNoiseTile(tile image.Image) Option { return func(o *options) { o.noiseTile = tile } }

// Scene owns the fibers of one drawing and the canvas they share.
type Scene struct {
	cfg    Config
	canvas surface.Canvas
	sched  *driver.Scheduler
	rng    *rng.RNG
	field  *refract.Field
	log    *log.Logger

	noiseTile image.Image
	finished  bool
	stopped   bool
	stats     Stats
	observers []driver.Observer
}

// Assemble validates cfg, clears the canvas when asked to, and seeds
// cfg.FiberCount fibers on a scheduler. Nothing is drawn by fibers until Step
// or Run is called.
func Assemble(cfg Config, c surface.Canvas, opts ...Option) (*Scene, error) {
	if c == nil {
		return nil, errors.New("scene: nil canvas")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.rng == nil {
		o.rng = rng.NewRNG(cfg.Seed)
	}
	mode, _ := driver.ParseMode(cfg.Mode)

	s := &Scene{
		cfg:       cfg,
		canvas:    c,
		rng:       o.rng,
		log:       o.logger,
		noiseTile: o.noiseTile,
		observers: o.observers,
		sched:     driver.NewScheduler(c, driver.SchedulerConfig{Mode: mode, TPS: cfg.TPS}),
	}

	palette, _ := parsePalette("palette", cfg.Palette)
	var bg colorful.Color
	var bgColor color.Color
	if cfg.Background != "" {
		bg, _ = parseColor("background", cfg.Background)
		bgColor = toNRGBA(bg, 1)
	} else {
		bg = colorful.Color{R: 1, G: 1, B: 1}
	}

	size := c.Size()
	e := env{cfg: cfg, size: size, rng: s.rng, canvas: c, stats: &s.stats}
	if cfg.UsesRefraction() {
		field, err := s.buildField(size)
		if err != nil {
			return nil, err
		}
		s.field = field
		e.field = field
	}

	place := placements[strings.ToLower(cfg.Placement)](e)
	render := renderers[strings.ToLower(cfg.Renderer)](e)
	transform, err := buildTransform(e, cfg.TransformNames())
	if err != nil {
		return nil, err
	}

	var fixedTones [2]surface.Paint
	if len(cfg.Tones) == 2 {
		tones, _ := parsePalette("tones", cfg.Tones)
		fixedTones = [2]surface.Paint{
			surface.Solid(toNRGBA(tones[0], cfg.Opacity)),
			surface.Solid(toNRGBA(tones[1], cfg.Opacity)),
		}
	}

	if cfg.ClearBeforeDraw {
		if err := c.Clear(bgColor); err != nil {
			return nil, fmt.Errorf("scene: clear: %w", err)
		}
	}

	for i := 0; i < cfg.FiberCount; i++ {
		base := rng.Pick(s.rng, palette)
		paint := surface.Solid(toNRGBA(base, cfg.Opacity))
		if cfg.Gradient {
			paint = surface.Linear(paint.From, toNRGBA(rng.Pick(s.rng, palette), cfg.Opacity))
		}
		tones := fixedTones
		if len(cfg.Tones) == 0 {
			washed := base.BlendLab(bg, 0.5)
			tones = [2]surface.Paint{paint, surface.Solid(toNRGBA(washed, cfg.Opacity))}
		}

		st := fiber.State{
			D:     s.rng.Range(cfg.DistanceRange[0], cfg.DistanceRange[1]),
			Color: paint,
			Steps: s.rng.IntRange(cfg.StepsRange[0], cfg.StepsRange[1]),
			Loop:  s.rng.IntRange(cfg.LoopRange[0], cfg.LoopRange[1]),
		}
		st = place(st, 0)

		f, err := driver.NewFiber(i, st, driver.Strategies{Place: place, Transform: transform, Render: render},
			driver.Options{Tones: tones, Observer: s.observe})
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		s.sched.Spawn(f)
	}

	s.log.Debug("scene assembled",
		"fibers", cfg.FiberCount,
		"placement", cfg.Placement,
		"transform", cfg.Transform,
		"renderer", cfg.Renderer,
		"mode", mode,
		"size", fmt.Sprintf("%dx%d", size.W, size.H))
	return s, nil
}

func (s *Scene) buildField(size core.Size) (*refract.Field, error) {
	rc := s.cfg.Refraction
	a := geom.Pt(rc.A[0], rc.A[1])
	b := geom.Pt(rc.B[0], rc.B[1])
	if rc.Random {
		a = geom.Pt(s.rng.Float64(), s.rng.Float64())
		b = geom.Pt(s.rng.Float64(), s.rng.Float64())
	}
	opts := refract.DefaultOptions()
	opts.Refraction = rc.Strength
	opts.DotChroma = rc.DotChroma
	opts.LineChroma = rc.LineChroma
	opts.Threshold = rc.Threshold
	opts.Debug = rc.Debug
	field, err := refract.New(a, b, size, opts)
	if err != nil {
		return nil, invalid("refraction", "%v", err)
	}
	return field, nil
}

func (s *Scene) observe(e driver.TickEvent) {
	s.stats.Ticks++
	switch e.Status {
	case driver.StatusReseed:
		s.stats.Reseeds++
	case driver.StatusTerminated:
		s.stats.Terminated++
	}
	for _, obs := range s.observers {
		obs(e)
	}
}

// Config returns the configuration the scene was built from.
func (s *Scene) Config() Config { return s.cfg }

// Canvas returns the shared drawing surface.
func (s *Scene) Canvas() surface.Canvas { return s.canvas }

// Field returns the refraction field, or nil when the scene has none.
func (s *Scene) Field() *refract.Field { return s.field }

// Fibers returns the fibers in creation order.
func (s *Scene) Fibers() []*driver.Fiber { return s.sched.Fibers() }

// Scheduler exposes the underlying scheduler.
func (s *Scene) Scheduler() *driver.Scheduler { return s.sched }

// Stats returns the counters collected so far.
func (s *Scene) Stats() Stats { return s.stats }

// Done reports whether the scene will draw nothing more: either every fiber
// finished and the noise pass ran, or the scene was stopped or cancelled
// first. Stopped tells the two apart.
func (s *Scene) Done() bool { return s.finished }

// Stopped reports whether Stop or a cancelled Run ended the scene before its
// fibers finished.
func (s *Scene) Stopped() bool { return s.stopped }

// Stop aborts every pending tick. The noise pass is skipped.
func (s *Scene) Stop() {
	if s.finished {
		return
	}
	s.sched.Stop()
	s.finished = true
	s.stopped = true
}

// Step runs one frame. Once no fiber is pending it runs the noise pass and
// the scene is done.
func (s *Scene) Step() error {
	if s.finished {
		return nil
	}
	err := s.sched.Frame()
	if err != nil {
		s.countFailures(err)
	}
	if s.sched.Pending() == 0 {
		err = errors.Join(err, s.finish())
	}
	return err
}

// Run drives the scene to completion in the configured mode.
func (s *Scene) Run(ctx context.Context) error {
	if s.finished {
		return nil
	}
	err := s.sched.Run(ctx)
	if err != nil {
		s.countFailures(err)
	}
	if ctx.Err() != nil {
		s.finished = true
		s.stopped = true
		return err
	}
	return errors.Join(err, s.finish())
}

func (s *Scene) countFailures(err error) {
	failed := 0
	for _, f := range s.sched.Fibers() {
		if f.Status() == driver.StatusFailed {
			failed++
		}
	}
	if failed > s.stats.Failed {
		s.log.Warn("fiber failed", "failed", failed, "err", err)
	}
	s.stats.Failed = failed
}

func (s *Scene) finish() error {
	s.finished = true
	s.log.Debug("fibers finished",
		"ticks", s.stats.Ticks,
		"reseeds", s.stats.Reseeds,
		"bends", s.stats.Bends,
		"failed", s.stats.Failed)

	if s.noiseTile == nil && (s.cfg.NoiseOpacity == nil || *s.cfg.NoiseOpacity == 0) {
		return nil
	}
	var opacity float64
	if s.cfg.NoiseOpacity != nil {
		opacity = *s.cfg.NoiseOpacity
	}
	tile, err := noise.Pass(s.canvas, s.rng, noise.Options{
		Opacity:  opacity,
		TileSize: s.cfg.NoiseTile,
		Overlay:  s.cfg.NoiseOverlay,
		Tile:     s.noiseTile,
	})
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.noiseTile = tile
	return nil
}
