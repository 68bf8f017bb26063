package scene

import (
	"errors"
	"image"

	"walks/internal/core"
	"walks/internal/fiber"
	"walks/internal/geom"
	"walks/internal/surface"
)

// Animation runs a scene on its own raster and satisfies core.Sim, so the
// viewer and the batch renderer can drive it the same way.
type Animation struct {
	name   string
	cfg    Config
	opts   []Option
	raster *surface.Raster
	scene  *Scene
}

var _ core.Sim = (*Animation)(nil)

// NewAnimation validates cfg and assembles the first scene.
func NewAnimation(name string, cfg Config, opts ...Option) (*Animation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Animation{name: name, cfg: cfg, opts: opts}
	if err := a.Reset(cfg.Seed); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Animation) Name() string { return a.name }

func (a *Animation) Size() core.Size { return core.Size{W: a.cfg.Width, H: a.cfg.Height} }

// Config returns the current configuration.
func (a *Animation) Config() Config { return a.cfg }

// Scene returns the scene currently being drawn.
func (a *Animation) Scene() *Scene { return a.scene }

// Raster returns the surface the scene draws on.
func (a *Animation) Raster() *surface.Raster { return a.raster }

// Reset reassembles the scene with seed on a fresh raster.
func (a *Animation) Reset(seed int64) error {
	cfg := a.cfg
	cfg.Seed = seed
	raster, err := surface.NewRaster(core.Size{W: cfg.Width, H: cfg.Height})
	if err != nil {
		return err
	}
	sc, err := Assemble(cfg, raster, a.opts...)
	if err != nil {
		return errors.Join(err, raster.Close())
	}
	var closeErr error
	if a.scene != nil {
		a.scene.Stop()
	}
	if a.raster != nil {
		closeErr = a.raster.Close()
	}
	a.cfg, a.raster, a.scene = cfg, raster, sc
	return closeErr
}

// Step advances every pending fiber by one tick.
func (a *Animation) Step() error { return a.scene.Step() }

// Done reports whether the drawing is complete.
func (a *Animation) Done() bool { return a.scene.Done() }

// Image returns the current pixels.
func (a *Animation) Image() image.Image { return a.raster.Image() }

// Boundary returns the refraction segment in surface coordinates and the
// activation threshold. ok is false when the scene has no field.
func (a *Animation) Boundary() (p1, p2 geom.Point, threshold float64, ok bool) {
	f := a.scene.Field()
	if f == nil {
		return geom.Point{}, geom.Point{}, 0, false
	}
	p1, p2 = f.Endpoints()
	return p1, p2, f.Options().Threshold, true
}

// Heads returns the current state of every fiber still drawing.
func (a *Animation) Heads() []fiber.State {
	var out []fiber.State
	for _, f := range a.scene.Fibers() {
		if f.Status().Pending() {
			out = append(out, f.State())
		}
	}
	return out
}

// Progress is a snapshot of how far the current drawing has got.
type Progress struct {
	Stats
	Fibers  int
	Pending int
	// SecondTone counts pending fibers currently drawing in their second tone,
	// that is after an odd number of re-seeds.
	SecondTone int
	Done       bool
	Stopped    bool
}

// Progress reports the state of the current drawing.
func (a *Animation) Progress() Progress {
	p := Progress{
		Stats:   a.scene.Stats(),
		Done:    a.scene.Done(),
		Stopped: a.scene.Stopped(),
	}
	for _, f := range a.scene.Fibers() {
		p.Fibers++
		if p.Done || !f.Status().Pending() {
			continue
		}
		p.Pending++
		if f.LoopsCompleted()%2 == 1 {
			p.SecondTone++
		}
	}
	return p
}

// SavePNG writes the current pixels to path.
func (a *Animation) SavePNG(path string) error { return a.raster.SavePNG(path) }

// Close stops the scene and releases the raster.
func (a *Animation) Close() error {
	a.scene.Stop()
	return a.raster.Close()
}
