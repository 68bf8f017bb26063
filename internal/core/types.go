package core

import (
	"image"
	"sort"
)

// Size describes the dimensions of a drawing surface.
type Size struct {
	W int
	H int
}

// Min returns the smaller of the two dimensions.
func (s Size) Min() int {
	if s.W < s.H {
		return s.W
	}
	return s.H
}

// Sim defines the minimal contract an animated scene must implement to be
// driven by the viewer or the batch renderer.
type Sim interface {
	Name() string
	Size() Size
	// Reset rebuilds the scene from its configuration using the provided seed.
	Reset(seed int64) error
	// Step advances every in-flight fiber by one tick.
	Step() error
	// Done reports whether every fiber has terminated and post-processing ran.
	Done() bool
	Image() image.Image
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames returns the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
