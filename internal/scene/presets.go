package scene

import (
	"math"
	"sort"

	"walks/internal/core"
)

var presets = map[string]func() Config{
	// A single long wanderer bouncing inside the frame.
	"walks": func() Config {
		c := DefaultConfig()
		c.FiberCount = 1
		c.StepsRange = [2]int{1000, 1000}
		c.LoopRange = [2]int{0, 0}
		c.DistanceRange = [2]float64{9, 11}
		c.Placement = "fixed"
		c.Origin = [3]float64{0.5, 1, -math.Pi / 2}
		c.Transform = "bounce+wander"
		c.Palette = []string{"#808080"}
		c.Opacity = 1
		return c
	},
	"rings": DefaultConfig,
	"drift": func() Config {
		c := DefaultConfig()
		c.Placement = "moving-ring"
		c.LoopRange = [2]int{2, 6}
		c.Drift = [2]float64{12, -4}
		c.Transform = "wander+fade"
		return c
	},
	"bloom": func() Config {
		c := DefaultConfig()
		c.Placement = "expanding-ring"
		c.FiberCount = 80
		c.LoopRange = [2]int{3, 8}
		c.Growth = 14
		c.Transform = "wander+fade"
		c.Gradient = true
		c.NoiseOverlay = true
		return c
	},
	"spiral": func() Config {
		c := DefaultConfig()
		c.FiberCount = 60
		c.StepsRange = [2]int{80, 200}
		c.Transform = "spiral"
		c.RingInner, c.RingOuter = 0.05, 0.35
		return c
	},
	"stipple": func() Config {
		c := DefaultConfig()
		c.FiberCount = 200
		c.Placement = "random"
		c.Renderer = "point"
		c.Transform = "wander+bounce"
		c.DotRadius = 1
		return c
	},
	"refract": func() Config {
		c := DefaultConfig()
		c.FiberCount = 300
		c.Placement = "random"
		c.StepsRange = [2]int{100, 300}
		c.LoopRange = [2]int{0, 1}
		c.DistanceRange = [2]float64{2, 3}
		c.Transform = "wander+refract"
		c.Palette = []string{"#222222", "#362599"}
		c.Opacity = 0.3
		c.Refraction.Threshold = 2
		return c
	},
}

// Preset returns a copy of the named preset.
func Preset(name string) (Config, bool) {
	build, ok := presets[name]
	if !ok {
		return Config{}, false
	}
	return build(), true
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	for name, build := range presets {
		core.Register(name, func(m map[string]string) (core.Sim, error) {
			cfg, err := Override(build(), m)
			if err != nil {
				return nil, err
			}
			return NewAnimation(name, cfg)
		})
	}
}
