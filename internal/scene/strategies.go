package scene

import (
	"fmt"
	"sort"

	"walks/internal/core"
	"walks/internal/fiber"
	"walks/internal/geom"
	"walks/internal/refract"
	"walks/internal/surface"
	rng "walks/pkg/core"
)

// env is what strategy builders may close over.
type env struct {
	cfg    Config
	size   core.Size
	rng    *rng.RNG
	canvas surface.Canvas
	field  *refract.Field
	stats  *Stats
}

func (e env) ring() fiber.RingSpec {
	return fiber.RingFor(e.size, e.cfg.RingInner, e.cfg.RingOuter)
}

var placements = map[string]func(env) fiber.Placement{
	"ring": func(e env) fiber.Placement { return fiber.Ring(e.rng, e.ring()) },
	"moving-ring": func(e env) fiber.Placement {
		return fiber.MovingRing(e.rng, e.ring(), geom.Pt(e.cfg.Drift[0], e.cfg.Drift[1]), e.cfg.Jitter)
	},
	"expanding-ring": func(e env) fiber.Placement {
		return fiber.ExpandingRing(e.rng, e.ring(), e.cfg.Growth, e.cfg.Jitter)
	},
	"random": func(e env) fiber.Placement { return fiber.Random(e.rng, e.size) },
	"fixed": func(e env) fiber.Placement {
		p := geom.Denormalize(geom.Pt(e.cfg.Origin[0], e.cfg.Origin[1]), e.size)
		return fiber.Fixed(p.X, p.Y, e.cfg.Origin[2])
	},
}

var transforms = map[string]func(env) (fiber.Transform, error){
	"identity": func(env) (fiber.Transform, error) { return fiber.Identity(), nil },
	"fade":     func(e env) (fiber.Transform, error) { return fiber.Fade(e.cfg.FadeK), nil },
	"wander": func(e env) (fiber.Transform, error) {
		return fiber.WanderWithin(e.rng, e.cfg.DistanceRange[0], e.cfg.DistanceRange[1]), nil
	},
	"spiral": func(e env) (fiber.Transform, error) { return fiber.Spiral(e.rng), nil },
	"bounce": func(e env) (fiber.Transform, error) { return fiber.Bounce(e.size), nil },
	"refract": func(e env) (fiber.Transform, error) {
		if e.field == nil {
			return nil, fmt.Errorf("refract transform without a field")
		}
		apply := e.field.Transform(e.canvas)
		return func(s fiber.State, step int) (fiber.State, error) {
			if b, ok := e.field.Bend(s); ok && e.stats != nil {
				e.stats.Bends++
				e.stats.Quadrant = b.Quadrant
			}
			return apply(s, step)
		}, nil
	},
}

var renderers = map[string]func(env) fiber.Renderer{
	"segment": func(e env) fiber.Renderer { return fiber.Segment(e.cfg.LineWidth) },
	"point":   func(e env) fiber.Renderer { return fiber.Point(e.cfg.DotRadius) },
}

func buildTransform(e env, names []string) (fiber.Transform, error) {
	chain := make([]fiber.Transform, 0, len(names))
	for _, n := range names {
		build, ok := transforms[n]
		if !ok {
			return nil, invalid("transform", "unknown strategy %q", n)
		}
		t, err := build(e)
		if err != nil {
			return nil, err
		}
		chain = append(chain, t)
	}
	return fiber.Chain(chain...), nil
}

// Strategies lists the registered strategy names by kind.
func Strategies() (placement, transform, renderer []string) {
	return sortedKeys(placements), sortedKeys(transforms), sortedKeys(renderers)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
