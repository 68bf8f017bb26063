package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"walks/internal/driver"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid scene config")

// ConfigError pinpoints the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

func invalid(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RefractionConfig describes the optional refracting boundary.
type RefractionConfig struct {
	// Random picks both boundary points from the scene RNG.
	Random bool `toml:"random"`
	// A and B are normalized boundary points, used when Random is false.
	A [2]float64 `toml:"a"`
	B [2]float64 `toml:"b"`

	Strength   float64 `toml:"strength"`
	DotChroma  float64 `toml:"dot_chroma"`
	LineChroma float64 `toml:"line_chroma"`
	// Threshold is the activation distance in surface pixels.
	Threshold float64 `toml:"threshold"`
	Debug     bool    `toml:"debug"`
}

// Config controls a scene. Ranges are inclusive [min, max].
type Config struct {
	Width  int   `toml:"width"`
	Height int   `toml:"height"`
	Seed   int64 `toml:"seed"`

	FiberCount    int        `toml:"fiber_count"`
	StepsRange    [2]int     `toml:"steps_range"`
	LoopRange     [2]int     `toml:"loop_range"`
	DistanceRange [2]float64 `toml:"distance_range"`

	// Placement is one of ring, moving-ring, expanding-ring, random, fixed.
	Placement string `toml:"placement"`
	// Transform is one of identity, fade, wander, spiral, bounce, refract, or
	// several of them joined with "+", applied left to right.
	Transform string `toml:"transform"`
	// Renderer is segment or point.
	Renderer string `toml:"renderer"`

	// NoiseOpacity enables the grain pass when set.
	NoiseOpacity    *float64 `toml:"noise_opacity"`
	NoiseOverlay    bool     `toml:"noise_overlay"`
	NoiseTile       int      `toml:"noise_tile"`
	ClearBeforeDraw bool     `toml:"clear"`

	Palette []string `toml:"palette"`
	// Tones are alternated at loop boundaries. When empty each fiber flips
	// between its own color and that color washed toward the background.
	Tones      []string `toml:"tones"`
	Background string   `toml:"background"`
	Opacity    float64  `toml:"opacity"`
	Gradient   bool     `toml:"gradient"`

	LineWidth float64 `toml:"line_width"`
	DotRadius float64 `toml:"dot_radius"`
	FadeK     float64 `toml:"fade"`

	RingInner float64    `toml:"ring_inner"`
	RingOuter float64    `toml:"ring_outer"`
	Drift     [2]float64 `toml:"drift"`
	Growth    float64    `toml:"growth"`
	Jitter    float64    `toml:"jitter"`
	// Origin is the normalized x, y and heading used by fixed placement.
	Origin [3]float64 `toml:"origin"`

	Refraction RefractionConfig `toml:"refraction"`

	Mode string `toml:"mode"`
	TPS  int    `toml:"tps"`
}

// DefaultPalette is the stock fiber palette.
var DefaultPalette = []string{"#222222", "#fae1f6", "#b966d3", "#8ED2EE", "#362599", "#fff9de", "#FFC874"}

// DefaultConfig returns the standard ring scene.
func DefaultConfig() Config {
	noise := 0.04
	return Config{
		Width:           800,
		Height:          600,
		Seed:            42,
		FiberCount:      120,
		StepsRange:      [2]int{40, 120},
		LoopRange:       [2]int{0, 3},
		DistanceRange:   [2]float64{2, 6},
		Placement:       "ring",
		Transform:       "wander",
		Renderer:        "segment",
		NoiseOpacity:    &noise,
		NoiseTile:       0,
		ClearBeforeDraw: true,
		Palette:         append([]string(nil), DefaultPalette...),
		Background:      "#ffffff",
		Opacity:         0.8,
		LineWidth:       1,
		DotRadius:       0.75,
		FadeK:           0.8,
		RingInner:       0.1,
		RingOuter:       0.25,
		Drift:           [2]float64{6, 0},
		Growth:          8,
		Jitter:          2,
		Origin:          [3]float64{0.5, 1, -math.Pi / 2},
		Refraction: RefractionConfig{
			Random:     true,
			A:          [2]float64{0.2, 0.3},
			B:          [2]float64{0.8, 0.7},
			Strength:   0.5,
			DotChroma:  100,
			LineChroma: 200,
			Threshold:  1.1,
		},
		Mode: "paced",
		TPS:  60,
	}
}

// LoadFile reads a TOML file on top of base. Keys the file does not set keep
// the base value; unknown keys are rejected.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return base, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, invalid("file", "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// TransformNames splits the transform chain into its parts.
func (c Config) TransformNames() []string {
	var names []string
	for _, part := range strings.Split(c.Transform, "+") {
		if part = strings.TrimSpace(strings.ToLower(part)); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// UsesRefraction reports whether the transform chain includes the field.
func (c Config) UsesRefraction() bool {
	for _, n := range c.TransformNames() {
		if n == "refract" {
			return true
		}
	}
	return false
}

// Validate fails fast on anything that would break assembly.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("size", "must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FiberCount < 0 {
		return invalid("fiber_count", "must not be negative, got %d", c.FiberCount)
	}
	if c.StepsRange[0] <= 0 {
		return invalid("steps_range", "steps must be positive, got %d", c.StepsRange[0])
	}
	if c.StepsRange[1] < c.StepsRange[0] {
		return invalid("steps_range", "max %d below min %d", c.StepsRange[1], c.StepsRange[0])
	}
	if c.LoopRange[0] < 0 || c.LoopRange[1] < c.LoopRange[0] {
		return invalid("loop_range", "want 0 <= min <= max, got %v", c.LoopRange)
	}
	if !finite(c.DistanceRange[0]) || !finite(c.DistanceRange[1]) ||
		c.DistanceRange[0] < 0 || c.DistanceRange[1] < c.DistanceRange[0] {
		return invalid("distance_range", "want 0 <= min <= max, got %v", c.DistanceRange)
	}
	if _, ok := placements[strings.ToLower(c.Placement)]; !ok {
		return invalid("placement", "unknown strategy %q", c.Placement)
	}
	names := c.TransformNames()
	if len(names) == 0 {
		return invalid("transform", "empty")
	}
	for _, n := range names {
		if _, ok := transforms[n]; !ok {
			return invalid("transform", "unknown strategy %q", n)
		}
	}
	if _, ok := renderers[strings.ToLower(c.Renderer)]; !ok {
		return invalid("renderer", "unknown strategy %q", c.Renderer)
	}
	if c.NoiseOpacity != nil && (!finite(*c.NoiseOpacity) || *c.NoiseOpacity < 0 || *c.NoiseOpacity > 1) {
		return invalid("noise_opacity", "must be within [0, 1], got %v", *c.NoiseOpacity)
	}
	if c.NoiseTile < 0 {
		return invalid("noise_tile", "must not be negative")
	}
	if _, err := parsePalette("palette", c.Palette); err != nil {
		return err
	}
	if len(c.Palette) == 0 {
		return invalid("palette", "needs at least one color")
	}
	if len(c.Tones) != 0 && len(c.Tones) != 2 {
		return invalid("tones", "want exactly two colors, got %d", len(c.Tones))
	}
	if _, err := parsePalette("tones", c.Tones); err != nil {
		return err
	}
	if c.Background != "" {
		if _, err := parseColor("background", c.Background); err != nil {
			return err
		}
	}
	if !finite(c.Opacity) || c.Opacity < 0 || c.Opacity > 1 {
		return invalid("opacity", "must be within [0, 1], got %v", c.Opacity)
	}
	if !(c.LineWidth > 0) || !(c.DotRadius > 0) {
		return invalid("line_width", "stroke width and dot radius must be positive")
	}
	if !finite(c.FadeK) || c.FadeK < 0 || c.FadeK > 1 {
		return invalid("fade", "must be within [0, 1], got %v", c.FadeK)
	}
	if c.RingInner < 0 || c.RingOuter < c.RingInner {
		return invalid("ring", "want 0 <= inner <= outer, got %v..%v", c.RingInner, c.RingOuter)
	}
	if c.Jitter < 0 {
		return invalid("jitter", "must not be negative")
	}
	if _, err := driver.ParseMode(c.Mode); err != nil {
		return invalid("mode", "%v", err)
	}
	if c.UsesRefraction() {
		r := c.Refraction
		if !(r.Threshold > 0) {
			return invalid("refraction.threshold", "must be positive, got %v", r.Threshold)
		}
		if !finite(r.Strength) {
			return invalid("refraction.strength", "must be finite")
		}
		if !r.Random && r.A == r.B {
			return invalid("refraction", "boundary points coincide at %v", r.A)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func parseColor(field, hex string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return colorful.Color{}, invalid(field, "bad color %q", hex)
	}
	return c, nil
}

func parsePalette(field string, hexes []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := parseColor(field, h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}
