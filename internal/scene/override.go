package scene

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FromMap builds a config from the defaults and flag-style key/value pairs.
func FromMap(cfg map[string]string) (Config, error) {
	return Override(DefaultConfig(), cfg)
}

// Override applies key/value pairs on top of base. Unknown keys and values
// that do not parse are errors; nothing is applied partially.
func Override(base Config, cfg map[string]string) (Config, error) {
	c := base
	c.Palette = append([]string(nil), base.Palette...)
	c.Tones = append([]string(nil), base.Tones...)

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		set, ok := setters[k]
		if !ok {
			return base, invalid(k, "unknown key")
		}
		if err := set(&c, strings.TrimSpace(cfg[k])); err != nil {
			return base, invalid(k, "%v", err)
		}
	}
	return c, nil
}

// OverrideKeys lists every key accepted by Override.
func OverrideKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseAssignments turns "key=value" strings into a map.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		out[k] = v
	}
	return out, nil
}

type setter func(c *Config, v string) error

var setters = map[string]setter{
	"w":             intField(func(c *Config) *int { return &c.Width }),
	"h":             intField(func(c *Config) *int { return &c.Height }),
	"seed":          func(c *Config, v string) error { return parseInto(&c.Seed, v) },
	"fibers":        intField(func(c *Config) *int { return &c.FiberCount }),
	"steps_min":     intField(func(c *Config) *int { return &c.StepsRange[0] }),
	"steps_max":     intField(func(c *Config) *int { return &c.StepsRange[1] }),
	"loop_min":      intField(func(c *Config) *int { return &c.LoopRange[0] }),
	"loop_max":      intField(func(c *Config) *int { return &c.LoopRange[1] }),
	"d_min":         floatField(func(c *Config) *float64 { return &c.DistanceRange[0] }),
	"d_max":         floatField(func(c *Config) *float64 { return &c.DistanceRange[1] }),
	"placement":     stringField(func(c *Config) *string { return &c.Placement }),
	"transform":     stringField(func(c *Config) *string { return &c.Transform }),
	"renderer":      stringField(func(c *Config) *string { return &c.Renderer }),
	"noise":         setNoise,
	"noise_overlay": boolField(func(c *Config) *bool { return &c.NoiseOverlay }),
	"noise_tile":    intField(func(c *Config) *int { return &c.NoiseTile }),
	"clear":         boolField(func(c *Config) *bool { return &c.ClearBeforeDraw }),
	"palette":       listField(func(c *Config) *[]string { return &c.Palette }),
	"tones":         listField(func(c *Config) *[]string { return &c.Tones }),
	"background":    stringField(func(c *Config) *string { return &c.Background }),
	"opacity":       floatField(func(c *Config) *float64 { return &c.Opacity }),
	"gradient":      boolField(func(c *Config) *bool { return &c.Gradient }),
	"line_width":    floatField(func(c *Config) *float64 { return &c.LineWidth }),
	"dot_radius":    floatField(func(c *Config) *float64 { return &c.DotRadius }),
	"fade":          floatField(func(c *Config) *float64 { return &c.FadeK }),
	"ring_inner":    floatField(func(c *Config) *float64 { return &c.RingInner }),
	"ring_outer":    floatField(func(c *Config) *float64 { return &c.RingOuter }),
	"drift_x":       floatField(func(c *Config) *float64 { return &c.Drift[0] }),
	"drift_y":       floatField(func(c *Config) *float64 { return &c.Drift[1] }),
	"growth":        floatField(func(c *Config) *float64 { return &c.Growth }),
	"jitter":        floatField(func(c *Config) *float64 { return &c.Jitter }),
	"origin_x":      floatField(func(c *Config) *float64 { return &c.Origin[0] }),
	"origin_y":      floatField(func(c *Config) *float64 { return &c.Origin[1] }),
	"origin_theta":  floatField(func(c *Config) *float64 { return &c.Origin[2] }),
	"boundary":      setBoundary,
	"refraction":    floatField(func(c *Config) *float64 { return &c.Refraction.Strength }),
	"dot_chroma":    floatField(func(c *Config) *float64 { return &c.Refraction.DotChroma }),
	"line_chroma":   floatField(func(c *Config) *float64 { return &c.Refraction.LineChroma }),
	"threshold":     floatField(func(c *Config) *float64 { return &c.Refraction.Threshold }),
	"debug":         boolField(func(c *Config) *bool { return &c.Refraction.Debug }),
	"mode":          stringField(func(c *Config) *string { return &c.Mode }),
	"tps":           intField(func(c *Config) *int { return &c.TPS }),
}

func intField(get func(*Config) *int) setter {
	return func(c *Config, v string) error { return parseInto(get(c), v) }
}

func floatField(get func(*Config) *float64) setter {
	return func(c *Config, v string) error { return parseInto(get(c), v) }
}

func boolField(get func(*Config) *bool) setter {
	return func(c *Config, v string) error { return parseInto(get(c), v) }
}

func stringField(get func(*Config) *string) setter {
	return func(c *Config, v string) error {
		*get(c) = v
		return nil
	}
}

func listField(get func(*Config) *[]string) setter {
	return func(c *Config, v string) error {
		var items []string
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*get(c) = items
		return nil
	}
}

func parseInto(dst any, v string) error {
	var err error
	switch d := dst.(type) {
	case *int:
		*d, err = strconv.Atoi(v)
	case *int64:
		*d, err = strconv.ParseInt(v, 10, 64)
	case *float64:
		*d, err = strconv.ParseFloat(v, 64)
	case *bool:
		*d, err = strconv.ParseBool(v)
	default:
		err = fmt.Errorf("unsupported field type %T", dst)
	}
	return err
}

// setNoise accepts an opacity, or "off"/"none" to disable the grain pass.
func setNoise(c *Config, v string) error {
	switch strings.ToLower(v) {
	case "off", "none", "false":
		c.NoiseOpacity = nil
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	c.NoiseOpacity = &f
	return nil
}

// setBoundary accepts "random" or four normalized coordinates "x1,y1,x2,y2".
func setBoundary(c *Config, v string) error {
	if strings.EqualFold(v, "random") {
		c.Refraction.Random = true
		return nil
	}
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return fmt.Errorf("want random or x1,y1,x2,y2, got %q", v)
	}
	var pts [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return err
		}
		pts[i] = f
	}
	c.Refraction.Random = false
	c.Refraction.A = [2]float64{pts[0], pts[1]}
	c.Refraction.B = [2]float64{pts[2], pts[3]}
	return nil
}
