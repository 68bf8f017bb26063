package app

import "github.com/spf13/pflag"

// Config represents the viewer parameters taken from the command line.
type Config struct {
	Scale    int
	TPS      int
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 1, TPS: 60, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames (fiber ticks) per second (default the scene's tps)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel, 0 to hide it")
}

// Normalize clamps values the viewer cannot use.
func (c *Config) Normalize() {
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.HUDWidth < 0 {
		c.HUDWidth = 0
	}
}

// InheritTPS takes the scene's frame rate unless --tps was given on fs.
func (c *Config) InheritTPS(fs *pflag.FlagSet, sceneTPS int) {
	if fs.Changed("tps") || sceneTPS <= 0 {
		return
	}
	c.TPS = sceneTPS
}
