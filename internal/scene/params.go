package scene

import "walks/internal/core"

// Parameters exposes the current configuration to the HUD. Drawing progress
// is reported separately by Progress.
func (a *Animation) Parameters() core.ParameterSnapshot {
	c := a.cfg
	noise := 0.0
	if c.NoiseOpacity != nil {
		noise = *c.NoiseOpacity
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Scene",
			Params: []core.Parameter{
				core.IntParam("w", "Width", c.Width),
				core.IntParam("h", "Height", c.Height),
				core.Int64Param("seed", "Seed", c.Seed),
				core.IntParam("fibers", "Fibers", c.FiberCount),
			},
		},
		{
			Name: "Fibers",
			Params: []core.Parameter{
				core.IntParam("steps_min", "Steps min", c.StepsRange[0]),
				core.IntParam("steps_max", "Steps max", c.StepsRange[1]),
				core.IntParam("loop_min", "Loops min", c.LoopRange[0]),
				core.IntParam("loop_max", "Loops max", c.LoopRange[1]),
				core.FloatParam("d_min", "Step length min", c.DistanceRange[0]),
				core.FloatParam("d_max", "Step length max", c.DistanceRange[1]),
				core.FloatParam("opacity", "Opacity", c.Opacity),
			},
		},
		{
			Name: "Strategies",
			Params: []core.Parameter{
				core.StringParam("placement", "Placement", c.Placement),
				core.StringParam("transform", "Transform", c.Transform),
				core.StringParam("renderer", "Renderer", c.Renderer),
			},
		},
		{
			Name: "Refraction",
			Params: []core.Parameter{
				core.FloatParam("refraction", "Strength", c.Refraction.Strength),
				core.FloatParam("threshold", "Threshold", c.Refraction.Threshold),
				core.BoolParam("debug", "Debug markers", c.Refraction.Debug),
			},
		},
		{
			Name: "Finish",
			Params: []core.Parameter{
				core.FloatParam("noise", "Noise opacity", noise),
				core.BoolParam("noise_overlay", "Overlay blend", c.NoiseOverlay),
			},
		},
	}}
}

// ParameterControls lists the values the HUD may adjust. Every change
// restarts the drawing with the current seed.
func (a *Animation) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "fibers", Label: "Fibers", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 2000, HasMin: true, HasMax: true},
		{Key: "steps_max", Label: "Steps max", Type: core.ParamTypeInt, Step: 10, Min: 1, HasMin: true},
		{Key: "loop_max", Label: "Loops max", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "opacity", Label: "Opacity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "refraction", Label: "Refraction", Type: core.ParamTypeFloat, Step: 0.05, Min: -2, Max: 2, HasMin: true, HasMax: true},
		{Key: "threshold", Label: "Threshold", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 20, HasMin: true, HasMax: true},
		{Key: "noise", Label: "Noise", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies an integer control and restarts the drawing.
func (a *Animation) SetIntParameter(key string, value int) bool {
	c := a.cfg
	switch key {
	case "fibers":
		c.FiberCount = value
	case "steps_max":
		c.StepsRange[1] = value
		if c.StepsRange[0] > value {
			c.StepsRange[0] = value
		}
	case "loop_max":
		c.LoopRange[1] = value
		if c.LoopRange[0] > value {
			c.LoopRange[0] = value
		}
	default:
		return false
	}
	return a.apply(c)
}

// SetFloatParameter applies a float control and restarts the drawing.
func (a *Animation) SetFloatParameter(key string, value float64) bool {
	c := a.cfg
	switch key {
	case "opacity":
		c.Opacity = value
	case "refraction":
		c.Refraction.Strength = value
	case "threshold":
		c.Refraction.Threshold = value
	case "noise":
		v := value
		c.NoiseOpacity = &v
	default:
		return false
	}
	return a.apply(c)
}

func (a *Animation) apply(c Config) bool {
	if c.Validate() != nil {
		return false
	}
	prev, old := a.cfg, a.scene
	a.cfg = c
	// A close error on the previous raster still leaves the new scene live.
	_ = a.Reset(c.Seed)
	if a.scene == old {
		a.cfg = prev
		return false
	}
	return true
}
