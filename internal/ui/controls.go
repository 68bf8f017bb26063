package ui

import (
	"fmt"
	"math"
	"strconv"

	"walks/internal/core"
	"walks/internal/scene"
)

// knob is one adjustable scene value as the panel last saw it.
type knob struct {
	ctrl  core.ParameterControl
	value float64
	known bool
}

func (k knob) step() float64 {
	if k.ctrl.Step > 0 {
		return k.ctrl.Step
	}
	if k.ctrl.Type == core.ParamTypeInt {
		return 1
	}
	return 0.05
}

func (k knob) clamp(v float64) float64 {
	if k.ctrl.HasMin {
		v = math.Max(v, k.ctrl.Min)
	}
	if k.ctrl.HasMax {
		v = math.Min(v, k.ctrl.Max)
	}
	if k.ctrl.Type == core.ParamTypeInt {
		v = math.Round(v)
	}
	return v
}

func (k knob) text() string {
	if !k.known {
		return "--"
	}
	if k.ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(k.value))
	}
	digits := 1
	if s := k.step(); s < 0.1 {
		digits = int(math.Ceil(-math.Log10(s)))
	}
	return strconv.FormatFloat(k.value, 'f', digits, 64)
}

// fill is the position of the value within [Min, Max], for the gauge under
// the row. ok is false for controls that are not bounded on both sides.
func (k knob) fill() (float64, bool) {
	if !k.known || !k.ctrl.HasMin || !k.ctrl.HasMax || k.ctrl.Max <= k.ctrl.Min {
		return 0, false
	}
	return (k.value - k.ctrl.Min) / (k.ctrl.Max - k.ctrl.Min), true
}

// knobs is the list of controls with one row selected.
type knobs struct {
	items    []knob
	selected int
}

func newKnobs(ctrls []core.ParameterControl) *knobs {
	k := &knobs{items: make([]knob, len(ctrls))}
	for i, c := range ctrls {
		k.items[i] = knob{ctrl: c}
	}
	return k
}

// sync copies the current values out of snap and returns the parameters no
// knob covers, in snapshot order.
func (k *knobs) sync(snap core.ParameterSnapshot) []core.Parameter {
	byKey := make(map[string]int, len(k.items))
	for i := range k.items {
		k.items[i].known = false
		byKey[k.items[i].ctrl.Key] = i
	}
	var rest []core.Parameter
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			i, ok := byKey[p.Key]
			if !ok {
				rest = append(rest, p)
				continue
			}
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				continue
			}
			k.items[i].value, k.items[i].known = v, true
		}
	}
	return rest
}

// move shifts the selection by delta rows, wrapping at either end.
func (k *knobs) move(delta int) {
	n := len(k.items)
	if n == 0 {
		return
	}
	k.selected = ((k.selected+delta)%n + n) % n
}

// nudge moves the selected knob by steps increments and hands the result to
// the matching setter. It reports whether the scene accepted a new value.
func (k *knobs) nudge(steps int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	if len(k.items) == 0 || steps == 0 {
		return false
	}
	it := &k.items[k.selected]
	if !it.known {
		return false
	}
	target := it.clamp(it.value + float64(steps)*it.step())
	if math.Abs(target-it.value) < 1e-9 {
		return false
	}
	var ok bool
	switch it.ctrl.Type {
	case core.ParamTypeInt:
		ok = ints != nil && ints.SetIntParameter(it.ctrl.Key, int(target))
	case core.ParamTypeFloat:
		ok = floats != nil && floats.SetFloatParameter(it.ctrl.Key, target)
	}
	if ok {
		it.value = target
	}
	return ok
}

// statusLine is one label/value row of the progress block.
type statusLine struct {
	label, value string
}

func stateText(p scene.Progress) string {
	switch {
	case p.Stopped:
		return "stopped"
	case p.Done:
		return "done"
	default:
		return "drawing"
	}
}

// statusLines renders the progress counters. The bend row names the quadrant
// of the latest bend once there is one.
func statusLines(p scene.Progress) []statusLine {
	bends := strconv.Itoa(p.Bends)
	if p.Bends > 0 {
		bends = fmt.Sprintf("%d (last %s)", p.Bends, p.Quadrant)
	}
	lines := []statusLine{
		{"Fibers", fmt.Sprintf("%d/%d", p.Pending, p.Fibers)},
		{"Ticks", strconv.Itoa(p.Ticks)},
		{"Re-seeds", strconv.Itoa(p.Reseeds)},
		{"Second tone", strconv.Itoa(p.SecondTone)},
		{"Bends", bends},
	}
	if p.Failed > 0 {
		lines = append(lines, statusLine{"Failed", strconv.Itoa(p.Failed)})
	}
	return lines
}

// doneFraction is the share of fibers that stopped drawing.
func doneFraction(p scene.Progress) float64 {
	if p.Fibers == 0 || p.Done {
		return 1
	}
	return 1 - float64(p.Pending)/float64(p.Fibers)
}
