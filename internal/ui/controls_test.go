package ui

import (
	"strings"
	"testing"

	"walks/internal/core"
	"walks/internal/geom"
	"walks/internal/scene"
)

type setterCall struct {
	key   string
	value float64
}

type fakeSetter struct {
	calls  []setterCall
	reject bool
}

func (f *fakeSetter) SetIntParameter(key string, v int) bool {
	f.calls = append(f.calls, setterCall{key, float64(v)})
	return !f.reject
}

func (f *fakeSetter) SetFloatParameter(key string, v float64) bool {
	f.calls = append(f.calls, setterCall{key, v})
	return !f.reject
}

func testKnobs() *knobs {
	return newKnobs([]core.ParameterControl{
		{Key: "fibers", Label: "Fibers", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 50, HasMin: true, HasMax: true},
		{Key: "opacity", Label: "Opacity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "loop_max", Label: "Loops max", Type: core.ParamTypeInt, Min: 0, HasMin: true},
	})
}

func testSnapshot() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Scene", Params: []core.Parameter{
			core.IntParam("w", "Width", 200),
			core.IntParam("fibers", "Fibers", 40),
		}},
		{Name: "Fibers", Params: []core.Parameter{
			core.FloatParam("opacity", "Opacity", 0.5),
			core.IntParam("loop_max", "Loops max", 0),
			core.StringParam("placement", "Placement", "ring"),
		}},
	}}
}

func TestKnobsSync(t *testing.T) {
	k := testKnobs()
	rest := k.sync(testSnapshot())
	if len(rest) != 2 || rest[0].Key != "w" || rest[1].Key != "placement" {
		t.Fatalf("uncovered parameters = %+v", rest)
	}
	want := []string{"40", "0.50", "0"}
	for i, it := range k.items {
		if !it.known || it.text() != want[i] {
			t.Fatalf("knob %s shows %q, want %q", it.ctrl.Key, it.text(), want[i])
		}
	}

	k.sync(core.ParameterSnapshot{})
	if k.items[0].known || k.items[0].text() != "--" {
		t.Fatal("knob missing from the snapshot should read as unknown")
	}
}

func TestKnobsMoveWraps(t *testing.T) {
	k := testKnobs()
	k.move(-1)
	if k.selected != 2 {
		t.Fatalf("selected = %d, want 2", k.selected)
	}
	k.move(4)
	if k.selected != 0 {
		t.Fatalf("selected = %d, want 0", k.selected)
	}
	newKnobs(nil).move(1)
}

func TestKnobsNudge(t *testing.T) {
	k := testKnobs()
	k.sync(testSnapshot())
	set := &fakeSetter{}

	if !k.nudge(1, set, set) || k.items[0].value != 50 {
		t.Fatalf("fibers after +1 = %v", k.items[0].value)
	}
	if k.nudge(1, set, set) {
		t.Fatal("nudge past the maximum should be a no-op")
	}
	if !k.nudge(-10, set, set) || k.items[0].value != 0 {
		t.Fatalf("fibers after -10 = %v, want clamped to 0", k.items[0].value)
	}

	k.move(1)
	if !k.nudge(-1, set, set) || k.items[1].text() != "0.45" {
		t.Fatalf("opacity after -1 = %s", k.items[1].text())
	}

	k.move(1)
	if !k.nudge(3, set, set) || k.items[2].value != 3 {
		t.Fatalf("unit-step knob after +3 = %v", k.items[2].value)
	}

	want := []setterCall{{"fibers", 50}, {"fibers", 0}, {"opacity", 0.45}, {"loop_max", 3}}
	if len(set.calls) != len(want) {
		t.Fatalf("setter calls = %+v", set.calls)
	}
	for i, c := range want {
		if set.calls[i].key != c.key || set.calls[i].value-c.value > 1e-9 || c.value-set.calls[i].value > 1e-9 {
			t.Fatalf("call %d = %+v, want %+v", i, set.calls[i], c)
		}
	}
}

func TestKnobsNudgeRejected(t *testing.T) {
	k := testKnobs()
	k.sync(testSnapshot())
	if k.nudge(1, &fakeSetter{reject: true}, nil) || k.items[0].value != 40 {
		t.Fatal("a rejected value must not be shown")
	}
	k.move(1)
	if k.nudge(1, nil, nil) {
		t.Fatal("float knob without a setter changed")
	}
}

func TestKnobFill(t *testing.T) {
	k := testKnobs()
	k.sync(testSnapshot())
	if f, ok := k.items[0].fill(); !ok || f != 0.8 {
		t.Fatalf("fill = %v %v, want 0.8", f, ok)
	}
	if _, ok := k.items[2].fill(); ok {
		t.Fatal("open-ended knob has no gauge")
	}
}

func TestStatusLines(t *testing.T) {
	p := scene.Progress{Fibers: 8, Pending: 6, SecondTone: 2}
	p.Ticks, p.Reseeds = 40, 3
	if got := stateText(p); got != "drawing" {
		t.Fatalf("state = %q", got)
	}
	if f := doneFraction(p); f != 0.25 {
		t.Fatalf("done fraction = %v", f)
	}
	lines := statusLines(p)
	if lines[0].value != "6/8" || lines[3].value != "2" || lines[4].value != "0" {
		t.Fatalf("lines = %+v", lines)
	}

	p.Bends, p.Quadrant, p.Failed = 5, geom.QuadrantC, 1
	lines = statusLines(p)
	if bends := lines[4].value; !strings.Contains(bends, "last C") {
		t.Fatalf("bends = %q", bends)
	}
	if last := lines[len(lines)-1]; last.label != "Failed" || last.value != "1" {
		t.Fatalf("failed line = %+v", last)
	}

	p.Done, p.Stopped = true, true
	if stateText(p) != "stopped" || doneFraction(p) != 1 {
		t.Fatal("stopped scene should read as stopped and full")
	}
	p.Stopped = false
	if stateText(p) != "done" {
		t.Fatal("finished scene should read as done")
	}
}
