package refract

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"walks/internal/core"
	"walks/internal/fiber"
	"walks/internal/geom"
	"walks/internal/surface"
)

func diagonalField(t *testing.T, opts Options) *Field {
	t.Helper()
	f, err := NewAbsolute(geom.Pt(0, 0), geom.Pt(100, 100), opts)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNewDenormalizes(t *testing.T) {
	f, err := New(geom.Pt(0.25, 0.5), geom.Pt(0.75, 0.5), core.Size{W: 400, H: 200}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	a, b := f.Endpoints()
	if a != geom.Pt(100, 100) || b != geom.Pt(300, 100) {
		t.Fatalf("endpoints = %v, %v", a, b)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := NewAbsolute(geom.Pt(3, 3), geom.Pt(3, 3), DefaultOptions()); !errors.Is(err, ErrCoincident) {
		t.Fatalf("coincident points: err = %v", err)
	}
	opts := DefaultOptions()
	opts.Threshold = 0
	if _, err := NewAbsolute(geom.Pt(0, 0), geom.Pt(1, 1), opts); err == nil {
		t.Fatal("zero threshold must be rejected")
	}
	opts = DefaultOptions()
	opts.Refraction = math.Inf(1)
	if _, err := NewAbsolute(geom.Pt(0, 0), geom.Pt(1, 1), opts); err == nil {
		t.Fatal("infinite refraction must be rejected")
	}
}

func TestBendOnLine(t *testing.T) {
	opts := DefaultOptions()
	opts.Refraction = 0.8
	f := diagonalField(t, opts)

	for _, theta := range []float64{0, 0.4, 1.3, -2.2, 3} {
		s := fiber.State{X: 40, Y: 40, Theta: theta, D: 1, Steps: 10}
		out, err := f.Transform(nil)(s, 0)
		if err != nil {
			t.Fatal(err)
		}
		ad, _ := geom.ClassifyAngle(f.Line().Norm, theta)
		want := math.Abs(opts.Refraction * math.Sin(ad))
		if got := math.Abs(out.Theta - theta); math.Abs(got-want) > 1e-12 {
			t.Fatalf("theta %.2f: bent by %.6f, want %.6f", theta, got, want)
		}
		if out.X != s.X || out.Y != s.Y || out.D != s.D || out.Steps != s.Steps {
			t.Fatal("refraction must only change heading and paint")
		}
	}
}

func TestNoBendOutsideBand(t *testing.T) {
	f := diagonalField(t, DefaultOptions())
	tr := f.Transform(nil)
	paint := surface.Solid(color.NRGBA{R: 9, A: 255})
	cases := []fiber.State{
		{X: 40, Y: 45, Theta: 1},   // beside the line
		{X: 150, Y: 150, Theta: 1}, // on the line, beyond the segment
		{X: -5, Y: -5, Theta: 1},   // before the segment
		{X: 40, Y: 41.6, Theta: 1}, // just outside the threshold
	}
	for _, s := range cases {
		s.Steps, s.Color = 1, paint
		out, err := tr(s, 0)
		if err != nil {
			t.Fatal(err)
		}
		if out != s {
			t.Fatalf("state %+v changed to %+v", s, out)
		}
	}
}

func TestBendWithinThreshold(t *testing.T) {
	f := diagonalField(t, DefaultOptions())
	// 0.5/√2 ≈ 0.35 from the line
	bend, ok := f.Bend(fiber.State{X: 50, Y: 50.5, Theta: 0})
	if !ok {
		t.Fatal("point inside the band should activate the field")
	}
	if math.Abs(bend.R-0.5/math.Sqrt2) > 1e-9 {
		t.Fatalf("distance = %v", bend.R)
	}
}

func TestBendColorsEncodeDirection(t *testing.T) {
	f := diagonalField(t, DefaultOptions())
	line := f.Line().Norm
	pos, ok := f.Bend(fiber.State{X: 10, Y: 10, Theta: line - 0.5})
	if !ok || pos.Delta <= 0 {
		t.Fatalf("expected positive bend, got %+v", pos)
	}
	neg, ok := f.Bend(fiber.State{X: 10, Y: 10, Theta: line + 0.5})
	if !ok || neg.Delta >= 0 {
		t.Fatalf("expected negative bend, got %+v", neg)
	}
	if pos.Trace.G <= pos.Trace.R || neg.Trace.R <= neg.Trace.G {
		t.Fatalf("trace colors do not encode direction: %v / %v", pos.Trace, neg.Trace)
	}
	if pos.Tint.A != neg.Tint.A || pos.Trace.A != 26 {
		t.Fatalf("alpha must be fixed: tint %d/%d trace %d", pos.Tint.A, neg.Tint.A, pos.Trace.A)
	}
}

func TestTransformPaintsTraceAndTint(t *testing.T) {
	opts := DefaultOptions()
	opts.Debug = true
	f := diagonalField(t, opts)
	rec := surface.NewRecorder(core.Size{W: 100, H: 100})

	s := fiber.State{X: 20, Y: 20, Theta: 0.2, Steps: 3, Color: surface.Solid(color.NRGBA{A: 255})}
	out, err := f.Transform(rec)(s, 1)
	if err != nil {
		t.Fatal(err)
	}
	dots := rec.Filter(surface.OpDot)
	if len(dots) != 2 {
		t.Fatalf("expected marker and trace dots, got %d", len(dots))
	}
	bend, _ := f.Bend(s)
	if dots[0].Paint.From != bend.Quadrant.Marker() {
		t.Fatalf("debug marker = %v, want %v", dots[0].Paint.From, bend.Quadrant.Marker())
	}
	if dots[1].Paint.From != bend.Trace || dots[1].X1 != 20 || dots[1].Y1 != 20 {
		t.Fatalf("trace dot = %+v", dots[1])
	}
	if out.Color != surface.Solid(bend.Tint) {
		t.Fatalf("fiber paint = %+v, want tint %v", out.Color, bend.Tint)
	}
}

func TestTransformPropagatesSurfaceError(t *testing.T) {
	f := diagonalField(t, DefaultOptions())
	rec := surface.NewRecorder(core.Size{W: 100, H: 100})
	boom := errors.New("lost surface")
	rec.Fail = func(surface.Op) error { return boom }
	s := fiber.State{X: 20, Y: 20, Theta: 0.2, Steps: 3}
	out, err := f.Transform(rec)(s, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if out.Theta != s.Theta {
		t.Fatal("failed trace must not bend the fiber")
	}
}
