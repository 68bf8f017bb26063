package geom

import (
	"math"
	"testing"

	"walks/internal/core"
)

const eps = 1e-9

func TestPointToLineOnSegment(t *testing.T) {
	l1 := Pt(10, 10)
	l2 := Pt(110, 60)
	for _, f := range []float64{0, 0.25, 0.5, 1} {
		p := Pt(l1.X+(l2.X-l1.X)*f, l1.Y+(l2.Y-l1.Y)*f)
		if d := PointToLine(p, l1, l2); d > eps {
			t.Fatalf("point at fraction %.2f: distance %g, want 0", f, d)
		}
	}
}

func TestPointToLineScalesWithOffset(t *testing.T) {
	l1 := Pt(0, 0)
	l2 := Pt(30, 40)
	// unit normal of the direction (3,4)/5
	nx, ny := -4.0/5, 3.0/5
	mid := Pt(15, 20)
	for _, off := range []float64{0.5, 1, 2, 7.25} {
		p := Pt(mid.X+nx*off, mid.Y+ny*off)
		if d := PointToLine(p, l1, l2); math.Abs(d-off) > eps {
			t.Fatalf("offset %g: distance %g", off, d)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	size := core.Size{W: 640, H: 480}
	for _, p := range []Point{{0, 0}, {320, 240}, {640, 480}, {17, 401}} {
		back := Denormalize(Normalize(p, size), size)
		if math.Abs(back.X-p.X) > eps || math.Abs(back.Y-p.Y) > eps {
			t.Fatalf("round trip %v -> %v", p, back)
		}
	}
	n := Normalize(Pt(320, 120), size)
	if n.X != 0.5 || n.Y != 0.25 {
		t.Fatalf("Normalize = %v, want {0.5 0.25}", n)
	}
}

func TestLineThrough(t *testing.T) {
	l := LineThrough(Pt(0, 1), Pt(2, 5))
	if l.M != 2 || l.B != 1 {
		t.Fatalf("slope/intercept = %g/%g, want 2/1", l.M, l.B)
	}
	if want := math.Atan(2) + math.Pi/2; math.Abs(l.Norm-want) > eps {
		t.Fatalf("norm = %g, want %g", l.Norm, want)
	}
	vertical := LineThrough(Pt(3, 0), Pt(3, 9))
	if math.Abs(vertical.Norm-math.Pi) > eps {
		t.Fatalf("vertical norm = %g, want π", vertical.Norm)
	}
	horizontal := LineThrough(Pt(0, 4), Pt(9, 4))
	if math.Abs(horizontal.Norm-math.Pi/2) > eps {
		t.Fatalf("horizontal norm = %g, want π/2", horizontal.Norm)
	}
}

func TestClassifyAngle(t *testing.T) {
	tests := []struct {
		name   string
		norm   float64
		theta  float64
		want   Quadrant
		wantAd float64
	}{
		{"small", math.Pi / 2, math.Pi / 4, QuadrantD, math.Pi / 4},
		{"negative small", 0, math.Pi / 3, QuadrantD, -math.Pi / 3},
		{"obtuse", math.Pi, 0, QuadrantC, 0},
		{"reflex", 5 * math.Pi / 4, 0, QuadrantB, math.Pi / 4},
		{"near full turn", 7 * math.Pi / 4, 0, QuadrantA, 7 * math.Pi / 4},
		{"wraps", 2*math.Pi + math.Pi/4, 0, QuadrantD, math.Pi / 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ad, q := ClassifyAngle(tc.norm, tc.theta)
			if q != tc.want {
				t.Fatalf("quadrant = %s, want %s", q, tc.want)
			}
			if math.Abs(ad-tc.wantAd) > 1e-9 {
				t.Fatalf("ad = %g, want %g", ad, tc.wantAd)
			}
		})
	}
}

func TestQuadrantMarkersDistinct(t *testing.T) {
	seen := map[[4]uint8]Quadrant{}
	for _, q := range []Quadrant{QuadrantA, QuadrantB, QuadrantC, QuadrantD} {
		c := q.Marker()
		key := [4]uint8{c.R, c.G, c.B, c.A}
		if prev, ok := seen[key]; ok {
			t.Fatalf("quadrants %s and %s share a marker", prev, q)
		}
		seen[key] = q
	}
}

func TestSegmentBoundsPadding(t *testing.T) {
	b := SegmentBounds(Pt(10, 5), Pt(0, 5), 1.1)
	if !b.Contains(Pt(5, 5.5)) || !b.Contains(Pt(-1, 4)) {
		t.Fatal("padded bounds should contain points within the margin")
	}
	if b.Contains(Pt(5, 7)) || b.Contains(Pt(11.2, 5)) {
		t.Fatal("padded bounds should exclude points beyond the margin")
	}
}
