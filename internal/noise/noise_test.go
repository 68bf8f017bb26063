package noise

import (
	"errors"
	"image"
	"testing"

	"walks/internal/core"
	"walks/internal/surface"
	rng "walks/pkg/core"
)

func TestTileIsGreyAtOpacity(t *testing.T) {
	img := Tile(rng.NewRNG(3), 16, 0.04)
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("tile bounds %v", b)
	}
	seen := map[uint8]bool{}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			px := img.NRGBAAt(x, y)
			if px.R != px.G || px.G != px.B {
				t.Fatalf("pixel (%d,%d) not grey: %v", x, y, px)
			}
			if px.A != 10 {
				t.Fatalf("pixel (%d,%d) alpha %d, want 10", x, y, px.A)
			}
			if px.R == 255 {
				t.Fatal("noise levels stay below 255")
			}
			seen[px.R] = true
		}
	}
	if len(seen) < 50 {
		t.Fatalf("only %d distinct grey levels", len(seen))
	}
}

func TestTileDeterministic(t *testing.T) {
	a := Tile(rng.NewRNG(5), 8, 0.5)
	b := Tile(rng.NewRNG(5), 8, 0.5)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("byte %d differs", i)
		}
	}
}

func TestApplyOverlayRestoresComposite(t *testing.T) {
	rec := surface.NewRecorder(core.Size{W: 30, H: 30})
	tile := Tile(rng.NewRNG(1), 10, 0.2)
	if err := Apply(rec, tile, true); err != nil {
		t.Fatal(err)
	}
	kinds := []surface.OpKind{surface.OpComposite, surface.OpPattern, surface.OpComposite}
	if len(rec.Ops) != len(kinds) {
		t.Fatalf("ops = %+v", rec.Ops)
	}
	for i, k := range kinds {
		if rec.Ops[i].Kind != k {
			t.Fatalf("op %d kind %d, want %d", i, rec.Ops[i].Kind, k)
		}
	}
	if rec.Ops[0].Composite != surface.CompositeOverlay || rec.Composite() != surface.CompositeNormal {
		t.Fatalf("composite sequence wrong: first %s, final %s", rec.Ops[0].Composite, rec.Composite())
	}
}

func TestApplyPlain(t *testing.T) {
	rec := surface.NewRecorder(core.Size{W: 30, H: 30})
	if err := Apply(rec, Tile(rng.NewRNG(1), 4, 0.2), false); err != nil {
		t.Fatal(err)
	}
	if rec.Count(surface.OpComposite) != 0 || rec.Count(surface.OpPattern) != 1 {
		t.Fatalf("ops = %+v", rec.Ops)
	}
}

func TestApplyPropagatesSurfaceError(t *testing.T) {
	rec := surface.NewRecorder(core.Size{W: 30, H: 30})
	boom := errors.New("no overlay here")
	rec.Fail = func(op surface.Op) error {
		if op.Kind == surface.OpComposite && op.Composite == surface.CompositeOverlay {
			return boom
		}
		return nil
	}
	if err := Apply(rec, Tile(rng.NewRNG(1), 4, 0.2), true); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if rec.Count(surface.OpPattern) != 0 {
		t.Fatal("pattern must not be drawn when the blend mode is refused")
	}
}

func TestPassSizesTileFromSurface(t *testing.T) {
	rec := surface.NewRecorder(core.Size{W: 90, H: 40})
	tile, err := Pass(rec, rng.NewRNG(2), Options{Opacity: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if b := tile.Bounds(); b.Dx() != 30 || b.Dy() != 30 {
		t.Fatalf("tile %v, want 30x30", b)
	}
	pats := rec.Filter(surface.OpPattern)
	if len(pats) != 1 || pats[0].X2 != 30 {
		t.Fatalf("patterns = %+v", pats)
	}
}

func TestPassReusesPrebuiltTile(t *testing.T) {
	rec := surface.NewRecorder(core.Size{W: 90, H: 40})
	pre := image.NewNRGBA(image.Rect(0, 0, 7, 7))
	tile, err := Pass(rec, rng.NewRNG(2), Options{Tile: pre})
	if err != nil {
		t.Fatal(err)
	}
	if tile != image.Image(pre) {
		t.Fatal("prebuilt tile must be used as-is")
	}
}
