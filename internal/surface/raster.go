package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"walks/internal/core"
)

// Raster is a Canvas backed by a software gg.Context.
type Raster struct {
	dc        *gg.Context
	size      core.Size
	composite Composite
}

var _ Canvas = (*Raster)(nil)

// NewRaster allocates a raster surface of the given size.
func NewRaster(size core.Size) (*Raster, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("surface: invalid raster size %dx%d", size.W, size.H)
	}
	return &Raster{dc: gg.NewContext(size.W, size.H), size: size}, nil
}

// Size returns the surface dimensions.
func (r *Raster) Size() core.Size { return r.size }

// Clear resets the surface to bg, or to transparent when bg is nil.
func (r *Raster) Clear(bg color.Color) error {
	if bg == nil {
		r.dc.Clear()
		return nil
	}
	r.dc.ClearWithColor(gg.FromColor(bg))
	return nil
}

// FillRect fills an axis-aligned rectangle. Gradients run left to right.
func (r *Raster) FillRect(x, y, w, h float64, p Paint) error {
	r.dc.SetFillBrush(brush(p, x, y, x+w, y))
	r.dc.DrawRectangle(x, y, w, h)
	return r.dc.Fill()
}

// Line strokes a segment with the given width.
func (r *Raster) Line(x1, y1, x2, y2, width float64, p Paint) error {
	r.dc.SetLineWidth(width)
	r.dc.SetStrokeBrush(brush(p, x1, y1, x2, y2))
	r.dc.MoveTo(x1, y1)
	r.dc.LineTo(x2, y2)
	return r.dc.Stroke()
}

// Dot fills a circle. Gradients run across the horizontal diameter.
func (r *Raster) Dot(x, y, radius float64, p Paint) error {
	r.dc.SetFillBrush(brush(p, x-radius, y, x+radius, y))
	r.dc.DrawCircle(x, y, radius)
	return r.dc.Fill()
}

// FillPattern tiles img across the whole surface.
func (r *Raster) FillPattern(tile image.Image) error {
	b := tile.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("surface: empty pattern tile")
	}
	buf := gg.ImageBufFromImage(tile)
	r.dc.SetFillPattern(r.dc.CreateImagePattern(buf, 0, 0, b.Dx(), b.Dy()))
	r.dc.DrawRectangle(0, 0, float64(r.size.W), float64(r.size.H))
	return r.dc.Fill()
}

// SetComposite switches between normal drawing and an overlay-blended layer.
// Entering overlay opens a gg layer; returning to normal composites it down.
func (r *Raster) SetComposite(mode Composite) error {
	if mode == r.composite {
		return nil
	}
	switch mode {
	case CompositeOverlay:
		r.dc.PushLayer(gg.BlendOverlay, 1)
	case CompositeNormal:
		r.dc.PopLayer()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedComposite, mode)
	}
	r.composite = mode
	return nil
}

// Image returns a snapshot of the current pixels. Any open overlay layer is
// composited first.
func (r *Raster) Image() image.Image {
	_ = r.SetComposite(CompositeNormal)
	return r.dc.Image()
}

// SavePNG writes the surface to path.
func (r *Raster) SavePNG(path string) error {
	if err := r.SetComposite(CompositeNormal); err != nil {
		return err
	}
	return r.dc.SavePNG(path)
}

// EncodePNG writes the surface as PNG to w.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.SetComposite(CompositeNormal); err != nil {
		return err
	}
	return r.dc.EncodePNG(w)
}

// Close releases the underlying context.
func (r *Raster) Close() error { return r.dc.Close() }

func brush(p Paint, x1, y1, x2, y2 float64) gg.Brush {
	if !p.Linear {
		return gg.Solid(toRGBA(p.From))
	}
	return gg.NewLinearGradientBrush(x1, y1, x2, y2).
		AddColorStop(0, toRGBA(p.From)).
		AddColorStop(1, toRGBA(p.To))
}

func toRGBA(c color.NRGBA) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}
