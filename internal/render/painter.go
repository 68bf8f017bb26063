//go:build ebiten

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImagePainter uploads a scene image into a single ebiten image each frame.
type ImagePainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
	bg   color.Color
}

// NewImagePainter allocates a painter for a w*h surface. Frames whose size
// does not match are shown as bg.
func NewImagePainter(w, h int, bg color.Color) *ImagePainter {
	if bg == nil {
		bg = color.White
	}
	return &ImagePainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h), bg: bg}
}

// Blit uploads src into the painter image and draws it scaled onto dst.
func (p *ImagePainter) Blit(dst *ebiten.Image, src image.Image, scale int) {
	if src == nil || !fillImageRGBA(p.buf, src) {
		fillSolidRGBA(p.buf, p.bg)
	}
	p.img.WritePixels(p.buf)

	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *ImagePainter) Size() (int, int) { return p.w, p.h }
