package render

import (
	"image"
	"image/color"
)

// fillImageRGBA copies img into buf as premultiplied RGBA, row by row. The
// buffer must hold 4*w*h bytes for the image bounds; it returns false when it
// does not.
func fillImageRGBA(buf []byte, img image.Image) bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if len(buf) != 4*w*h {
		return false
	}
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			start := rgba.PixOffset(b.Min.X, b.Min.Y+y)
			copy(buf[y*w*4:(y+1)*w*4], rgba.Pix[start:start+w*4])
		}
		return true
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			base := (y*w + x) * 4
			buf[base+0] = uint8(r >> 8)
			buf[base+1] = uint8(g >> 8)
			buf[base+2] = uint8(bl >> 8)
			buf[base+3] = uint8(a >> 8)
		}
	}
	return true
}

// fillSolidRGBA sets every pixel in buf to c.
func fillSolidRGBA(buf []byte, c color.Color) {
	r, g, b, a := c.RGBA()
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = uint8(r >> 8)
		buf[base+1] = uint8(g >> 8)
		buf[base+2] = uint8(b >> 8)
		buf[base+3] = uint8(a >> 8)
	}
}
