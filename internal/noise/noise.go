// Package noise grains a finished surface with a repeating tile of grey
// pixel noise.
package noise

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"walks/internal/surface"
	rng "walks/pkg/core"
)

// DefaultTileSize is used when neither Options.TileSize nor the surface
// width gives a usable tile side.
const DefaultTileSize = 100

// Tile returns a size×size image where every pixel is a random grey level at
// the given opacity in [0, 1].
func Tile(r *rng.RNG, size int, opacity float64) *image.NRGBA {
	if size <= 0 {
		size = DefaultTileSize
	}
	alpha := surface.RGBA(0, 0, 0, opacity).A
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := uint8(r.IntN(255))
			img.SetNRGBA(x, y, color.NRGBA{R: n, G: n, B: n, A: alpha})
		}
	}
	return img
}

// Apply covers c with tile repeated in both directions, in overlay blend when
// overlay is set. The composite mode is always put back to normal.
func Apply(c surface.Canvas, tile image.Image, overlay bool) error {
	if tile == nil {
		return errors.New("noise: nil tile")
	}
	if overlay {
		if err := c.SetComposite(surface.CompositeOverlay); err != nil {
			return fmt.Errorf("noise: %w", err)
		}
	}
	err := c.FillPattern(tile)
	if err != nil {
		err = fmt.Errorf("noise: fill pattern: %w", err)
	}
	if overlay {
		if rerr := c.SetComposite(surface.CompositeNormal); rerr != nil {
			err = errors.Join(err, fmt.Errorf("noise: restore composite: %w", rerr))
		}
	}
	return err
}

// Options configures a noise pass.
type Options struct {
	Opacity  float64
	TileSize int // tile side in pixels; 0 means a third of the surface width
	Overlay  bool
	// Tile, when set, is used as-is instead of generating one.
	Tile image.Image
}

// Pass grains c once, building a tile from r unless opts carries one. It
// returns the tile it used so callers can reuse it across scenes.
func Pass(c surface.Canvas, r *rng.RNG, opts Options) (image.Image, error) {
	tile := opts.Tile
	if tile == nil {
		size := opts.TileSize
		if size <= 0 {
			size = c.Size().W / 3
		}
		tile = Tile(r, size, opts.Opacity)
	}
	return tile, Apply(c, tile, opts.Overlay)
}
