package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/OCharnyshevich/heightmap/pkg/terrain"
)

// ErrNotNormalized is returned when a cell is not an integer in [0, 255].
var ErrNotNormalized = errors.New("height field is not normalized to [0,255]")

// Gray maps every cell to one 8-bit intensity. Column x of the field is
// pixel x, row y is pixel y.
func Gray(f *terrain.HeightField) (*image.Gray, error) {
	w, h := f.Width(), f.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))

	for i, v := range f.Values() {
		y8, err := intensity(v)
		if err != nil {
			return nil, fmt.Errorf("cell (%d,%d): %w", i%w, i/w, err)
		}
		img.Pix[(i/w)*img.Stride+i%w] = y8
	}
	return img, nil
}

// RGBA writes each cell into equal red, green and blue channels with full
// opacity, the layout a canvas pixel buffer expects.
func RGBA(f *terrain.HeightField) (*image.RGBA, error) {
	w, h := f.Width(), f.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v, err := f.Get(x, y)
			if err != nil {
				return nil, err
			}
			y8, err := intensity(v)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			img.SetRGBA(x, y, color.RGBA{R: y8, G: y8, B: y8, A: 255})
		}
	}
	return img, nil
}

func intensity(v float64) (uint8, error) {
	if math.IsNaN(v) || v < 0 || v > 255 || v != math.Floor(v) {
		return 0, fmt.Errorf("%w: value %v", ErrNotNormalized, v)
	}
	return uint8(v), nil
}
