package terrain

import (
	"fmt"
	"math"
)

// MinSize is the smallest width or height a HeightField may have.
const MinSize = 2

// HeightField is a dense row-major grid of elevation values.
// Index = y*width + x. Only New returns a usable field; the zero value has
// no cells.
type HeightField struct {
	width, height int
	values        []float64
}

// New allocates a width×height field with every cell set to 0.
func New(width, height int) (*HeightField, error) {
	if width < MinSize || height < MinSize {
		return nil, fmt.Errorf("%w: %dx%d, both sides must be at least %d", ErrInvalidDimensions, width, height, MinSize)
	}
	return &HeightField{
		width:  width,
		height: height,
		values: make([]float64, width*height),
	}, nil
}

// Width returns the number of columns.
func (f *HeightField) Width() int { return f.width }

// Height returns the number of rows.
func (f *HeightField) Height() int { return f.height }

// Values returns the backing slice. Mutating it mutates the field.
func (f *HeightField) Values() []float64 { return f.values }

// Get returns the value at column x, row y.
func (f *HeightField) Get(x, y int) (float64, error) {
	if !f.inBounds(x, y) {
		return 0, f.boundsError(x, y)
	}
	return f.values[y*f.width+x], nil
}

// Set stores v at column x, row y.
func (f *HeightField) Set(x, y int, v float64) error {
	if !f.inBounds(x, y) {
		return f.boundsError(x, y)
	}
	f.values[y*f.width+x] = v
	return nil
}

// Fill sets every cell to v.
func (f *HeightField) Fill(v float64) {
	for i := range f.values {
		f.values[i] = v
	}
}

// ScanRange returns the smallest and largest value in the field.
// A flat field yields min == max; a field with no cells yields 0, 0.
func (f *HeightField) ScanRange() (lo, hi float64) {
	if len(f.values) == 0 {
		return 0, 0
	}
	lo, hi = f.values[0], f.values[0]
	for _, v := range f.values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// RescaleInPlace maps [lo, hi] linearly onto [0, outMax] and floors every
// cell. When lo == hi every cell becomes floor(outMax/2).
func (f *HeightField) RescaleInPlace(lo, hi, outMax float64) {
	span := hi - lo
	if span == 0 {
		f.Fill(math.Floor(outMax / 2))
		return
	}
	// hi-lo can overflow for finite bounds; halving both keeps the ratio.
	k := 1.0
	if math.IsInf(span, 0) {
		k = 0.5
		span = hi*k - lo*k
	}

	// A span equal to outMax is a pure shift; keeping it free of the
	// divide/multiply round trip makes re-normalizing exact.
	unit := span == outMax
	for i, v := range f.values {
		var out float64
		if unit {
			out = math.Floor(v - lo)
		} else {
			out = math.Floor((v*k - lo*k) / span * outMax)
		}
		// NaN compares false both ways and lands on 0.
		if !(out >= 0) {
			out = 0
		} else if out > outMax {
			out = outMax
		}
		f.values[i] = out
	}
}

// check reports whether f was built by New.
func (f *HeightField) check() error {
	if f.width < MinSize || f.height < MinSize || len(f.values) != f.width*f.height {
		return fmt.Errorf("%w: %dx%d field with %d cells", ErrInvalidDimensions, f.width, f.height, len(f.values))
	}
	return nil
}

func (f *HeightField) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

func (f *HeightField) boundsError(x, y int) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrIndexOutOfBounds, x, y, f.width, f.height)
}

// at and put skip bounds checks; callers guarantee valid coordinates.
func (f *HeightField) at(x, y int) float64 { return f.values[y*f.width+x] }

func (f *HeightField) put(x, y int, v float64) { f.values[y*f.width+x] = v }
