package raster

import (
	"fmt"
	"image"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Kernel names a resampling filter.
type Kernel string

const (
	Nearest    Kernel = "nearest"
	Bilinear   Kernel = "bilinear"
	CatmullRom Kernel = "catmull-rom"
)

// ParseKernel accepts the Kernel names case-insensitively.
func ParseKernel(s string) (Kernel, error) {
	k := Kernel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := scalers[k]; !ok {
		return "", fmt.Errorf("unknown kernel %q", s)
	}
	return k, nil
}

var scalers = map[Kernel]xdraw.Scaler{
	Nearest:    xdraw.NearestNeighbor,
	Bilinear:   xdraw.BiLinear,
	CatmullRom: xdraw.CatmullRom,
}

// Scale resizes src by an integer factor. Gray input stays gray; anything
// else is scaled into RGBA. A factor of 1 returns src unchanged.
func Scale(src image.Image, factor int, k Kernel) (image.Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("scale factor %d must be at least 1", factor)
	}
	scaler, ok := scalers[k]
	if !ok {
		return nil, fmt.Errorf("unknown kernel %q", k)
	}
	if factor == 1 {
		return src, nil
	}

	b := src.Bounds()
	r := image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor)

	var dst xdraw.Image
	if _, ok := src.(*image.Gray); ok {
		dst = image.NewGray(r)
	} else {
		dst = image.NewRGBA(r)
	}
	scaler.Scale(dst, r, src, b, xdraw.Src, nil)
	return dst, nil
}
