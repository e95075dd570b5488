package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/OCharnyshevich/heightmap/pkg/terrain"
)

func field(t *testing.T, w, h int, values ...float64) *terrain.HeightField {
	t.Helper()
	f, err := terrain.New(w, h)
	if err != nil {
		t.Fatalf("terrain.New: %v", err)
	}
	copy(f.Values(), values)
	return f
}

func TestGrayPixels(t *testing.T) {
	f := field(t, 3, 2, 0, 10, 20, 30, 127, 255)

	img, err := Gray(f)
	if err != nil {
		t.Fatalf("Gray: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 3x2", b)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			v, _ := f.Get(x, y)
			if got := img.GrayAt(x, y).Y; got != uint8(v) {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, uint8(v))
			}
		}
	}
}

func TestRGBAChannelsEqualAndOpaque(t *testing.T) {
	f := field(t, 2, 2, 5, 66, 200, 255)

	img, err := RGBA(f)
	if err != nil {
		t.Fatalf("RGBA: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			v, _ := f.Get(x, y)
			want := color.RGBA{R: uint8(v), G: uint8(v), B: uint8(v), A: 255}
			if got := img.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRejectsUnnormalizedField(t *testing.T) {
	for _, bad := range []float64{-1, 256, 12.5} {
		f := field(t, 2, 2, 0, 1, 2, bad)
		if _, err := Gray(f); !errors.Is(err, ErrNotNormalized) {
			t.Errorf("Gray with %v: error = %v, want ErrNotNormalized", bad, err)
		}
		if _, err := RGBA(f); !errors.Is(err, ErrNotNormalized) {
			t.Errorf("RGBA with %v: error = %v, want ErrNotNormalized", bad, err)
		}
	}
}

func TestRenderGeneratedField(t *testing.T) {
	f, err := terrain.Generate(17, 17, terrain.DiamondSquare, 1000, 0.8)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := terrain.Normalize(f, 255); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, err := Gray(f); err != nil {
		t.Errorf("Gray: %v", err)
	}
}

func TestScale(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 10})
	src.SetGray(1, 0, color.Gray{Y: 80})
	src.SetGray(0, 1, color.Gray{Y: 160})
	src.SetGray(1, 1, color.Gray{Y: 240})

	out, err := Scale(src, 3, Nearest)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("Scale returned %T, want *image.Gray", out)
	}
	if b := gray.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds = %v, want 6x6", b)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if got, want := gray.GrayAt(x, y), src.GrayAt(x/3, y/3); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	if same, _ := Scale(src, 1, CatmullRom); same != image.Image(src) {
		t.Error("factor 1 should return the source image")
	}
	if _, err := Scale(src, 0, Nearest); err == nil {
		t.Error("factor 0 should fail")
	}
	if _, err := Scale(src, 2, Kernel("lanczos")); err == nil {
		t.Error("unknown kernel should fail")
	}
}

func TestScaleRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	out, err := Scale(src, 2, Bilinear)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if _, ok := out.(*image.RGBA); !ok {
		t.Fatalf("Scale returned %T, want *image.RGBA", out)
	}
	if b := out.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", b)
	}
}

func TestParseKernel(t *testing.T) {
	for _, s := range []string{"nearest", "Bilinear", " catmull-rom "} {
		if _, err := ParseKernel(s); err != nil {
			t.Errorf("ParseKernel(%q): %v", s, err)
		}
	}
	if _, err := ParseKernel("box"); err == nil {
		t.Error("ParseKernel(box) should fail")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", PNG},
		{".PNG", PNG},
		{"bmp", BMP},
		{"tif", TIFF},
		{".tiff", TIFF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("jpeg"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(jpeg) error = %v, want ErrUnknownFormat", err)
	}

	if got, err := FormatFromPath("out/terrain.bmp"); err != nil || got != BMP {
		t.Errorf("FormatFromPath(terrain.bmp) = %q, %v", got, err)
	}
	if _, err := FormatFromPath("terrain"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("FormatFromPath(no ext) error = %v, want ErrUnknownFormat", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	img, err := Gray(field(t, 4, 3, 0, 20, 40, 60, 80, 100, 120, 140, 160, 180, 200, 255))
	if err != nil {
		t.Fatalf("Gray: %v", err)
	}

	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		PNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		BMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		TIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}

	for format, decode := range decoders {
		var buf bytes.Buffer
		if err := Encode(&buf, img, format); err != nil {
			t.Fatalf("Encode %s: %v", format, err)
		}
		got, err := decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("decode %s: %v", format, err)
		}
		if got.Bounds() != img.Bounds() {
			t.Fatalf("%s bounds = %v, want %v", format, got.Bounds(), img.Bounds())
		}
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				g := color.GrayModel.Convert(got.At(x, y)).(color.Gray)
				if g != img.GrayAt(x, y) {
					t.Errorf("%s pixel (%d,%d) = %v, want %v", format, x, y, g, img.GrayAt(x, y))
				}
			}
		}
	}

	if err := Encode(&bytes.Buffer{}, img, Format("gif")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode(gif) error = %v, want ErrUnknownFormat", err)
	}
}
