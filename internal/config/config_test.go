package config

import (
	"errors"
	"testing"

	"github.com/OCharnyshevich/heightmap/pkg/raster"
	"github.com/OCharnyshevich/heightmap/pkg/terrain"
)

func TestDefaultConfigResolves(t *testing.T) {
	set, err := DefaultConfig().Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if set.Method != terrain.MidpointDisplacement {
		t.Errorf("Method = %v, want midpointDisplacement", set.Method)
	}
	if set.Noise != terrain.Continuous || set.Termination != terrain.TerminateOnBoth {
		t.Errorf("Noise/Termination = %v/%v, want continuous/both", set.Noise, set.Termination)
	}
	if set.Format != raster.PNG || set.Kernel != raster.Nearest {
		t.Errorf("Format/Kernel = %q/%q, want png/nearest", set.Format, set.Kernel)
	}
}

func TestResolveOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = "diamond-square"
	cfg.Quantized = true
	cfg.XOnly = true
	cfg.Output = "out/terrain.tif"
	cfg.Kernel = "catmull-rom"

	set, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if set.Method != terrain.DiamondSquare || set.Noise != terrain.Quantized || set.Termination != terrain.TerminateOnX {
		t.Errorf("settings = %+v", set)
	}
	if set.Format != raster.TIFF || set.Kernel != raster.CatmullRom {
		t.Errorf("Format/Kernel = %q/%q, want tiff/catmull-rom", set.Format, set.Kernel)
	}

	// An explicit format wins over the extension.
	cfg.Format = "bmp"
	if set, _ := cfg.Resolve(); set.Format != raster.BMP {
		t.Errorf("Format = %q, want bmp", set.Format)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"narrow", func(c *Config) { c.Width = 1 }, terrain.ErrInvalidDimensions},
		{"short", func(c *Config) { c.Height = 0 }, terrain.ErrInvalidDimensions},
		{"negative max rand", func(c *Config) { c.MaxRand = -5 }, terrain.ErrInvalidParameters},
		{"zero decay", func(c *Config) { c.DecayFactor = 0 }, terrain.ErrInvalidParameters},
		{"out max too large", func(c *Config) { c.OutMax = 1000 }, terrain.ErrInvalidParameters},
		{"fractional out max", func(c *Config) { c.OutMax = 99.5 }, terrain.ErrInvalidParameters},
		{"unknown method", func(c *Config) { c.Method = "voronoi" }, terrain.ErrInvalidParameters},
		{"unknown format", func(c *Config) { c.Output = "terrain.jpg" }, raster.ErrUnknownFormat},
		{"no output", func(c *Config) { c.Output = "" }, nil},
		{"zero scale", func(c *Config) { c.Scale = 0 }, nil},
		{"unknown kernel", func(c *Config) { c.Kernel = "box" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			_, err := cfg.Resolve()
			if err == nil {
				t.Fatal("Resolve succeeded, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 513
	cfg.Quantized = true

	fromFile := DefaultConfig()
	fromFile.Width = 65
	fromFile.Height = 33
	fromFile.Method = "diamondSquare"
	fromFile.Quantized = false

	Merge(cfg, fromFile, map[string]bool{"width": true, "quantized": true})

	if cfg.Width != 513 {
		t.Errorf("Width = %d, want CLI value 513", cfg.Width)
	}
	if !cfg.Quantized {
		t.Error("Quantized overwritten by file value")
	}
	if cfg.Height != 33 || cfg.Method != "diamondSquare" {
		t.Errorf("Height/Method = %d/%q, want file values 33/diamondSquare", cfg.Height, cfg.Method)
	}
}
