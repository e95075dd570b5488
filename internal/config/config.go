package config

import (
	"fmt"

	"github.com/OCharnyshevich/heightmap/pkg/raster"
	"github.com/OCharnyshevich/heightmap/pkg/terrain"
)

// Config holds the generation and output settings.
type Config struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Method      string  `json:"method"` // "midpointDisplacement" or "diamondSquare"
	MaxRand     float64 `json:"max_rand"`
	DecayFactor float64 `json:"decay_factor"`
	Quantized   bool    `json:"quantized"`
	XOnly       bool    `json:"x_only"` // split only while the x extent > 2
	OutMax      float64 `json:"out_max"`

	Output string `json:"output"`
	Format string `json:"format,omitempty"` // derived from Output when empty
	Scale  int    `json:"scale"`
	Kernel string `json:"kernel"`
	RGBA   bool   `json:"rgba"` // write RGBA instead of 8-bit gray
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Width:       1000,
		Height:      1000,
		Method:      terrain.MidpointDisplacement.String(),
		MaxRand:     1000,
		DecayFactor: 0.8,
		OutMax:      255,
		Output:      "heightmap.png",
		Scale:       1,
		Kernel:      string(raster.Nearest),
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["method"] {
		cfg.Method = fromFile.Method
	}
	if !explicitFlags["max-rand"] {
		cfg.MaxRand = fromFile.MaxRand
	}
	if !explicitFlags["decay"] {
		cfg.DecayFactor = fromFile.DecayFactor
	}
	if !explicitFlags["quantized"] {
		cfg.Quantized = fromFile.Quantized
	}
	if !explicitFlags["x-only"] {
		cfg.XOnly = fromFile.XOnly
	}
	if !explicitFlags["out-max"] {
		cfg.OutMax = fromFile.OutMax
	}
	if !explicitFlags["out"] {
		cfg.Output = fromFile.Output
	}
	if !explicitFlags["format"] {
		cfg.Format = fromFile.Format
	}
	if !explicitFlags["scale"] {
		cfg.Scale = fromFile.Scale
	}
	if !explicitFlags["kernel"] {
		cfg.Kernel = fromFile.Kernel
	}
	if !explicitFlags["rgba"] {
		cfg.RGBA = fromFile.RGBA
	}
}

// Settings is a validated Config resolved into typed values.
type Settings struct {
	Method      terrain.Method
	Noise       terrain.Noise
	Termination terrain.Termination
	Format      raster.Format
	Kernel      raster.Kernel
}

// Resolve validates cfg and converts its string fields. Errors wrap the
// terrain sentinel that matches the offending field where there is one.
func (c *Config) Resolve() (*Settings, error) {
	if c.Width < terrain.MinSize || c.Height < terrain.MinSize {
		return nil, fmt.Errorf("%w: %dx%d", terrain.ErrInvalidDimensions, c.Width, c.Height)
	}
	if err := terrain.ValidateParams(c.MaxRand, c.DecayFactor); err != nil {
		return nil, err
	}
	if c.OutMax < 1 || c.OutMax > 255 || c.OutMax != float64(int(c.OutMax)) {
		return nil, fmt.Errorf("%w: out_max %v must be an integer in [1,255]", terrain.ErrInvalidParameters, c.OutMax)
	}

	s := &Settings{Noise: terrain.Continuous, Termination: terrain.TerminateOnBoth}
	var err error
	if s.Method, err = terrain.ParseMethod(c.Method); err != nil {
		return nil, err
	}
	if c.Quantized {
		s.Noise = terrain.Quantized
	}
	if c.XOnly {
		s.Termination = terrain.TerminateOnX
	}

	if c.Output == "" {
		return nil, fmt.Errorf("output path required")
	}
	if c.Format != "" {
		s.Format, err = raster.ParseFormat(c.Format)
	} else {
		s.Format, err = raster.FormatFromPath(c.Output)
	}
	if err != nil {
		return nil, err
	}

	if c.Scale < 1 {
		return nil, fmt.Errorf("scale %d must be at least 1", c.Scale)
	}
	if s.Kernel, err = raster.ParseKernel(c.Kernel); err != nil {
		return nil, err
	}
	return s, nil
}
