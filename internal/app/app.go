package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/OCharnyshevich/heightmap/internal/config"
	"github.com/OCharnyshevich/heightmap/internal/storage"
	"github.com/OCharnyshevich/heightmap/pkg/raster"
	"github.com/OCharnyshevich/heightmap/pkg/terrain"
)

// App runs one generation request: generate, normalize, render, write.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	store *storage.Storage

	// source builds the RandomSource for each request; nil means the
	// auto-seeded default.
	source func() terrain.RandomSource
}

// New creates a new App with the given config, storage and logger.
func New(cfg *config.Config, store *storage.Storage, log *slog.Logger) *App {
	return &App{cfg: cfg, log: log, store: store}
}

// Render generates a fresh height field and returns it as an image ready to
// be encoded. Nothing is retained between calls.
func (a *App) Render() (image.Image, *config.Settings, error) {
	set, err := a.cfg.Resolve()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := []terrain.Option{
		terrain.WithNoise(set.Noise),
		terrain.WithTermination(set.Termination),
	}
	if a.source != nil {
		opts = append(opts, terrain.WithSource(a.source()))
	}

	start := time.Now()
	field, err := terrain.Generate(a.cfg.Width, a.cfg.Height, set.Method, a.cfg.MaxRand, a.cfg.DecayFactor, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("generate: %w", err)
	}
	if err := terrain.Normalize(field, a.cfg.OutMax); err != nil {
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}
	a.log.Info("terrain generated",
		"method", set.Method,
		"noise", set.Noise,
		"width", a.cfg.Width,
		"height", a.cfg.Height,
		"elapsed", time.Since(start),
	)

	start = time.Now()
	var img image.Image
	if a.cfg.RGBA {
		img, err = raster.RGBA(field)
	} else {
		img, err = raster.Gray(field)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}
	if img, err = raster.Scale(img, a.cfg.Scale, set.Kernel); err != nil {
		return nil, nil, fmt.Errorf("scale: %w", err)
	}
	a.log.Info("raster rendered", "scale", a.cfg.Scale, "elapsed", time.Since(start))

	return img, set, nil
}

// Run renders an image and writes it to the configured output. The context
// is checked between stages; generation itself runs to completion.
func (a *App) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, set, err := a.Render()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		a.log.Info("discarding result, context cancelled")
		return err
	}
	if err := a.store.SaveImage(a.cfg.Output, img, set.Format); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}
