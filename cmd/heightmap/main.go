package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/OCharnyshevich/heightmap/internal/app"
	"github.com/OCharnyshevich/heightmap/internal/config"
	"github.com/OCharnyshevich/heightmap/internal/storage"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		configSrc  = flag.String("config", "", "config file path or go-getter URL (http, s3, gcs, git)")
		saveConfig = flag.String("save-config", "", "write the effective config to this path")
		cacheDir   = flag.String("cache", filepath.Join(os.TempDir(), "heightmap"), "staging directory for fetched files")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.IntVar(&cfg.Width, "width", cfg.Width, "field width in cells")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "field height in cells")
	flag.StringVar(&cfg.Method, "method", cfg.Method, "midpointDisplacement or diamondSquare")
	flag.Float64Var(&cfg.MaxRand, "max-rand", cfg.MaxRand, "corner seed magnitude")
	flag.Float64Var(&cfg.DecayFactor, "decay", cfg.DecayFactor, "randomness multiplier per level, in (0,1]")
	flag.BoolVar(&cfg.Quantized, "quantized", cfg.Quantized, "floor noise and midpoints for stepped terrain")
	flag.BoolVar(&cfg.XOnly, "x-only", cfg.XOnly, "split only while the x extent exceeds 2 cells (leaves rows unwritten off 2^n+1 squares)")
	flag.Float64Var(&cfg.OutMax, "out-max", cfg.OutMax, "brightest intensity after normalization")
	flag.StringVar(&cfg.Output, "out", cfg.Output, "output image path")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "png, bmp or tiff (default: from -out extension)")
	flag.IntVar(&cfg.Scale, "scale", cfg.Scale, "integer upscaling factor")
	flag.StringVar(&cfg.Kernel, "kernel", cfg.Kernel, "nearest, bilinear or catmull-rom")
	flag.BoolVar(&cfg.RGBA, "rgba", cfg.RGBA, "write RGBA instead of 8-bit gray")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.New(*cacheDir, log)
	if err != nil {
		log.Error("init storage", "error", err)
		os.Exit(1)
	}

	if *configSrc != "" {
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		fromFile := config.DefaultConfig()
		if err := store.LoadConfig(ctx, *configSrc, fromFile); err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
	}

	if err := app.New(cfg, store, log).Run(ctx); err != nil {
		log.Error("generate heightmap", "error", err)
		os.Exit(1)
	}

	if *saveConfig != "" {
		if err := store.SaveConfig(*saveConfig, cfg); err != nil {
			log.Error("save config", "error", err)
			os.Exit(1)
		}
	}
}
