package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/heightmap/internal/config"
	"github.com/OCharnyshevich/heightmap/pkg/raster"
)

// Storage fetches config files and persists rendered images.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage that stages downloads under dir, creating it as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, log: log}, nil
}

// Fetch downloads a single file from src into a fresh staging directory and
// returns its local path along with a cleanup func. src is anything
// go-getter understands: a local path, http(s)://, s3::, gcs:: or git::.
func (s *Storage) Fetch(ctx context.Context, src string) (string, func(), error) {
	pwd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("get working directory: %w", err)
	}
	stage, err := os.MkdirTemp(s.dir, "fetch-")
	if err != nil {
		return "", nil, fmt.Errorf("create staging directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(stage) }

	dst := filepath.Join(stage, "download")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	s.log.Debug("fetched file", "src", src, "dst", dst)
	return dst, cleanup, nil
}

// LoadConfig fetches src and decodes it into cfg.
func (s *Storage) LoadConfig(ctx context.Context, src string, cfg *config.Config) error {
	path, cleanup, err := s.Fetch(ctx, src)
	if err != nil {
		return err
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.log.Info("loaded config", "src", src)
	return nil
}

// SaveConfig writes cfg to path atomically.
func (s *Storage) SaveConfig(path string, cfg *config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	return atomicWrite(path, data)
}

// SaveImage encodes img in format f and writes it to path atomically.
func (s *Storage) SaveImage(path string, img image.Image, f raster.Format) error {
	var buf bytes.Buffer
	if err := raster.Encode(&buf, img, f); err != nil {
		return err
	}
	if err := atomicWrite(path, buf.Bytes()); err != nil {
		return err
	}
	s.log.Info("wrote image", "path", path, "format", f, "bytes", buf.Len())
	return nil
}

// atomicWrite writes data using a temp file + rename, creating parent
// directories first.
func atomicWrite(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
