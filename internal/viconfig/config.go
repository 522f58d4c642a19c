// Package viconfig persists the VI filter pipeline's runtime configuration
// to a JSON file: load-with-defaults-on-missing-file, save atomically via
// a temp-file-then-rename, migrate old versions forward in place.
package viconfig

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/kalindor/n64vi/vi"
)

// fileVersion is bumped whenever the on-disk shape changes in a way that
// needs migration.
const fileVersion = 1

// File is the on-disk JSON shape for vi.Config.
type File struct {
	Version      int    `json:"version"`
	NumWorkers   int    `json:"numWorkers"`
	Mode         string `json:"mode"`
	Widescreen   bool   `json:"widescreen"`
	ShowOverscan bool   `json:"showOverscan"`
}

// DefaultConfig returns the baseline configuration: auto-detect worker
// count, normal filtered output, no widescreen squeeze, overscan hidden.
func DefaultConfig() *File {
	return &File{
		Version:      fileVersion,
		NumWorkers:   0,
		Mode:         "normal",
		Widescreen:   false,
		ShowOverscan: false,
	}
}

// ConfigPath resolves config.json's location under the user's config
// directory, namespaced under "n64vi".
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "n64vi", "config.json"), nil
}

// Load reads config.json, returning defaults if it doesn't exist yet.
func Load() (*File, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := &File{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return migrate(cfg), nil
}

// Save writes config.json atomically: marshal to a sibling temp file,
// fsync, then rename over the destination so a crash mid-write never
// leaves a truncated config behind.
func Save(cfg *File) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

func migrate(cfg *File) *File {
	if cfg.Version == 0 {
		cfg.Version = fileVersion
	}
	return cfg
}

// ToViConfig translates the on-disk shape into vi.Config, the boundary
// between persisted settings and the live pipeline.
func (f *File) ToViConfig() vi.Config {
	mode := vi.ModeNormal
	switch f.Mode {
	case "color":
		mode = vi.ModeColor
	case "depth":
		mode = vi.ModeDepth
	case "coverage":
		mode = vi.ModeCoverage
	}

	return vi.Config{
		NumWorkers: f.NumWorkers,
		VI: vi.VIConfig{
			Mode:         mode,
			Widescreen:   f.Widescreen,
			ShowOverscan: f.ShowOverscan,
		},
	}
}
