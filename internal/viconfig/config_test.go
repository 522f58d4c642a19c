package viconfig

import (
	"path/filepath"
	"testing"

	"github.com/kalindor/n64vi/vi"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != "normal" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "normal")
	}
	if cfg.NumWorkers != 0 {
		t.Errorf("NumWorkers = %d, want 0 (auto)", cfg.NumWorkers)
	}
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := &File{Version: fileVersion, NumWorkers: 4, Mode: "depth", Widescreen: true, ShowOverscan: true}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSave_WritesIntoNamespacedDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := Save(DefaultConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != filepath.Join(dir, "n64vi") {
		t.Errorf("config path = %s, want under %s/n64vi", path, dir)
	}
}

func TestToViConfig_TranslatesModeStrings(t *testing.T) {
	cases := map[string]vi.Mode{
		"normal":   vi.ModeNormal,
		"color":    vi.ModeColor,
		"depth":    vi.ModeDepth,
		"coverage": vi.ModeCoverage,
		"bogus":    vi.ModeNormal,
	}
	for mode, want := range cases {
		f := &File{Mode: mode}
		if got := f.ToViConfig().VI.Mode; got != want {
			t.Errorf("ToViConfig() for Mode=%q = %v, want %v", mode, got, want)
		}
	}
}
