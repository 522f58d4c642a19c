package tracefile

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/kalindor/n64vi/vi"
)

func writeTestZIP(t *testing.T, regsJSON, ramBin []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, data := range map[string][]byte{"regs.json": regsJSON, "ram.bin": ramBin} {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ZIPRoundTrips(t *testing.T) {
	regsJSON := []byte(`[[3,4096,64,0,1024,1024,7077020,2228306,525]]`)
	ramBin := make([]byte, 4096)

	path := writeTestZIP(t, regsJSON, ramBin)

	trace, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(trace.Frames) != 1 {
		t.Fatalf("Frames = %d, want 1", len(trace.Frames))
	}
	if trace.Frames[0].VIRegister(vi.RegStatus) != 3 {
		t.Errorf("RegStatus = %d, want 3", trace.Frames[0].VIRegister(vi.RegStatus))
	}
}

func TestLoad_MissingEntryErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	w.Close()
	f.Close()

	if _, err := Load(path); err != ErrMissingEntry {
		t.Errorf("Load() error = %v, want ErrMissingEntry", err)
	}
}

func TestLoad_UnsupportedFormatErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notanarchive.bin")
	if err := os.WriteFile(path, []byte("not an archive at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() of a non-archive file: want error, got nil")
	}
}

func TestRAMImage_ReadPair16SplitsHiddenPlane(t *testing.T) {
	data := make([]byte, 16)
	data[0], data[1] = 0x12, 0x34 // pixel 0, visible plane
	data[8] = 0x05                // pixel 0's hidden byte, at len/2 + idx

	img := newRAMImage(data)
	pix, hidden := img.ReadPair16(0)
	if pix != 0x1234 {
		t.Errorf("pix = %#x, want 0x1234", pix)
	}
	if hidden != 0x05 {
		t.Errorf("hidden = %#x, want 0x05", hidden)
	}
}
