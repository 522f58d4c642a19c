// Package tracefile loads VI register/RAM trace fixtures from ZIP or RAR
// archives: detect the container format from its magic bytes, then pull
// the two files a trace needs out of it.
package tracefile

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"

	"github.com/kalindor/n64vi/vi"
)

// ErrMissingEntry is returned when a trace archive is missing one of its
// two required members.
var ErrMissingEntry = errors.New("tracefile: archive missing regs.json or ram.bin")

// ErrUnsupportedFormat is returned for archives that are neither ZIP nor
// RAR.
var ErrUnsupportedFormat = errors.New("tracefile: unsupported archive format")

var (
	magicZIP = []byte{0x50, 0x4b, 0x03, 0x04}
	magicRAR = []byte{0x52, 0x61, 0x72, 0x21}
)

// Trace is a captured sequence of VI register snapshots replayed against a
// single static RAM image, one vi.Registers per frame, as recorded from a
// real run for regression replay.
type Trace struct {
	Frames []vi.Registers
	RAM    *ramImage
}

// Load reads a trace archive from path, auto-detecting ZIP vs RAR from its
// leading magic bytes.
func Load(path string) (*Trace, error) {
	header := make([]byte, 4)
	f, err := openHeader(path, header)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch {
	case bytes.HasPrefix(header, magicZIP):
		return loadZIP(path)
	case bytes.HasPrefix(header, magicRAR):
		return loadRAR(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func loadZIP(path string) (*Trace, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var regsData, ramData []byte
	for _, f := range r.File {
		switch f.Name {
		case "regs.json":
			if regsData, err = readZipEntry(f); err != nil {
				return nil, err
			}
		case "ram.bin":
			if ramData, err = readZipEntry(f); err != nil {
				return nil, err
			}
		}
	}
	return build(regsData, ramData)
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func loadRAR(path string) (*Trace, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var regsData, ramData []byte
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.IsDir {
			continue
		}
		switch header.Name {
		case "regs.json":
			if regsData, err = io.ReadAll(r); err != nil {
				return nil, err
			}
		case "ram.bin":
			if ramData, err = io.ReadAll(r); err != nil {
				return nil, err
			}
		}
	}
	return build(regsData, ramData)
}

func build(regsData, ramData []byte) (*Trace, error) {
	if regsData == nil || ramData == nil {
		return nil, ErrMissingEntry
	}

	var frames []vi.Registers
	if err := json.Unmarshal(regsData, &frames); err != nil {
		return nil, fmt.Errorf("tracefile: decoding regs.json: %w", err)
	}

	return &Trace{Frames: frames, RAM: newRAMImage(ramData)}, nil
}

func openHeader(path string, header []byte) (io.ReadCloser, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(f, header); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
