package replay

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

const maxFramePixels = 1 << 26

// Reader walks a bundle produced by Writer.
type Reader struct {
	dir       string
	manifest  Manifest
	frameFile *os.File
	frames    *zstd.Decoder
}

// Open loads the manifest and prepares the frame stream.
func Open(dir string) (*Reader, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Version != version {
		return nil, fmt.Errorf("unsupported replay version %d", m.Version)
	}
	f, err := os.Open(filepath.Join(dir, m.FramesPath))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Reader{dir: dir, manifest: m, frameFile: f, frames: dec}, nil
}

func (r *Reader) Manifest() Manifest { return r.manifest }

// NextFrame returns the next recorded frame, or io.EOF after the last one.
func (r *Reader) NextFrame() (uint64, *image.RGBA, error) {
	var hdr frameHeader
	if err := binary.Read(r.frames, binary.LittleEndian, &hdr); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("read frame header: %w", err)
	}
	if hdr.Width <= 0 || hdr.Height <= 0 || int64(hdr.Width)*int64(hdr.Height) > maxFramePixels {
		return 0, nil, fmt.Errorf("corrupt frame header: %dx%d", hdr.Width, hdr.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(hdr.Width), int(hdr.Height)))
	if _, err := io.ReadFull(r.frames, img.Pix); err != nil {
		return 0, nil, fmt.Errorf("read frame pixels: %w", err)
	}
	return hdr.Tick, img, nil
}

// Samples decodes the whole tick log.
func (r *Reader) Samples() ([]Sample, error) {
	f, err := os.Open(filepath.Join(r.dir, r.manifest.TicksPath))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []Sample
	sc := bufio.NewScanner(snappy.NewReader(f))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		var s Sample
		if err := json.Unmarshal(sc.Bytes(), &s); err != nil {
			return nil, fmt.Errorf("decode sample %d: %w", len(out), err)
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Reader) Close() error {
	r.frames.Close()
	return r.frameFile.Close()
}
