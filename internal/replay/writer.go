// Package replay records rendered frames and simulation samples to disk and
// reads them back.
package replay

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

const (
	FramesFile   = "frames.bin.zst"
	TicksFile    = "ticks.jsonl.sz"
	ManifestFile = "manifest.json"
	version      = 1
)

var nameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Sample is the simulation state captured alongside one recorded frame.
type Sample struct {
	Frame   uint64       `json:"frame"`
	Tick    uint64       `json:"tick"`
	Time    float64      `json:"time"`
	Centers [][3]float64 `json:"centers"`
}

// Manifest describes the bundle layout so tooling can locate artefacts.
type Manifest struct {
	Version    int    `json:"version"`
	CreatedAt  string `json:"created_at"`
	Frames     int    `json:"frames"`
	FramesPath string `json:"frames_path"`
	TicksPath  string `json:"ticks_path"`
}

// frameHeader precedes the RGBA bytes of every frame (little-endian).
type frameHeader struct {
	Tick   uint64
	Width  int32
	Height int32
}

// Writer streams frames (zstd) and samples (snappy) into a bundle directory.
type Writer struct {
	mu          sync.Mutex
	dir         string
	manifest    Manifest
	frameFile   *os.File
	frameStream *zstd.Encoder
	tickFile    *os.File
	tickStream  *snappy.Writer
	closed      bool
}

// NewWriter creates <root>/<name>-<UTC stamp>/ and opens the compressed sinks.
func NewWriter(root, name string, clock func() time.Time) (*Writer, Manifest, error) {
	if root == "" {
		return nil, Manifest{}, fmt.Errorf("replay root must be provided")
	}
	if clock == nil {
		clock = time.Now
	}
	cleaned := nameCleaner.ReplaceAllString(name, "")
	if cleaned == "" {
		cleaned = "render"
	}
	created := clock().UTC()
	dir := filepath.Join(root, fmt.Sprintf("%s-%s", cleaned, created.Format("20060102T150405Z")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, Manifest{}, err
	}

	frameFile, err := os.Create(filepath.Join(dir, FramesFile))
	if err != nil {
		return nil, Manifest{}, err
	}
	frameStream, err := zstd.NewWriter(frameFile)
	if err != nil {
		frameFile.Close()
		return nil, Manifest{}, err
	}
	tickFile, err := os.Create(filepath.Join(dir, TicksFile))
	if err != nil {
		frameStream.Close()
		frameFile.Close()
		return nil, Manifest{}, err
	}

	w := &Writer{
		dir: dir,
		manifest: Manifest{
			Version:    version,
			CreatedAt:  created.Format(time.RFC3339Nano),
			FramesPath: FramesFile,
			TicksPath:  TicksFile,
		},
		frameFile:   frameFile,
		frameStream: frameStream,
		tickFile:    tickFile,
		tickStream:  snappy.NewBufferedWriter(tickFile),
	}
	if err := w.writeManifest(); err != nil {
		w.Close()
		return nil, Manifest{}, err
	}
	return w, w.manifest, nil
}

// Directory exposes the directory backing the bundle.
func (w *Writer) Directory() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// WriteFrame appends one frame rendered at the given tick.
func (w *Writer) WriteFrame(tick uint64, img *image.RGBA) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("replay writer closed")
	}
	b := img.Bounds()
	hdr := frameHeader{Tick: tick, Width: int32(b.Dx()), Height: int32(b.Dy())}
	if err := binary.Write(w.frameStream, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	rowLen := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		if _, err := w.frameStream.Write(img.Pix[off : off+rowLen]); err != nil {
			return fmt.Errorf("write frame row: %w", err)
		}
	}
	w.manifest.Frames++
	return nil
}

// WriteSample appends one JSON line to the tick log.
func (w *Writer) WriteSample(s Sample) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("replay writer closed")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := w.tickStream.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	return nil
}

// Close flushes the streams and finalises the manifest.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	keep(w.frameStream.Close())
	keep(w.frameFile.Close())
	keep(w.tickStream.Close())
	keep(w.tickFile.Close())
	keep(w.writeManifest())
	return firstErr
}

func (w *Writer) writeManifest() error {
	data, err := json.MarshalIndent(w.manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.dir, ManifestFile), data, 0o644)
}
