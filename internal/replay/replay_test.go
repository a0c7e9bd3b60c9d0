package replay

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func gradient(w, h int, seed uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i) + seed
	}
	return img
}

func TestWriterReaderRoundTrip(t *testing.T) {
	root := t.TempDir()
	w, m, err := NewWriter(root, "spheres run!", fixedClock)
	if err != nil {
		t.Fatal(err)
	}
	wantDir := filepath.Join(root, "spheresrun-20240301T123000Z")
	if w.Directory() != wantDir {
		t.Fatalf("dir = %q, want %q", w.Directory(), wantDir)
	}
	if m.Version != version || m.Frames != 0 {
		t.Fatalf("unexpected initial manifest: %+v", m)
	}

	frames := []*image.RGBA{gradient(3, 2, 0), gradient(5, 4, 7)}
	for i, img := range frames {
		if err := w.WriteFrame(uint64(10*i), img); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		s := Sample{Frame: uint64(i), Tick: uint64(10 * i), Time: float64(i) / 24, Centers: [][3]float64{{0, -1, 3 + float64(i)}}}
		if err := w.WriteSample(s); err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := w.WriteFrame(99, frames[0]); err == nil {
		t.Fatalf("expected error writing to a closed bundle")
	}

	r, err := Open(w.Directory())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if got := r.Manifest().Frames; got != 2 {
		t.Fatalf("manifest frames = %d, want 2", got)
	}
	for i, want := range frames {
		tick, img, err := r.NextFrame()
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if tick != uint64(10*i) {
			t.Fatalf("tick %d = %d", i, tick)
		}
		if img.Bounds() != want.Bounds() {
			t.Fatalf("bounds %d = %v, want %v", i, img.Bounds(), want.Bounds())
		}
		for p := range want.Pix {
			if img.Pix[p] != want.Pix[p] {
				t.Fatalf("frame %d pixel byte %d = %d, want %d", i, p, img.Pix[p], want.Pix[p])
			}
		}
	}
	if _, _, err := r.NextFrame(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after last frame, got %v", err)
	}

	samples, err := r.Samples()
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 2 || samples[1].Tick != 10 || samples[1].Centers[0][2] != 4 {
		t.Fatalf("unexpected samples: %+v", samples)
	}
}

func TestNewWriterRequiresRoot(t *testing.T) {
	if _, _, err := NewWriter("", "x", nil); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestOpenRejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(`{"version":42}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(dir); err == nil {
		t.Fatal("expected version error")
	}
}
