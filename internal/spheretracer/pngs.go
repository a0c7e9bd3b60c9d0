package spheretracer

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// SavePNG writes one image as a lossless PNG, creating parent directories.
func SavePNG(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SavePNGSequence writes prefix_<n>.png per frame, letterboxed into a
// winW x winH window when both are positive.
func SavePNGSequence(frames []*Frame, prefix string, winW, winH int) error {
	n := len(frames)
	// Zero-padding width based on number of frames.
	width := 1
	if n > 1 {
		width = int(math.Log10(Real(n-1))) + 1
	}
	step := max(1, n/100)
	for k, fr := range frames {
		if k%step == 0 {
			fmt.Printf("[PNG]  %.2f%%\n", Real(k+1)*100/Real(n))
		}
		var img image.Image = fr.Img
		if winW > 0 && winH > 0 {
			img = fr.Letterbox(winW, winH)
		}
		full := fmt.Sprintf("%s_%0*d.png", prefix, width, k)
		if err := SavePNG(img, full); err != nil {
			return err
		}
	}
	return nil
}
