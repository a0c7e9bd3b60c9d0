package spheretracer

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
)

// SaveAnimatedGIF writes one GIF frame per rendered frame.
// delay is in 100ths of a second (e.g., 4 => 25 fps).
func SaveAnimatedGIF(frames []*Frame, path string, delay int) error {
	imgs := make([]image.Image, len(frames))
	for i, f := range frames {
		imgs[i] = f.Img
	}
	return SaveAnimatedGIFImages(imgs, path, delay)
}

// SaveAnimatedGIFImages quantizes arbitrary images to the Plan9 palette.
func SaveAnimatedGIFImages(imgs []image.Image, path string, delay int) error {
	if len(imgs) == 0 {
		return fmt.Errorf("no frames to write to %s", path)
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(imgs)),
		Delay:     make([]int, 0, len(imgs)),
		LoopCount: 0,
	}
	n := len(imgs)
	for k, img := range imgs {
		if k%max(1, n/100) == 0 { // ~1% steps
			fmt.Printf("[GIF] %.2f%%\n", Real(k+1)*100/Real(n))
		}
		pimg := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), img, img.Bounds().Min)
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}
