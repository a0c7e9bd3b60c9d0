package spheretracer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Frame is host-side pixel storage for one rendered canvas.
// It implements Sink: centred coordinates, y up, stored top row first.
type Frame struct {
	W, H  int
	Index uint64 // frame counter
	Tick  uint64 // simulation tick the frame was rendered at
	Img   *image.RGBA
}

func NewFrame(w, h int) *Frame {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("frame must be positive, got %dx%d", w, h))
	}
	return &Frame{W: w, H: h, Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Put stores c at centred pixel (x, y), flipping y so up is up.
func (f *Frame) Put(x, y int, c Color) {
	i := x + f.W/2
	j := f.H - 1 - (y + f.H/2)
	p := j*f.Img.Stride + i*4
	f.Img.Pix[p+0] = c.R
	f.Img.Pix[p+1] = c.G
	f.Img.Pix[p+2] = c.B
	f.Img.Pix[p+3] = 255
}

// At returns the stored colour at centred pixel (x, y).
func (f *Frame) At(x, y int) Color {
	i := x + f.W/2
	j := f.H - 1 - (y + f.H/2)
	p := j*f.Img.Stride + i*4
	return Color{f.Img.Pix[p+0], f.Img.Pix[p+1], f.Img.Pix[p+2], 0}
}

// Clear paints the whole frame with c.
func (f *Frame) Clear(c Color) {
	pix := f.Img.Pix
	for p := 0; p < len(pix); p += 4 {
		pix[p+0] = c.R
		pix[p+1] = c.G
		pix[p+2] = c.B
		pix[p+3] = 255
	}
}

// Letterbox scales the frame into a winW x winH image, keeping the aspect
// ratio and filling the bars with black.
func (f *Frame) Letterbox(winW, winH int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, winW, winH))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, xdraw.Src)

	frameAR := Real(f.W) / Real(f.H)
	windowAR := Real(winW) / Real(winH)
	r := dst.Bounds()
	switch {
	case frameAR > windowAR:
		h := int(Real(winW) / frameAR)
		bar := (winH - h) / 2
		r = image.Rect(0, bar, winW, bar+h)
	case frameAR < windowAR:
		w := int(Real(winH) * frameAR)
		bar := (winW - w) / 2
		r = image.Rect(bar, 0, bar+w, winH)
	}
	xdraw.NearestNeighbor.Scale(dst, r, f.Img, f.Img.Bounds(), xdraw.Src, nil)
	return dst
}

// Annotate stamps a one-line label into the top-left corner.
func (f *Frame) Annotate(label string) {
	dc := gg.NewContextForRGBA(f.Img)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(label, 4, 4, 0, 1)
}

func (f *Frame) EncodePNG(w io.Writer) error {
	return gg.NewContextForRGBA(f.Img).EncodePNG(w)
}

// PNGBytes returns the frame encoded as PNG.
func (f *Frame) PNGBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderFrame renders scene into a fresh frame cleared to the background.
func RenderFrame(width, height int, scene *Scene, cam Camera) *Frame {
	f := NewFrame(width, height)
	f.Clear(scene.Background)
	Render(width, height, scene, cam, f)
	return f
}
