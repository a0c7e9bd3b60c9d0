package spheretracer

import "fmt"

// Sink receives one colour per pixel, addressed from the canvas centre with y up.
type Sink interface {
	Put(x, y int, c Color)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(x, y int, c Color)

func (f SinkFunc) Put(x, y int, c Color) { f(x, y, c) }

// Render traces one primary ray per pixel of a width x height canvas.
// The scene is only read.
func Render(width, height int, scene *Scene, cam Camera, sink Sink) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("canvas must be positive, got %dx%d", width, height))
	}
	for x := -width / 2; x < width/2; x++ {
		for y := -height / 2; y < height/2; y++ {
			D := cam.CanvasToViewport(x, y, width, height)
			sink.Put(x, y, TraceRay(scene, cam.Origin, D, cam.TMin, inf, cam.Depth))
		}
	}
	if Debug {
		raysStats()
	}
}
