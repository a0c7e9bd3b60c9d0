package spheretracer

import "fmt"

// Camera maps canvas pixels onto a viewport plane in front of a fixed eye.
type Camera struct {
	Origin           Vector3
	ViewportWidth    Real
	ViewportHeight   Real
	ViewportDistance Real
	TMin             Real // primary rays ignore hits before this parameter
	Depth            int  // reflection recursion budget
}

// DefaultCamera is the reference eye at the origin looking down +Z.
func DefaultCamera() Camera {
	return Camera{
		ViewportWidth:    ViewportWidth,
		ViewportHeight:   ViewportHeight,
		ViewportDistance: ViewportDistance,
		TMin:             PrimaryTMin,
		Depth:            MaxDepth,
	}
}

// CanvasToViewport returns the primary ray direction for pixel (x, y) measured
// from the canvas centre. Coordinates outside the canvas half-extents are a
// caller bug and panic.
func (c Camera) CanvasToViewport(x, y, canvasW, canvasH int) Vector3 {
	if x < -canvasW/2 || x >= canvasW/2 || y < -canvasH/2 || y >= canvasH/2 {
		panic(fmt.Sprintf("pixel (%d, %d) outside %dx%d canvas", x, y, canvasW, canvasH))
	}
	return Vector3{
		X: Real(x) * c.ViewportWidth / Real(canvasW),
		Y: Real(y) * c.ViewportHeight / Real(canvasH),
		Z: c.ViewportDistance,
	}
}
