package spheretracer

import "math"

type Real = float64

var (
	Debug = false // set to true for verbose debug output and trace statistics
	PNG   = false // set to true to save a PNG sequence instead of an animated GIF
	HUD   = false // set to true to stamp frame number and tick onto saved frames
	inf   = math.Inf(1)
)

// Record, when non-empty, is the directory replay bundles are written to.
var Record = ""
