package spheretracer

// Defaults for the reference scene and host.
const (
	CanvasWidth      = 500
	CanvasHeight     = 500
	WindowWidth      = 1280
	WindowHeight     = 720
	ViewportWidth    = 1.0
	ViewportHeight   = 1.0
	ViewportDistance = 1.0
	PrimaryTMin      = 1.0 // primaries start on the viewport plane
	MaxDepth         = 3   // reflection recursion budget
	TickDT           = 1.0 / 240.0
	Frames           = 48
	FPS              = 30
	GIFOut           = "spheres.gif"
	GIFDelay         = 4 // 100ths of a second per frame
	MinCanvas        = 2
	MaxCanvas        = 4096
	// hot-loop constants
	shadowTMin  = 0.01 // keeps shadow rays off their own surface
	shadowTMax  = 1.0  // only occluders between the point and the light
	reflectTMin = 0.01
)
