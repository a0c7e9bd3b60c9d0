package spheretracer

// Simulation advances the scene in fixed time steps and owns the canvas size.
type Simulation struct {
	Scene       *Scene
	DT          Real
	T           Real
	Tick        uint64
	Accumulator Real
	CanvasW     int
	CanvasH     int
}

func NewSimulation(scene *Scene, dt Real, canvasW, canvasH int) *Simulation {
	if dt <= 0 {
		dt = TickDT
	}
	return &Simulation{Scene: scene, DT: dt, CanvasW: canvasW, CanvasH: canvasH}
}

// Update moves every sphere by its velocity over dt.
func (s *Simulation) Update(dt Real) {
	for i := range s.Scene.Spheres {
		sp := &s.Scene.Spheres[i]
		if sp.Velocity.Norm2() == 0 {
			continue
		}
		sp.Center = sp.Center.Add(sp.Velocity.Mul(dt))
	}
}

// Advance banks frameTime and runs as many whole steps as fit, returning the
// number of steps taken. The remainder carries over to the next call.
func (s *Simulation) Advance(frameTime Real) int {
	if frameTime > 0 {
		s.Accumulator += frameTime
	}
	n := 0
	for s.Accumulator > s.DT {
		s.Update(s.DT)
		s.T += s.DT
		s.Tick++
		s.Accumulator -= s.DT
		n++
	}
	return n
}

// Zoom grows (delta > 0) or shrinks (delta < 0) the canvas by 2*delta pixels
// per side. Leaving [MinCanvas, MaxCanvas] is refused.
func (s *Simulation) Zoom(delta int) bool {
	if delta == 0 || delta > MaxCanvas || delta < -MaxCanvas {
		return false
	}
	w, h := s.CanvasW+2*delta, s.CanvasH+2*delta
	if w < MinCanvas || h < MinCanvas || w > MaxCanvas || h > MaxCanvas {
		return false
	}
	s.CanvasW, s.CanvasH = w, h
	DebugLog("Canvas resized to %dx%d", w, h)
	return true
}
