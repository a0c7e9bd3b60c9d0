package spheretracer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lukaszgryglicki/spheretracer/internal/replay"
)

// FrameEvent is a published frame. Subscribers must treat it as read-only.
type FrameEvent struct {
	Frame  *Frame
	PNG    []byte
	Sample replay.Sample
}

// StudioInfo summarises the live state of a studio.
type StudioInfo struct {
	Tick    uint64
	Frames  uint64
	Time    Real
	CanvasW int
	CanvasH int
	Spheres int
	Depth   int
}

// Studio is the render context owned by a live host: the mutable scene, its
// simulation and camera. Ticks take the write lock; renders work on a cloned
// snapshot so they never see a half-applied tick.
type Studio struct {
	mu     sync.RWMutex
	sim    *Simulation
	cam    Camera
	frames uint64
	hud    bool

	subMu  sync.Mutex
	subs   map[int]chan FrameEvent
	nextID int
	latest *FrameEvent

	now func() time.Time
}

func NewStudio(scene *Scene, cam Camera, canvasW, canvasH int) *Studio {
	return &Studio{
		sim:  NewSimulation(scene, TickDT, canvasW, canvasH),
		cam:  cam,
		hud:  HUD,
		subs: make(map[int]chan FrameEvent),
		now:  time.Now,
	}
}

// Snapshot returns a private copy of the scene and the current canvas size.
func (s *Studio) Snapshot() (scene *Scene, cam Camera, w, h int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sim.Scene.Clone(), s.cam, s.sim.CanvasW, s.sim.CanvasH
}

// Step advances the simulation by frameTime seconds, then renders and
// publishes one frame of the resulting snapshot.
func (s *Studio) Step(frameTime Real) (*Frame, error) {
	s.mu.Lock()
	s.sim.Advance(frameTime)
	scene := s.sim.Scene.Clone()
	w, h := s.sim.CanvasW, s.sim.CanvasH
	tick := s.sim.Tick
	index := s.frames
	s.frames++
	sample := SampleOf(s.sim, index)
	s.mu.Unlock()

	f := RenderFrame(w, h, scene, s.cam)
	f.Index, f.Tick = index, tick
	if s.hud {
		f.Annotate(fmt.Sprintf("frame %d tick %d", index, tick))
	}
	data, err := f.PNGBytes()
	if err != nil {
		return nil, fmt.Errorf("encode frame %d: %w", index, err)
	}
	s.publish(FrameEvent{Frame: f, PNG: data, Sample: sample})
	return f, nil
}

// Run steps at fps frames per second of wall time until ctx is done.
func (s *Studio) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = FPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	last := s.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := s.now()
			elapsed := now.Sub(last).Seconds()
			last = now
			if _, err := s.Step(elapsed); err != nil {
				return err
			}
		}
	}
}

// Subscribe registers for published frames. Frames are dropped for a
// subscriber whose buffer is full. The returned func unsubscribes.
func (s *Studio) Subscribe(buf int) (<-chan FrameEvent, func()) {
	if buf <= 0 {
		buf = 1
	}
	ch := make(chan FrameEvent, buf)
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Studio) publish(ev FrameEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.latest = &ev
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Latest returns the most recently published frame.
func (s *Studio) Latest() (FrameEvent, bool) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.latest == nil {
		return FrameEvent{}, false
	}
	return *s.latest, true
}

// RenderPNG renders the current snapshot at an arbitrary canvas size without
// advancing the simulation.
func (s *Studio) RenderPNG(w, h int) ([]byte, error) {
	if w < MinCanvas || h < MinCanvas || w > MaxCanvas || h > MaxCanvas {
		return nil, fmt.Errorf("canvas %dx%d outside [%d, %d]", w, h, MinCanvas, MaxCanvas)
	}
	scene, cam, _, _ := s.Snapshot()
	return RenderFrame(w, h, scene, cam).PNGBytes()
}

// Zoom resizes the canvas used by subsequent steps.
func (s *Studio) Zoom(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Zoom(delta)
}

func (s *Studio) Info() StudioInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StudioInfo{
		Tick:    s.sim.Tick,
		Frames:  s.frames,
		Time:    s.sim.T,
		CanvasW: s.sim.CanvasW,
		CanvasH: s.sim.CanvasH,
		Spheres: len(s.sim.Scene.Spheres),
		Depth:   s.cam.Depth,
	}
}
