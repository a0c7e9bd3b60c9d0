package spheretracer

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/lukaszgryglicki/spheretracer/internal/replay"
)

// Run renders cfg.Frames frames of the configured scene, advancing the
// simulation by one display interval before each, and saves them.
func Run(cfgPath string) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	frames, err := RenderAnimation(cfg)
	if err != nil {
		return err
	}

	if PNG {
		prefix := strings.TrimSuffix(cfg.GIFOut, filepath.Ext(cfg.GIFOut))
		if err := SavePNGSequence(frames, prefix, cfg.WindowWidth, cfg.WindowHeight); err != nil {
			return err
		}
		DebugLog("Saved PNG sequence with prefix: %s", prefix)
		return nil
	}
	if err := SaveAnimatedGIF(frames, cfg.GIFOut, cfg.GIFDelay); err != nil {
		return err
	}
	DebugLog("Saved animated GIF: %s", cfg.GIFOut)
	return nil
}

// RenderAnimation simulates and renders every frame described by cfg,
// recording them when Record is set.
func RenderAnimation(cfg *Config) ([]*Frame, error) {
	scene, cam, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	sim := NewSimulation(scene, TickDT, cfg.CanvasWidth, cfg.CanvasHeight)

	var rec *replay.Writer
	if Record != "" {
		w, _, err := replay.NewWriter(Record, strings.TrimSuffix(filepath.Base(cfg.GIFOut), filepath.Ext(cfg.GIFOut)), nil)
		if err != nil {
			return nil, fmt.Errorf("open replay: %w", err)
		}
		rec = w
		defer rec.Close()
		DebugLog("Recording replay into %s", rec.Directory())
	}

	frameTime := 1.0 / Real(cfg.FPS)
	frames := make([]*Frame, 0, cfg.Frames)
	start := time.Now()
	for i := 0; i < cfg.Frames; i++ {
		sim.Advance(frameTime)
		f := RenderFrame(sim.CanvasW, sim.CanvasH, sim.Scene, cam)
		f.Index, f.Tick = uint64(i), sim.Tick
		if HUD {
			f.Annotate(fmt.Sprintf("frame %d tick %d", f.Index, f.Tick))
		}
		frames = append(frames, f)
		if rec != nil {
			if err := recordFrame(rec, sim, f); err != nil {
				return nil, err
			}
		}
	}
	DebugLog("Frames: %d, time: %s", len(frames), time.Since(start))
	if rec != nil {
		if err := rec.Close(); err != nil {
			return nil, fmt.Errorf("close replay: %w", err)
		}
	}
	return frames, nil
}

func recordFrame(rec *replay.Writer, sim *Simulation, f *Frame) error {
	if err := rec.WriteFrame(f.Tick, f.Img); err != nil {
		return err
	}
	return rec.WriteSample(SampleOf(sim, f.Index))
}

// SampleOf captures the sphere centres of a simulation for the replay log.
func SampleOf(sim *Simulation, frame uint64) replay.Sample {
	centers := make([][3]float64, len(sim.Scene.Spheres))
	for i, s := range sim.Scene.Spheres {
		centers[i] = [3]float64{s.Center.X, s.Center.Y, s.Center.Z}
	}
	return replay.Sample{Frame: frame, Tick: sim.Tick, Time: sim.T, Centers: centers}
}

// ExportReplay converts a recorded bundle into an animated GIF.
func ExportReplay(bundle, out string, delay int) error {
	r, err := replay.Open(bundle)
	if err != nil {
		return err
	}
	defer r.Close()
	var imgs []image.Image
	for {
		_, img, err := r.NextFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		imgs = append(imgs, img)
	}
	if delay <= 0 {
		delay = GIFDelay
	}
	return SaveAnimatedGIFImages(imgs, out, delay)
}
