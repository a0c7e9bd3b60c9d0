package spheretracer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ColorCfg accepts a palette name ("red") or an [r,g,b] / [r,g,b,a] array of bytes.
type ColorCfg struct {
	Color
}

func (c *ColorCfg) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		col, ok := Palette[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("unknown colour name %q", name)
		}
		c.Color = col
		return nil
	}
	var ch []int
	if err := json.Unmarshal(data, &ch); err != nil {
		return fmt.Errorf("colour must be a name or an [r,g,b(,a)] array: %w", err)
	}
	if len(ch) != 3 && len(ch) != 4 {
		return fmt.Errorf("colour array needs 3 or 4 channels, got %d", len(ch))
	}
	for i, v := range ch {
		if v < 0 || v > 255 {
			return fmt.Errorf("colour channel %d out of [0,255]: %d", i, v)
		}
	}
	c.Color = Color{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2])}
	if len(ch) == 4 {
		c.A = uint8(ch[3])
	}
	return nil
}

func (c ColorCfg) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int{int(c.R), int(c.G), int(c.B), int(c.A)})
}

type SphereCfg struct {
	Center         Vector3  `json:"center"`
	Radius         Real     `json:"radius"`
	Color          ColorCfg `json:"color"`
	Shininess      Real     `json:"shininess"`
	Reflectiveness Real     `json:"reflectiveness"`
	Velocity       Vector3  `json:"velocity,omitempty"`
}

type LightCfg struct {
	Position  Vector3 `json:"position"`
	Intensity Real    `json:"intensity"`
}

type CameraCfg struct {
	Origin           Vector3 `json:"origin"`
	ViewportWidth    Real    `json:"viewportWidth,omitempty"`
	ViewportHeight   Real    `json:"viewportHeight,omitempty"`
	ViewportDistance Real    `json:"viewportDistance,omitempty"`
	TMin             Real    `json:"tMin,omitempty"`
	Depth            *int    `json:"depth,omitempty"` // absent => MaxDepth, 0 disables reflections
}

type Config struct {
	CanvasWidth  int         `json:"canvasWidth"`
	CanvasHeight int         `json:"canvasHeight"`
	WindowWidth  int         `json:"windowWidth,omitempty"`
	WindowHeight int         `json:"windowHeight,omitempty"`
	Camera       CameraCfg   `json:"camera"`
	Background   *ColorCfg   `json:"background,omitempty"`
	Ambient      Real        `json:"ambient"`
	Light        LightCfg    `json:"light"`
	Spheres      []SphereCfg `json:"spheres"`
	Frames       int         `json:"frames,omitempty"`
	FPS          int         `json:"fps,omitempty"`
	GIFOut       string      `json:"gifOut,omitempty"`
	GIFDelay     int         `json:"gifDelay,omitempty"`
}

// Build validates and constructs the runtime sphere.
func (sc SphereCfg) Build() (*Sphere, error) {
	s, err := NewSphere(sc.Center, sc.Radius, sc.Color.Color, sc.Shininess, sc.Reflectiveness)
	if err != nil {
		return nil, err
	}
	s.Velocity = sc.Velocity
	return s, nil
}

// Build turns the camera section into a Camera, filling reference defaults.
func (cc CameraCfg) Build() (Camera, error) {
	cam := DefaultCamera()
	cam.Origin = cc.Origin
	if cc.ViewportWidth > 0 {
		cam.ViewportWidth = cc.ViewportWidth
	}
	if cc.ViewportHeight > 0 {
		cam.ViewportHeight = cc.ViewportHeight
	}
	if cc.ViewportDistance > 0 {
		cam.ViewportDistance = cc.ViewportDistance
	}
	if cc.TMin > 0 {
		cam.TMin = cc.TMin
	}
	if cc.Depth != nil {
		if *cc.Depth < 0 {
			return Camera{}, fmt.Errorf("camera depth must be >= 0, got %d", *cc.Depth)
		}
		cam.Depth = *cc.Depth
	}
	return cam, nil
}

// Build constructs the scene and camera described by the config.
func (cfg *Config) Build() (*Scene, Camera, error) {
	cam, err := cfg.Camera.Build()
	if err != nil {
		return nil, Camera{}, err
	}
	bg := Background
	if cfg.Background != nil {
		bg = cfg.Background.Color
	}
	scene := NewScene(AmbientLight{Intensity: cfg.Ambient}, PointLight{Position: cfg.Light.Position, Intensity: cfg.Light.Intensity}, bg)
	for i, sc := range cfg.Spheres {
		s, err := sc.Build()
		if err != nil {
			return nil, Camera{}, fmt.Errorf("sphere #%d: %w", i, err)
		}
		scene.AddSphere(s)
	}
	return scene, cam, nil
}

// ParseConfig decodes a JSON config and applies defaults.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	// Defaults / validation
	if cfg.CanvasWidth <= 0 {
		cfg.CanvasWidth = CanvasWidth
	}
	if cfg.CanvasHeight <= 0 {
		cfg.CanvasHeight = CanvasHeight
	}
	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = WindowWidth
	}
	if cfg.WindowHeight <= 0 {
		cfg.WindowHeight = WindowHeight
	}
	if cfg.Frames <= 0 {
		cfg.Frames = Frames
	}
	if cfg.FPS <= 0 {
		cfg.FPS = FPS
	}
	if cfg.GIFOut == "" {
		cfg.GIFOut = GIFOut
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	if cfg.CanvasWidth < MinCanvas || cfg.CanvasHeight < MinCanvas || cfg.CanvasWidth > MaxCanvas || cfg.CanvasHeight > MaxCanvas {
		return nil, fmt.Errorf("canvas must be within %dx%d..%dx%d", MinCanvas, MinCanvas, MaxCanvas, MaxCanvas)
	}
	if len(cfg.Spheres) == 0 {
		return nil, fmt.Errorf("config has no spheres")
	}
	if cfg.Ambient < 0 || cfg.Light.Intensity < 0 {
		return nil, fmt.Errorf("light intensities must be >= 0, got ambient=%.6g point=%.6g", cfg.Ambient, cfg.Light.Intensity)
	}
	return &cfg, nil
}

// LoadConfig reads and parses a JSON config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	DebugLog("Loaded config from %s: canvas=(%d, %d), spheres=%d, frames=%d, depth=%v", path, cfg.CanvasWidth, cfg.CanvasHeight, len(cfg.Spheres), cfg.Frames, cfg.Camera.Depth)
	return cfg, nil
}
