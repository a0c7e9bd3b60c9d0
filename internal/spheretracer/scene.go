package spheretracer

// Scene is an ordered list of spheres lit by one ambient and one point light.
// Sphere order decides ties between equally distant hits.
type Scene struct {
	Spheres    []Sphere
	Ambient    AmbientLight
	Light      PointLight
	Background Color
}

// NewScene returns an empty scene with the given lights and background.
func NewScene(ambient AmbientLight, light PointLight, background Color) *Scene {
	s := &Scene{Ambient: ambient, Light: light, Background: background}
	DebugLog("Created scene ambient=%.3f, light=%+v, background=%+v", ambient.Intensity, light, background)
	return s
}

func (s *Scene) AddSphere(sp *Sphere) {
	s.Spheres = append(s.Spheres, *sp)
}

// Clone returns a snapshot that shares nothing with s.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Spheres = append([]Sphere(nil), s.Spheres...)
	return &c
}

// DefaultScene builds the reference scene: red and green balls over a huge
// yellow floor, with the red ball drifting away from the eye.
func DefaultScene() *Scene {
	s := NewScene(AmbientLight{Intensity: 0.2}, PointLight{Position: Vec(4, 2, 0), Intensity: 0.8}, Background)
	s.Spheres = []Sphere{
		{Center: Vec(0, -1, 3), Radius: 1, Color: Red, Shininess: 32, Reflectiveness: 0.2, Velocity: Vec(0, 0, 0.5)},
		{Center: Vec(-2, 1, 4), Radius: 1, Color: Green, Shininess: 32, Reflectiveness: 0.5},
		{Center: Vec(0, -5001, 0), Radius: 5000, Color: Yellow, Shininess: 32, Reflectiveness: 0.5},
	}
	return s
}
