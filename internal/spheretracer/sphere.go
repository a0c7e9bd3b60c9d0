package spheretracer

import (
	"fmt"
	"math"
)

// Sphere is a shaded, optionally mirror-like ball.
// Only Center changes after setup; Velocity is the drift applied per simulated second.
type Sphere struct {
	Center         Vector3
	Radius         Real
	Color          Color
	Shininess      Real // specular exponent
	Reflectiveness Real // share of the final colour taken from the mirrored ray
	Velocity       Vector3
}

func NewSphere(center Vector3, radius Real, color Color, shininess, reflectiveness Real) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("sphere radius must be > 0, got %.6g", radius)
	}
	if shininess < 0 {
		return nil, fmt.Errorf("sphere shininess must be >= 0, got %.6g", shininess)
	}
	if reflectiveness < 0 || reflectiveness > 1 {
		return nil, fmt.Errorf("sphere reflectiveness must be in [0,1], got %.6g", reflectiveness)
	}
	s := &Sphere{
		Center:         center,
		Radius:         radius,
		Color:          color,
		Shininess:      shininess,
		Reflectiveness: reflectiveness,
	}
	DebugLog("Created sphere: %+v", s)
	return s, nil
}

// IntersectRaySphere solves |O + tD - C|^2 = r^2 for t.
// Both roots are +Inf when the ray misses; otherwise they may be equal or negative.
func IntersectRaySphere(O, D Vector3, s *Sphere) (t1, t2 Real) {
	CO := O.Sub(s.Center)
	a := D.Dot(D)
	b := 2 * CO.Dot(D)
	c := CO.Dot(CO) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return inf, inf
	}
	sqrtD := math.Sqrt(disc)
	t1 = (-b + sqrtD) / (2 * a)
	t2 = (-b - sqrtD) / (2 * a)
	return t1, t2
}
