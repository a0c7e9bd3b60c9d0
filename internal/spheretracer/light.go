package spheretracer

import "math"

// AmbientLight reaches every point regardless of position or occlusion.
type AmbientLight struct {
	Intensity Real
}

// PointLight shines from a single position.
type PointLight struct {
	Position  Vector3
	Intensity Real
}

// Lighting returns the light intensity reaching point P with surface normal N,
// as seen from direction E. Only the point light casts shadows; a shadowed
// point keeps the ambient term alone. The result is not clamped.
func Lighting(scene *Scene, P, N, E Vector3, shininess Real) Real {
	N = N.Normalize()
	E = E.Normalize()
	intensity := scene.Ambient.Intensity

	toLight := scene.Light.Position.Sub(P)
	if _, shadowed := ClosestIntersection(scene.Spheres, P, toLight, shadowTMin, shadowTMax); shadowed {
		recordRay(RayShadowed)
		return intensity
	}

	L := toLight.Normalize()
	if nl := L.Dot(N); nl > 0 {
		intensity += scene.Light.Intensity * nl
	}

	// -L: the reflection formula wants the incident ray heading into the surface.
	R := reflect3(L.Mul(-1), N).Normalize()
	if er := E.Dot(R); er > 0 {
		intensity += scene.Light.Intensity * math.Pow(er, shininess)
	}
	return intensity
}
