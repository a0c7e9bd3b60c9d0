package spheretracer

import "github.com/golang/geo/r3"

// Vector3 is a position or direction in 3D space.
type Vector3 = r3.Vector

// Vec builds a Vector3.
func Vec(x, y, z Real) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// reflect3 mirrors the incident direction I about the normal N.
// N is expected to be unit length; I points towards the surface.
func reflect3(I, N Vector3) Vector3 {
	return I.Sub(N.Mul(2 * I.Dot(N)))
}
