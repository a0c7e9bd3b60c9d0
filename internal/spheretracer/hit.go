package spheretracer

// Hit is the nearest accepted intersection along a ray.
type Hit struct {
	T      Real
	Sphere *Sphere
}

// ClosestIntersection scans spheres in order and returns the smallest root
// strictly inside (tMin, tMax). The first sphere wins ties. ok is false when
// the ray escapes (or, for shadow rays, when nothing occludes the light).
func ClosestIntersection(spheres []Sphere, O, D Vector3, tMin, tMax Real) (hit Hit, ok bool) {
	best := inf
	for i := range spheres {
		s := &spheres[i]
		t1, t2 := IntersectRaySphere(O, D, s)
		if t1 > tMin && t1 < tMax && t1 < best {
			best, hit, ok = t1, Hit{T: t1, Sphere: s}, true
		}
		if t2 > tMin && t2 < tMax && t2 < best {
			best, hit, ok = t2, Hit{T: t2, Sphere: s}, true
		}
	}
	return hit, ok
}
