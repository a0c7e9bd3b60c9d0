package spheretracer

// TraceRay follows O + tD through the scene and returns its colour,
// recursing into mirror reflections while depth > 0.
func TraceRay(scene *Scene, O, D Vector3, tMin, tMax Real, depth int) Color {
	hit, ok := ClosestIntersection(scene.Spheres, O, D, tMin, tMax)
	if !ok {
		recordRay(RayMiss)
		return scene.Background
	}
	recordRay(RayHit)

	s := hit.Sphere
	P := O.Add(D.Mul(hit.T))
	N := P.Sub(s.Center).Normalize()
	if N.Norm2() == 0 {
		DebugLogOnce("degenerate normal at %v on sphere %+v", P, *s)
	}
	E := D.Mul(-1).Normalize()

	local := s.Color.Mul(Lighting(scene, P, N, E, s.Shininess))

	r := s.Reflectiveness
	if depth <= 0 || r <= 0 {
		if depth <= 0 && r > 0 {
			recordRay(RayDepthLimit)
		}
		return local
	}

	recordRay(RayReflect)
	reflected := TraceRay(scene, P, reflect3(D, N), reflectTMin, inf, depth-1)
	return local.Mul(1 - r).Add(reflected.Mul(r))
}
