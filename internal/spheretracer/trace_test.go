package spheretracer

import "testing"

// flatScene lights everything with ambient 1 so local colours are exact.
func flatScene(spheres ...Sphere) *Scene {
	s := NewScene(AmbientLight{Intensity: 1}, PointLight{Position: Vec(0, 10, 0), Intensity: 0}, Background)
	s.Spheres = spheres
	return s
}

func TestTraceRayMissReturnsBackground(t *testing.T) {
	s := flatScene(Sphere{Center: Vec(5, 5, 5), Radius: 1, Color: Red})
	for _, depth := range []int{0, 3} {
		if got := TraceRay(s, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf, depth); got != Background {
			t.Fatalf("depth %d: got %+v, want background", depth, got)
		}
	}
}

func TestTraceRayDepthZeroIsLocal(t *testing.T) {
	s := flatScene(Sphere{Center: Vec(0, 0, 5), Radius: 1, Color: Red, Reflectiveness: 0.5})
	if got := TraceRay(s, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf, 0); got != Red {
		t.Fatalf("got %+v, want %+v", got, Red)
	}
}

func TestTraceRayReflectionMissBlendsBackground(t *testing.T) {
	s := flatScene(Sphere{Center: Vec(0, 0, 5), Radius: 1, Color: Red, Reflectiveness: 0.5})
	want := Red.Mul(0.5).Add(Background.Mul(0.5))
	if got := TraceRay(s, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf, 1); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTraceRayReflectionSeesSecondSphere(t *testing.T) {
	s := flatScene(
		Sphere{Center: Vec(0, 0, 5), Radius: 1, Color: Red, Reflectiveness: 0.5},
		Sphere{Center: Vec(0, 0, -5), Radius: 1, Color: Blue},
	)
	want := Red.Mul(0.5).Add(Blue.Mul(0.5))
	if got := TraceRay(s, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf, 1); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTraceRayNonReflectiveIgnoresDepth(t *testing.T) {
	s := flatScene(
		Sphere{Center: Vec(0, 0, 5), Radius: 1, Color: Green},
		Sphere{Center: Vec(0, 0, -5), Radius: 1, Color: Blue},
	)
	for _, depth := range []int{0, 1, 5} {
		if got := TraceRay(s, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf, depth); got != Green {
			t.Fatalf("depth %d: got %+v, want green", depth, got)
		}
	}
}

func TestTraceRayCountsCategories(t *testing.T) {
	old := Debug
	Debug = true
	defer func() { Debug = old }()
	ResetRayCounts()

	s := flatScene(Sphere{Center: Vec(0, 0, 5), Radius: 1, Color: Red, Reflectiveness: 0.5})
	TraceRay(s, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf, 1)
	counts := RayCounts()
	if counts[RayHit] != 1 || counts[RayReflect] != 1 || counts[RayMiss] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
	TraceRay(s, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf, 0)
	if RayCounts()[RayDepthLimit] != 1 {
		t.Fatalf("depth limit not counted: %v", RayCounts())
	}
	ResetRayCounts()
	if len(RayCounts()) != 0 {
		t.Fatal("reset did not clear counters")
	}
}
