package spheretracer

import (
	"math"
	"testing"
)

func TestClosestIntersectionNearest(t *testing.T) {
	spheres := []Sphere{
		{Center: Vec(0, 0, 10), Radius: 1, Color: Blue},
		{Center: Vec(0, 0, 5), Radius: 1, Color: Red},
	}
	hit, ok := ClosestIntersection(spheres, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Sphere != &spheres[1] || math.Abs(hit.T-4) > 1e-12 {
		t.Fatalf("hit = %+v, want red sphere at t=4", hit)
	}
}

func TestClosestIntersectionTieFirstWins(t *testing.T) {
	spheres := []Sphere{
		{Center: Vec(0, 0, 5), Radius: 1, Color: Red},
		{Center: Vec(0, 0, 5), Radius: 1, Color: Green},
	}
	hit, ok := ClosestIntersection(spheres, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf)
	if !ok || hit.Sphere != &spheres[0] {
		t.Fatalf("tie should go to the first sphere, got %+v", hit)
	}
}

func TestClosestIntersectionOpenInterval(t *testing.T) {
	spheres := []Sphere{{Center: Vec(0, 0, 5), Radius: 1}}
	// near root 4 excluded by tMin, far root 6 accepted
	hit, ok := ClosestIntersection(spheres, Vec(0, 0, 0), Vec(0, 0, 1), 4, inf)
	if !ok || math.Abs(hit.T-6) > 1e-12 {
		t.Fatalf("hit = %+v ok=%v, want t=6", hit, ok)
	}
	// both roots outside (tMin, tMax)
	if _, ok := ClosestIntersection(spheres, Vec(0, 0, 0), Vec(0, 0, 1), 1, 4); ok {
		t.Fatal("t == tMax must be rejected")
	}
}

func TestClosestIntersectionEmptyScene(t *testing.T) {
	if _, ok := ClosestIntersection(nil, Vec(0, 0, 0), Vec(0, 0, 1), 0, inf); ok {
		t.Fatal("empty scene cannot be hit")
	}
}
