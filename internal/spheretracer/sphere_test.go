package spheretracer

import (
	"math"
	"testing"
)

func TestIntersectRaySphereRoots(t *testing.T) {
	s := &Sphere{Center: Vec(0, 0, 5), Radius: 1}
	t1, t2 := IntersectRaySphere(Vec(0, 0, 0), Vec(0, 0, 1), s)
	if math.Abs(t1-6) > 1e-12 || math.Abs(t2-4) > 1e-12 {
		t.Fatalf("roots = (%v, %v), want (6, 4)", t1, t2)
	}
}

func TestIntersectRaySphereUnnormalizedDirection(t *testing.T) {
	s := &Sphere{Center: Vec(0, 0, 5), Radius: 1}
	t1, t2 := IntersectRaySphere(Vec(0, 0, 0), Vec(0, 0, 2), s)
	if math.Abs(t1-3) > 1e-12 || math.Abs(t2-2) > 1e-12 {
		t.Fatalf("roots = (%v, %v), want (3, 2)", t1, t2)
	}
}

func TestIntersectRaySphereMiss(t *testing.T) {
	s := &Sphere{Center: Vec(0, 0, 5), Radius: 1}
	t1, t2 := IntersectRaySphere(Vec(0, 0, 0), Vec(0, 1, 0), s)
	if !math.IsInf(t1, 1) || !math.IsInf(t2, 1) {
		t.Fatalf("miss roots = (%v, %v), want +Inf", t1, t2)
	}
}

func TestIntersectRaySphereTangent(t *testing.T) {
	s := &Sphere{Center: Vec(0, -1, 3), Radius: 1}
	t1, t2 := IntersectRaySphere(Vec(0, 0, 0), Vec(0, 0, 1), s)
	if t1 != 3 || t2 != 3 {
		t.Fatalf("tangent roots = (%v, %v), want (3, 3)", t1, t2)
	}
}

func TestIntersectRaySphereBehindOrigin(t *testing.T) {
	s := &Sphere{Center: Vec(0, 0, -5), Radius: 1}
	t1, t2 := IntersectRaySphere(Vec(0, 0, 0), Vec(0, 0, 1), s)
	if t1 >= 0 || t2 >= 0 {
		t.Fatalf("roots = (%v, %v), want both negative", t1, t2)
	}
}

func TestZeroRadiusSphereDoesNotPanic(t *testing.T) {
	scene := NewScene(AmbientLight{Intensity: 0.2}, PointLight{Position: Vec(4, 2, 0), Intensity: 0.8}, Background)
	scene.Spheres = []Sphere{{Center: Vec(0, 0, 3), Radius: 0, Color: Red}}
	c := TraceRay(scene, Vec(0, 0, 0), Vec(0, 0, 1), 1, inf, MaxDepth)
	if c != Red.Mul(0.2) && c != Background {
		t.Fatalf("unexpected colour %+v", c)
	}
}

func TestNewSphereValidation(t *testing.T) {
	if _, err := NewSphere(Vec(0, 0, 0), 0, Red, 1, 0); err == nil {
		t.Fatal("expected error for zero radius")
	}
	if _, err := NewSphere(Vec(0, 0, 0), 1, Red, -1, 0); err == nil {
		t.Fatal("expected error for negative shininess")
	}
	if _, err := NewSphere(Vec(0, 0, 0), 1, Red, 1, 1.5); err == nil {
		t.Fatal("expected error for reflectiveness > 1")
	}
	s, err := NewSphere(Vec(1, 2, 3), 2, Green, 10, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if s.Center != Vec(1, 2, 3) || s.Radius != 2 || s.Reflectiveness != 0.5 {
		t.Fatalf("unexpected sphere %+v", s)
	}
}
