package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// MockShape implements Shape for testing
type MockShape struct {
	hitFn func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	return m.hitFn(ray, rayT)
}

func TestShapeList_NearestHitAmongOverlaps(t *testing.T) {
	near := material.NewLambertian(core.NewColor(1, 0, 0))
	far := material.NewLambertian(core.NewColor(0, 0, 1))

	// Two overlapping spheres along -z; the far one is listed first
	list := NewShapeList(
		NewSphere(core.NewVec3(0, 0, -1.6), 0.5, far),
		NewSphere(core.NewVec3(0, 0, -1), 0.5, near),
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := list.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected nearest t=0.5, got %f", hit.T)
	}
	if hit.Material != near {
		t.Error("Expected the nearer sphere's material")
	}
}

func TestShapeList_NarrowsIntervalForLaterShapes(t *testing.T) {
	var seen []core.Interval

	record := func(t float64) MockShape {
		return MockShape{hitFn: func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
			seen = append(seen, rayT)
			if !rayT.Surrounds(t) {
				return nil, false
			}
			return &material.HitRecord{T: t}, true
		}}
	}

	list := NewShapeList(record(5), record(2), record(3))
	hit, isHit := list.Hit(core.Ray{}, core.NewInterval(0.001, 100))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.T != 2 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}

	expectedMax := []float64{100, 5, 2}
	for i, interval := range seen {
		if interval.Min != 0.001 {
			t.Errorf("Probe %d: expected min 0.001, got %f", i, interval.Min)
		}
		if interval.Max != expectedMax[i] {
			t.Errorf("Probe %d: expected max %f, got %f", i, expectedMax[i], interval.Max)
		}
	}
}

func TestShapeList_NoHit(t *testing.T) {
	list := NewShapeList(NewSphere(core.NewVec3(0, 5, -1), 0.5, nil))
	list.Add(NewSphere(core.NewVec3(5, 0, -1), 0.5, nil))

	if list.Len() != 2 {
		t.Fatalf("Expected 2 shapes, got %d", list.Len())
	}

	hit, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewInterval(0.001, math.Inf(1)))
	if isHit || hit != nil {
		t.Errorf("Expected no hit, got %v", hit)
	}
}

func TestShapeList_Empty(t *testing.T) {
	list := NewShapeList()
	if _, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), core.UniverseInterval()); isHit {
		t.Error("Empty list should never report a hit")
	}
}
