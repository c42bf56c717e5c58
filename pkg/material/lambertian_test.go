package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestLambertian_AlwaysScattersAboveSurface(t *testing.T) {
	albedo := core.NewColor(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	for i := 0; i < 500; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}
		// normal + unit vector never points below the tangent plane
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scattered direction %v points into the surface", scatter.Scattered.Direction)
		}
	}
}

// oppositeSampler always produces the unit vector (0,0,-1)
type oppositeSampler struct{}

func (oppositeSampler) Get1D() float64 { return 0.5 }
func (oppositeSampler) Get2D() core.Vec2 {
	return core.NewVec2(0.5, 0.5)
}
func (oppositeSampler) Get3D() core.Vec3 {
	// Maps to the point (0, 0, -1) in [-1,1]³
	return core.NewVec3(0.5, 0.5, 0)
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewColor(0.8, 0.8, 0.8))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, didScatter := lambertian.Scatter(ray, hit, oppositeSampler{})
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != hit.Normal {
		t.Errorf("Expected fallback to normal %v, got %v", hit.Normal, scatter.Scattered.Direction)
	}
}
