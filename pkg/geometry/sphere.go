package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. Negative radii are clamped to zero.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   math.Max(0, radius),
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	// A zero-radius sphere has no surface to hit
	if s.Radius <= 0 {
		return nil, false
	}

	// Vector from ray origin to sphere center
	oc := s.Center.Sub(ray.Origin)

	// Half-coefficient form of the quadratic: a·t² - 2h·t + c = 0
	a := ray.Direction.LenSqr()
	h := ray.Direction.Dot(oc)
	c := oc.LenSqr() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first; the farther one is the only
	// valid hit when the ray starts inside the sphere
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Calculate outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Sub(s.Center).Mul(1.0 / s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
