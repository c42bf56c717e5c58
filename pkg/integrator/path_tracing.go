package integrator

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// MinHitDistance keeps scattered rays from re-hitting the surface they leave
const MinHitDistance = 0.001

// Background is the vertical sky gradient seen by rays that escape the scene
type Background struct {
	TopColor    core.Color // Color straight up
	BottomColor core.Color // Color straight down (and at the horizon blend start)
}

// DefaultBackground returns the white to sky-blue gradient
func DefaultBackground() Background {
	return Background{
		TopColor:    core.NewColor(0.5, 0.7, 1.0),
		BottomColor: core.NewColor(1.0, 1.0, 1.0),
	}
}

// Color returns the gradient color for a ray direction
func (b Background) Color(direction core.Vec3) core.Color {
	unitDirection := core.UnitVector(direction)

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	a := 0.5 * (unitDirection.Y() + 1.0)

	return core.Lerp(b.BottomColor, b.TopColor, a)
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{background: background}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(MinHitDistance, math.Inf(1)))
	if !isHit {
		return pt.background.Color(ray.Direction)
	}

	// Surfaces without a material absorb everything
	if hit.Material == nil {
		return core.Color{}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Color{}
	}

	return core.MultiplyVec(scatter.Attenuation,
		pt.RayColor(scatter.Scattered, world, depth-1, sampler))
}
