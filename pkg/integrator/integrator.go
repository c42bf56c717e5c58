package integrator

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance carried back along ray, following at
	// most depth scattering events
	RayColor(ray core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Color
}
