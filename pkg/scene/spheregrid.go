package scene

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, then cube
	lms := [3]float64{
		l + 0.3963377774*a + 0.2158037573*b,
		l - 0.1055613458*a - 0.0638541728*b,
		l - 0.0894841775*a - 1.2914855480*b,
	}
	for k := range lms {
		lms[k] = lms[k] * lms[k] * lms[k]
	}

	rgb := core.NewColor(
		+4.0767416621*lms[0]-3.3077115913*lms[1]+0.2309699292*lms[2],
		-1.2684380046*lms[0]+2.6097574011*lms[1]-0.3413193965*lms[2],
		-0.0041960863*lms[0]-0.7034186147*lms[1]+1.7076147010*lms[2],
	)

	unit := core.NewInterval(0, 1)
	return core.NewColor(unit.Clamp(rgb.X()), unit.Clamp(rgb.Y()), unit.Clamp(rgb.Z()))
}

// gridMaterial picks the material for a grid cell: mostly diffuse, with
// diagonals of metal and the occasional glass marble
func gridMaterial(i, j int, color core.Color) material.Material {
	switch {
	case (i+j)%7 == 0:
		return material.NewDielectric(1.5)
	case (i+j)%3 == 0:
		fuzz := 0.05 + 0.1*float64((i*j)%3)/2.0
		return material.NewMetal(color, fuzz)
	default:
		return material.NewLambertian(color)
	}
}

// NewSphereGridScene creates a gridSize x gridSize field of small spheres
// sitting on a large ground sphere
func NewSphereGridScene(gridSize int, cameraOverrides ...renderer.CameraConfig) *Scene {
	if gridSize < 1 {
		gridSize = 1
	}

	s := NewScene()
	s.CameraConfig = renderer.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18), // Back and above the grid
		LookAt:      core.NewVec3(4.5, 0.8, 4.5),
		Up:          core.NewVec3(0, 1, 0),
		Width:       800,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        40,
	}
	if len(cameraOverrides) > 0 {
		s.ApplyCameraOverrides(cameraOverrides[0])
	}

	// Ground sphere whose top touches y=0
	const groundRadius = 1000.0
	s.Add(geometry.NewSphere(
		core.NewVec3(4.5, -groundRadius, 4.5),
		groundRadius,
		material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)),
	))

	// Fit the grid into a 9x9 area regardless of its resolution
	targetArea := 9.0
	spacing := targetArea
	if gridSize > 1 {
		spacing = targetArea / float64(gridSize-1)
	}
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25
	denom := float64(max(1, gridSize-1))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue varies along x, chroma along z
			hue := (float64(i) / denom) * 360.0
			chroma := minChroma + (float64(j)/denom)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			color := oklchToRGB(lightness, chroma, hue)
			s.Add(geometry.NewSphere(position, sphereRadius, gridMaterial(i, j, color)))
		}
	}

	return s
}
