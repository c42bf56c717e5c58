package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewDefaultScene creates the three-sphere scene: a diffuse center sphere
// between a hollow glass sphere and a rough gold one, on a huge ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := NewScene()
	s.CameraConfig = renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
	if len(cameraOverrides) > 0 {
		s.ApplyCameraOverrides(cameraOverrides[0])
	}

	// Create materials
	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.50)
	materialBubble := material.NewDielectric(1.00 / 1.50) // air pocket inside the glass
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, materialBubble),
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight),
	)

	return s
}

// NewSingleSphereScene creates one diffuse sphere in front of the camera
func NewSingleSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := NewScene()
	if len(cameraOverrides) > 0 {
		s.ApplyCameraOverrides(cameraOverrides[0])
	}

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))))
	return s
}
