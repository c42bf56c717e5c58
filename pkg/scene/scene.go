package scene

import (
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering.
// It is not modified once rendering starts.
type Scene struct {
	World          *geometry.ShapeList // Objects in the scene
	Background     integrator.Background
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// NewScene creates an empty scene with the default camera, sampling and sky
func NewScene() *Scene {
	return &Scene{
		World:          geometry.NewShapeList(),
		Background:     integrator.DefaultBackground(),
		CameraConfig:   renderer.DefaultCameraConfig(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	for _, shape := range shapes {
		s.World.Add(shape)
	}
}

// ApplyCameraOverrides merges the non-zero fields of override into the camera
func (s *Scene) ApplyCameraOverrides(override renderer.CameraConfig) {
	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, override)
}

// GetCameraConfig returns the camera configuration
func (s *Scene) GetCameraConfig() renderer.CameraConfig {
	return s.CameraConfig
}

// GetSamplingConfig returns the sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}

// GetBackground returns the sky gradient seen by escaping rays
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

// GetWorld returns the aggregate of every shape in the scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
