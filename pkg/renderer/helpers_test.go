package renderer

import (
	"fmt"
	"sync"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
)

// constantSampler returns the same value for every dimension
type constantSampler struct {
	value float64
}

func (s constantSampler) Get1D() float64 { return s.value }
func (s constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.value, s.value)
}
func (s constantSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.value, s.value, s.value)
}

// testScene is a minimal Scene implementation
type testScene struct {
	camera   CameraConfig
	sampling SamplingConfig
	world    geometry.Shape
}

func (s *testScene) GetCameraConfig() CameraConfig       { return s.camera }
func (s *testScene) GetSamplingConfig() SamplingConfig   { return s.sampling }
func (s *testScene) GetBackground() integrator.Background { return integrator.DefaultBackground() }
func (s *testScene) GetWorld() geometry.Shape             { return s.world }

// newSphereScene places one diffuse sphere in front of the default camera
func newSphereScene(width, samples, depth int) *testScene {
	camera := DefaultCameraConfig()
	camera.Width = width
	return &testScene{
		camera:   camera,
		sampling: SamplingConfig{SamplesPerPixel: samples, MaxDepth: depth},
		world: geometry.NewShapeList(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
		),
	}
}

// recordingLogger keeps every formatted message
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}
