package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
)

// ErrInvalidConfig is wrapped by every configuration validation error
var ErrInvalidConfig = errors.New("invalid configuration")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate checks the sampling limits
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// RenderConfig controls how a render is scheduled
type RenderConfig struct {
	NumWorkers int   // Number of parallel workers (0 = auto-detect)
	Seed       int64 // Base seed; each row derives its own generator from it
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0,
		Seed:       42,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCameraConfig() CameraConfig
	GetSamplingConfig() SamplingConfig
	GetBackground() integrator.Background
	GetWorld() geometry.Shape
}

// Raytracer renders a scene one row at a time. Everything it holds is
// read-only during a render, so rows can be traced concurrently.
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	sampling   SamplingConfig
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer validates the scene configuration and prepares a raytracer
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	cameraConfig := scene.GetCameraConfig()
	if err := cameraConfig.Validate(); err != nil {
		return nil, err
	}
	sampling := scene.GetSamplingConfig()
	if err := sampling.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discardLogger{}
	}

	return &Raytracer{
		world:      scene.GetWorld(),
		camera:     NewCamera(cameraConfig),
		sampling:   sampling,
		integrator: integrator.NewPathTracingIntegrator(scene.GetBackground()),
		config:     config,
		logger:     logger,
	}, nil
}

// Camera returns the camera used for ray generation
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// SamplingConfig returns the active sampling configuration
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.sampling
}

// SamplePixel estimates the linear radiance of pixel (i, j)
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Color {
	var stats PixelStats
	for s := 0; s < rt.sampling.SamplesPerPixel; s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		stats.AddSample(rt.integrator.RayColor(ray, rt.world, rt.sampling.MaxDepth, sampler))
	}
	return stats.GetColor()
}

// RenderRow traces every pixel of row j, left to right
func (rt *Raytracer) RenderRow(j int, sampler core.Sampler) []RGB {
	width := rt.camera.ImageWidth()
	row := make([]RGB, width)
	for i := 0; i < width; i++ {
		row[i] = ToBytes(rt.SamplePixel(i, j, sampler))
	}
	return row
}

// rowSampler returns the generator dedicated to row j
func (rt *Raytracer) rowSampler(j int) core.Sampler {
	return core.NewSeededSampler(rt.config.Seed + int64(j))
}

// Render traces every row on the worker pool and assembles the image top to bottom
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	width := rt.camera.ImageWidth()
	height := rt.camera.ImageHeight()

	pool := NewWorkerPool(ctx, rt, height, rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d with %d samples per pixel on %d workers\n",
		width, height, rt.sampling.SamplesPerPixel, pool.GetNumWorkers())

	var completed atomic.Int64
	pool.SetRowCallback(func(row int) {
		done := completed.Add(1)
		rt.logger.Printf("Rendered %d/%d rows\n", done, height)
	})

	pool.Start()
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j})
	}
	pool.Stop()

	img := NewImage(width, height)
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			return nil, RenderStats{}, fmt.Errorf("render row %d: %w", result.Row, result.Error)
		}
		img.SetRow(result.Row, result.Pixels)
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		SamplesPerPixel: rt.sampling.SamplesPerPixel,
		TotalSamples:    width * height * rt.sampling.SamplesPerPixel,
		NumWorkers:      pool.GetNumWorkers(),
		Duration:        time.Since(start),
	}
	rt.logger.Printf("Render complete in %v\n", stats.Duration)
	return img, stats, nil
}
