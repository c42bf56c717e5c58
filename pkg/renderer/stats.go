package renderer

import (
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	SamplesPerPixel int           // Samples taken for every pixel
	TotalSamples    int           // Total number of camera rays traced
	NumWorkers      int           // Workers used for the render
	Duration        time.Duration // Wall-clock render time
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Color // RGB accumulator for final result
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Color{}
	}
	return ps.ColorAccum.Mul(1.0 / float64(ps.SampleCount))
}
