package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center      core.Vec3 // Eye position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction, (0,1,0) when zero
	Width       int       // Image width in pixels
	AspectRatio float64   // Width / height
	VFov        float64   // Vertical field of view in degrees
}

// DefaultCameraConfig returns an eye at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	return result
}

// withDefaults fills in the orientation the camera falls back to
func (c CameraConfig) withDefaults() CameraConfig {
	if c.Up == (core.Vec3{}) {
		c.Up = core.NewVec3(0, 1, 0)
	}
	if c.LookAt == c.Center {
		c.LookAt = c.Center.Add(core.NewVec3(0, 0, -1))
	}
	return c
}

// Validate reports configuration that would leave the viewport undefined
func (c CameraConfig) Validate() error {
	if c.Width < 1 {
		return fmt.Errorf("%w: camera width must be at least 1, got %d", ErrInvalidConfig, c.Width)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return fmt.Errorf("%w: aspect ratio must be positive, got %f", ErrInvalidConfig, c.AspectRatio)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vertical field of view must be in (0, 180) degrees, got %f", ErrInvalidConfig, c.VFov)
	}
	d := c.withDefaults()
	if core.NearZero(d.Up.Cross(d.Center.Sub(d.LookAt))) {
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidConfig, d.Up)
	}
	return nil
}

// Camera generates rays for rendering. It is read-only once initialized and
// may be shared by every render worker.
type Camera struct {
	config CameraConfig

	imageHeight    int
	focalLength    float64
	viewportHeight float64
	viewportWidth  float64
	center         core.Vec3 // Eye position
	u, v, w        core.Vec3 // Orthonormal camera basis
	pixelDeltaU    core.Vec3 // Offset to the pixel on the right
	pixelDeltaV    core.Vec3 // Offset to the pixel below
	pixel00Loc     core.Vec3 // Center of the top-left pixel
}

// NewCamera creates a camera and computes its viewport
func NewCamera(config CameraConfig) *Camera {
	camera := &Camera{config: config}
	camera.Initialize()
	return camera
}

// Initialize derives the viewport geometry from the configuration.
// Calling it again with the same configuration gives the same camera.
func (c *Camera) Initialize() {
	config := c.config.withDefaults()

	c.imageHeight = max(1, int(float64(config.Width)/config.AspectRatio))

	c.center = config.Center
	c.focalLength = config.Center.Sub(config.LookAt).Len()

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	c.viewportHeight = 2 * h * c.focalLength
	c.viewportWidth = c.viewportHeight * (float64(config.Width) / float64(c.imageHeight))

	// Camera basis: w points away from the scene, u to the right, v up
	c.w = core.UnitVector(config.Center.Sub(config.LookAt))
	c.u = core.UnitVector(config.Up.Cross(c.w))
	c.v = c.w.Cross(c.u)

	// Viewport edges; v runs down the image so row 0 is the top
	viewportU := c.u.Mul(c.viewportWidth)
	viewportV := c.v.Mul(-c.viewportHeight)

	c.pixelDeltaU = viewportU.Mul(1.0 / float64(config.Width))
	c.pixelDeltaV = viewportV.Mul(1.0 / float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Sub(c.w.Mul(c.focalLength)).
		Sub(viewportU.Mul(0.5)).
		Sub(viewportV.Mul(0.5))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Mul(0.5))
}

// GetRay returns a ray from the eye through a random point inside pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offsetX := sampler.Get1D() - 0.5
	offsetY := sampler.Get1D() - 0.5

	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Mul(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Mul(float64(j) + offsetY))

	return core.NewRay(c.center, pixelSample.Sub(c.center))
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.Width
}

// ImageHeight returns the image height derived from width and aspect ratio
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// FocalLength returns the distance from the eye to the viewport
func (c *Camera) FocalLength() float64 {
	return c.focalLength
}

// ViewportSize returns the viewport width and height in world units
func (c *Camera) ViewportSize() (width, height float64) {
	return c.viewportWidth, c.viewportHeight
}
