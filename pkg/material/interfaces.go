package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Implementations must be immutable so one instance can be shared by many
// shapes and read from every render worker at once.
type Material interface {
	// Scatter returns the attenuation and outgoing ray, or false when the
	// incoming light is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Incoming    core.Ray   // The incoming ray
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Per-channel attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing against the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Mul(-1)
	}
}
