package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 represents a 3D vector, point or linear RGB color
type Vec3 = mgl64.Vec3

// Vec2 holds a pair of samples or 2D coordinates
type Vec2 = mgl64.Vec2

// Color is linear radiance, one component per RGB channel
type Color = Vec3

// nearZeroEpsilon is the per-component threshold used by NearZero
const nearZeroEpsilon = 1e-8

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// NewColor creates a new linear color
func NewColor(r, g, b float64) Color {
	return Color{r, g, b}
}

// MultiplyVec returns component-wise multiplication of two vectors
func MultiplyVec(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// UnitVector returns v scaled to length 1, or the zero vector when v has no length
func UnitVector(v Vec3) Vec3 {
	length := v.Len()
	if length == 0 {
		return Vec3{}
	}
	return v.Mul(1.0 / length)
}

// NearZero reports whether every component is smaller than 1e-8 in magnitude
func NearZero(v Vec3) bool {
	return math.Abs(v[0]) < nearZeroEpsilon &&
		math.Abs(v[1]) < nearZeroEpsilon &&
		math.Abs(v[2]) < nearZeroEpsilon
}

// Lerp linearly interpolates from a (t=0) to b (t=1)
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Mul(1.0 - t).Add(b.Mul(t))
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n Vec3) Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Refract bends the unit vector uv through a surface with normal n using Snell's law
func Refract(uv, n Vec3, etaiOverEtat float64) Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Mul(cosTheta)).Mul(etaiOverEtat)
	rOutParallel := n.Mul(-math.Sqrt(math.Abs(1.0 - rOutPerp.LenSqr())))
	return rOutPerp.Add(rOutParallel)
}

// NearlyEqual reports whether every component of a and b differs by at most tolerance
func NearlyEqual(a, b Vec3, tolerance float64) bool {
	return math.Abs(a[0]-b[0]) <= tolerance &&
		math.Abs(a[1]-b[1]) <= tolerance &&
		math.Abs(a[2]-b[2]) <= tolerance
}
