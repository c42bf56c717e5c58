package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// fixedSampler returns the same value for every draw and counts the draws
type fixedSampler struct {
	value float64
	calls int
}

func (f *fixedSampler) Get1D() float64 {
	f.calls++
	return f.value
}

func (f *fixedSampler) Get2D() core.Vec2 {
	f.calls += 2
	return core.NewVec2(f.value, f.value)
}

func (f *fixedSampler) Get3D() core.Vec3 {
	f.calls += 3
	return core.NewVec3(f.value, f.value, f.value)
}
