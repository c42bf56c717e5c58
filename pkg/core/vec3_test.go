package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		n        Vec3
		expected Vec3
	}{
		{"Straight down onto floor", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees onto floor", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"Parallel to surface", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reflect(tt.v, tt.n)
			if !NearlyEqual(result, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestRefract_NormalIncidence(t *testing.T) {
	// A ray hitting head-on passes straight through regardless of the ratio
	in := NewVec3(0, 0, -1)
	n := NewVec3(0, 0, 1)

	result := Refract(in, n, 1.0/1.5)
	if !NearlyEqual(result, in, 1e-12) {
		t.Errorf("Expected %v, got %v", in, result)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	ratio := 1.0 / 1.5
	theta := math.Pi / 6
	in := NewVec3(math.Sin(theta), -math.Cos(theta), 0)
	n := NewVec3(0, 1, 0)

	out := Refract(in, n, ratio)

	sinOut := out[0] / out.Len()
	if math.Abs(sinOut-ratio*math.Sin(theta)) > 1e-9 {
		t.Errorf("Expected sin(theta') = %f, got %f", ratio*math.Sin(theta), sinOut)
	}
	if out[1] >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", out)
	}
}

func TestUnitVector_ZeroLength(t *testing.T) {
	result := UnitVector(Vec3{})
	if result != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", result)
	}

	result = UnitVector(NewVec3(3, 0, 4))
	if math.Abs(result.Len()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", result.Len())
	}
}

func TestNearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-3, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearZero(tt.v); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, want %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestMultiplyVec(t *testing.T) {
	result := MultiplyVec(NewVec3(0.5, 2, -1), NewVec3(4, 0.25, 3))
	expected := NewVec3(2, 0.5, -3)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestLerp(t *testing.T) {
	white := NewColor(1, 1, 1)
	blue := NewColor(0.5, 0.7, 1.0)

	if got := Lerp(white, blue, 0); got != white {
		t.Errorf("Lerp at 0 should be start, got %v", got)
	}
	if got := Lerp(white, blue, 1); got != blue {
		t.Errorf("Lerp at 1 should be end, got %v", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	if got := ray.At(1.5); got != NewVec3(1, 2, 0) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Len()-1.0) > 1e-9 {
			t.Fatalf("Sample %d has length %f", i, v.Len())
		}
	}
}

func TestRandomInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(7)

	for i := 0; i < 1000; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LenSqr() > 1.0 {
			t.Fatalf("Sample %d outside unit sphere: %v", i, p)
		}
	}
}

func TestSeededSampler_Reproducible(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)

	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Samplers with equal seeds diverged at draw %d", i)
		}
	}
}

func TestNearlyEqual_ZeroComponents(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		tol      float64
		expected bool
	}{
		{"rounding residue around zero", NewVec3(-4.44e-16, 4.44e-16, -5), NewVec3(0, 0, -5), 1e-9, true},
		{"exact", NewVec3(1, 2, 3), NewVec3(1, 2, 3), 0, true},
		{"beyond tolerance", NewVec3(0, 1e-6, 0), NewVec3(0, 0, 0), 1e-9, false},
		{"large magnitude", NewVec3(1000, 0, 0), NewVec3(1000+1e-10, 0, 0), 1e-9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearlyEqual(tt.a, tt.b, tt.tol); got != tt.expected {
				t.Errorf("NearlyEqual(%v, %v, %g) = %v, expected %v", tt.a, tt.b, tt.tol, got, tt.expected)
			}
		})
	}
}
