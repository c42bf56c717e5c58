package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestToBytes(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Color
		expected RGB
	}{
		{"black", core.NewColor(0, 0, 0), RGB{0, 0, 0}},
		{"white", core.NewColor(1, 1, 1), RGB{255, 255, 255}},
		{"negative", core.NewColor(-0.5, -1, -100), RGB{0, 0, 0}},
		{"over range", core.NewColor(4, 100, 1.5), RGB{255, 255, 255}},
		{"gamma quarter", core.NewColor(0.25, 0.25, 0.25), RGB{128, 128, 128}},
		{"mixed", core.NewColor(0.25, 0, 1), RGB{128, 0, 255}},
		{"NaN", core.NewColor(math.NaN(), 0.25, 0), RGB{0, 128, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToBytes(tt.color)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestToBytes_Monotonic(t *testing.T) {
	prev := uint8(0)
	for x := 0.0; x <= 1.0; x += 0.001 {
		b := ToBytes(core.NewColor(x, x, x)).R
		if b < prev {
			t.Fatalf("Byte value decreased at %f: %d < %d", x, b, prev)
		}
		prev = b
	}
}

func TestImage_RowsAndConversion(t *testing.T) {
	img := NewImage(3, 2)
	img.SetRow(1, []RGB{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	img.Set(0, 0, RGB{255, 0, 0})

	if img.At(2, 1) != (RGB{7, 8, 9}) {
		t.Errorf("Expected row 1 pixel 2 to be {7 8 9}, got %v", img.At(2, 1))
	}
	if img.Pixels[3] != (RGB{1, 2, 3}) {
		t.Errorf("Expected row-major layout, got %v at index 3", img.Pixels[3])
	}

	rgba := img.ToRGBA()
	if rgba.Bounds().Dx() != 3 || rgba.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 bounds, got %v", rgba.Bounds())
	}
	c := rgba.RGBAAt(0, 0)
	if c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("Expected opaque red, got %v", c)
	}
}

func TestPixelStats_Average(t *testing.T) {
	var stats PixelStats
	if stats.GetColor() != (core.Color{}) {
		t.Errorf("Expected black with no samples, got %v", stats.GetColor())
	}

	stats.AddSample(core.NewColor(1, 0, 0))
	stats.AddSample(core.NewColor(0, 1, 0))

	expected := core.NewColor(0.5, 0.5, 0)
	if !core.NearlyEqual(stats.GetColor(), expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, stats.GetColor())
	}
}
