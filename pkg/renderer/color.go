package renderer

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// RGB is a display-encoded 8-bit pixel
type RGB struct {
	R, G, B uint8
}

// intensity keeps channel values below 1 so the byte conversion tops out at 255
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2 encoding; non-positive values (and NaN) map to 0
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// channelToByte gamma-corrects, clamps and quantizes one channel, in that order
func channelToByte(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(linearToGamma(linear)))
}

// ToBytes converts linear radiance to display bytes
func ToBytes(color core.Color) RGB {
	return RGB{
		R: channelToByte(color.X()),
		G: channelToByte(color.Y()),
		B: channelToByte(color.Z()),
	}
}
