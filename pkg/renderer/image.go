package renderer

import (
	"image"
	"image/color"
)

// Image is a dense row-major pixel buffer, row 0 at the top
type Image struct {
	Width  int
	Height int
	Pixels []RGB
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]RGB, width*height),
	}
}

// At returns the pixel at column x, row y
func (img *Image) At(x, y int) RGB {
	return img.Pixels[y*img.Width+x]
}

// Set stores the pixel at column x, row y
func (img *Image) Set(x, y int, c RGB) {
	img.Pixels[y*img.Width+x] = c
}

// SetRow copies a full row of pixels into row y
func (img *Image) SetRow(y int, row []RGB) {
	copy(img.Pixels[y*img.Width:(y+1)*img.Width], row)
}

// ToRGBA converts the image for the standard image encoders
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			rgba.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return rgba
}
