package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// WritePPM writes the image as plain-text PPM (P3): a header line with the
// magic number, the dimensions and the maximum value, then one "r g b" line
// per pixel, top row first
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, p := range img.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}
