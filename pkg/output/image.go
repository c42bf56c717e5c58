package output

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// FormatPPM is the plain-text format written by WritePPM; every other
// format name is resolved by imaging
const FormatPPM = "ppm"

// normalizeFormat accepts "png", ".png" or "PNG"
func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

// Encode writes the image in the named format (ppm, png, jpg, gif, tif, bmp)
func Encode(w io.Writer, img *renderer.Image, format string) error {
	format = normalizeFormat(format)
	if format == FormatPPM {
		return WritePPM(w, img)
	}

	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported output format %q: %w", format, err)
	}
	if err := imaging.Encode(w, img.ToRGBA(), f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// Save writes the image to path, choosing the format from its extension.
// Parent directories are created as needed.
func Save(path string, img *renderer.Image) error {
	format := normalizeFormat(filepath.Ext(path))
	if format == "" {
		return fmt.Errorf("output path %q has no extension", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Thumbnail scales the image down to fit within maxWidth x maxHeight,
// preserving aspect ratio. Images that already fit are returned unscaled.
func Thumbnail(img *renderer.Image, maxWidth, maxHeight uint) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, img.ToRGBA(), resize.Lanczos3)
}

// SaveThumbnail writes a thumbnail of the image next to path as <name>_thumb.png
func SaveThumbnail(path string, img *renderer.Image, maxSize uint) (string, error) {
	ext := filepath.Ext(path)
	thumbPath := strings.TrimSuffix(path, ext) + "_thumb.png"

	if err := imaging.Save(Thumbnail(img, maxSize, maxSize), thumbPath); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return thumbPath, nil
}

// ContentType returns the MIME type for a format name or file extension
func ContentType(format string) string {
	switch normalizeFormat(format) {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "tif", "tiff":
		return "image/tiff"
	case "bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
