// Package imaging downscales oversized uploaded images before they are
// pushed to the attachment store.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension is the longest edge kept for stored images.
	MaxDimension = 1600
	jpegQuality  = 85
)

// DownscaleIfNeeded re-encodes images whose longest edge exceeds
// MaxDimension. Smaller images (and anything that fails to decode, e.g.
// animated GIFs) are passed through untouched.
func DownscaleIfNeeded(data []byte) []byte {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= MaxDimension && height <= MaxDimension {
		return data
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = MaxDimension
		newHeight = int(float64(height) * float64(MaxDimension) / float64(width))
	} else {
		newHeight = MaxDimension
		newWidth = int(float64(width) * float64(MaxDimension) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return data
	}
	return buf.Bytes()
}

// Dimensions reports the pixel size of an encoded image.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
