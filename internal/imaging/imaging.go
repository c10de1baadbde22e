// Package imaging prepares image payloads for vision analysis.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"golang.org/x/image/draw"
)

const (
	// DefaultMaxSide bounds the longest edge of the analysis payload.
	DefaultMaxSide = 1024

	// DefaultQuality is the JPEG quality of the re-encoded payload.
	DefaultQuality = 80
)

// Resize loads an image, bounds its longest edge to maxSide preserving the
// aspect ratio, and returns JPEG bytes at the given quality. Images already
// within bounds are still re-encoded so the payload format is uniform.
func Resize(srcPath string, maxSide int, quality int) ([]byte, error) {
	img, err := load(srcPath)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w > maxSide || h > maxSide {
		w, h = scaleDimensions(w, h, maxSide)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// Dimensions reads the pixel dimensions of an image without decoding pixel
// data.
func Dimensions(srcPath string) (int, int, error) {
	file, err := os.Open(srcPath)
	if err != nil {
		return 0, 0, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("decode config: %w", err)
	}

	return cfg.Width, cfg.Height, nil
}

func load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return img, nil
}

func scaleDimensions(w, h, maxSide int) (int, int) {
	if w >= h {
		newW := maxSide
		newH := int(float64(h) * float64(maxSide) / float64(w))
		return newW, newH
	}

	newH := maxSide
	newW := int(float64(w) * float64(maxSide) / float64(h))
	return newW, newH
}
