package imaging_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ramon-reichert/photoshelf/internal/imaging"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	return path
}

func TestResize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxSide      int
		wantW, wantH int
	}{
		{name: "landscape bounded on width", w: 200, h: 100, maxSide: 64, wantW: 64, wantH: 32},
		{name: "portrait bounded on height", w: 100, h: 200, maxSide: 64, wantW: 32, wantH: 64},
		{name: "square", w: 128, h: 128, maxSide: 64, wantW: 64, wantH: 64},
		{name: "already within bounds keeps size", w: 40, h: 30, maxSide: 64, wantW: 40, wantH: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writePNG(t, tt.w, tt.h)

			out, err := imaging.Resize(src, tt.maxSide, imaging.DefaultQuality)
			if err != nil {
				t.Fatalf("resize: %v", err)
			}

			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}

			if format != "jpeg" {
				t.Errorf("expected jpeg output, got %s", format)
			}
			if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, cfg.Width, cfg.Height)
			}
		})
	}
}

func TestResizeMissingFile(t *testing.T) {
	_, err := imaging.Resize(filepath.Join(t.TempDir(), "missing.png"), 64, 80)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDimensions(t *testing.T) {
	src := writePNG(t, 320, 240)

	w, h, err := imaging.Dimensions(src)
	if err != nil {
		t.Fatalf("dimensions: %v", err)
	}

	if w != 320 || h != 240 {
		t.Errorf("expected 320x240, got %dx%d", w, h)
	}
}

func TestDimensionsNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, _, err := imaging.Dimensions(path); err == nil {
		t.Fatal("expected decode error")
	}
}
