// Package importer turns a folder of image files into photo records.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramon-reichert/photoshelf/internal/imaging"
	"github.com/ramon-reichert/photoshelf/internal/library"
	"github.com/ramon-reichert/photoshelf/internal/platform/ids"
	"github.com/ramon-reichert/photoshelf/internal/platform/logger"
	"github.com/ramon-reichert/photoshelf/internal/platform/sniffer"
)

// Import walks the folder and builds a record per accepted image file.
// Extraction is total: a failing file is logged and skipped, dimension
// probing degrades to zero, and siblings are never affected.
func Import(ctx context.Context, log logger.Logger, root string) ([]library.Photo, error) {
	paths, err := findImages(root)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}

	photos := make([]library.Photo, 0, len(paths))

	for _, path := range paths {
		md, err := extractMetadata(root, path)
		if err != nil {
			log(ctx, "skipping file", "path", path, "error", err)
			continue
		}

		photos = append(photos, library.Photo{
			ID:         ids.New(),
			SourcePath: path,
			Metadata:   md,
		})
	}

	return photos, nil
}

func extractMetadata(root, path string) (library.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return library.Metadata{}, fmt.Errorf("stat: %w", err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return library.Metadata{}, fmt.Errorf("relative path: %w", err)
	}

	md := library.Metadata{
		Filename:     info.Name(),
		Path:         filepath.ToSlash(rel),
		SizeBytes:    info.Size(),
		MimeType:     sniffer.DetectFile(path, readHead(path)),
		LastModified: info.ModTime(),
	}

	// Best effort: a photo without dimensions is still importable.
	if w, h, err := imaging.Dimensions(path); err == nil {
		md.Width = w
		md.Height = h
	}

	return md, nil
}

func readHead(path string) []byte {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil
	}
	return head[:n]
}

func findImages(folderPath string) ([]string, error) {
	var images []string

	err := filepath.Walk(folderPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp":
			images = append(images, path)
		}

		return nil
	})

	return images, err
}
