// Package sniffer detects image MIME types from file head bytes.
package sniffer

import (
	"bytes"
	"errors"
	"mime"
	"path/filepath"
)

// ErrUnknownType is returned when the head bytes match no known image format.
var ErrUnknownType = errors.New("unknown media type")

// DetectHead returns the MIME type for the given head bytes. 512 bytes are
// enough for every supported format.
func DetectHead(head []byte) (string, error) {
	if len(head) == 0 {
		return "", ErrUnknownType
	}

	switch {
	case isJPEG(head):
		return "image/jpeg", nil
	case isPNG(head):
		return "image/png", nil
	case isGIF(head):
		return "image/gif", nil
	case isWEBP(head):
		return "image/webp", nil
	case isBMP(head):
		return "image/bmp", nil
	}

	return "", ErrUnknownType
}

// DetectFile sniffs the MIME type from head bytes, falling back to the file
// extension when the magic bytes are not recognized.
func DetectFile(path string, head []byte) string {
	if mt, err := DetectHead(head); err == nil {
		return mt
	}
	return mime.TypeByExtension(filepath.Ext(path))
}

func isJPEG(head []byte) bool {
	return len(head) > 3 &&
		head[0] == 0xff &&
		head[1] == 0xd8 &&
		head[2] == 0xff
}

func isPNG(head []byte) bool {
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return len(head) >= len(pngMagic) && bytes.Equal(head[:len(pngMagic)], pngMagic)
}

func isGIF(head []byte) bool {
	return len(head) >= 6 && (bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a")))
}

func isWEBP(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WEBP"))
}

func isBMP(head []byte) bool {
	return len(head) >= 2 && head[0] == 'B' && head[1] == 'M'
}
