package sniffer_test

import (
	"errors"
	"testing"

	"github.com/ramon-reichert/photoshelf/internal/platform/sniffer"
)

func TestDetectHead(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want string
	}{
		{name: "jpeg", head: []byte{0xff, 0xd8, 0xff, 0xe0}, want: "image/jpeg"},
		{name: "png", head: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, want: "image/png"},
		{name: "gif87a", head: []byte("GIF87a......"), want: "image/gif"},
		{name: "gif89a", head: []byte("GIF89a......"), want: "image/gif"},
		{name: "webp", head: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), want: "image/webp"},
		{name: "bmp", head: []byte("BM\x00\x00"), want: "image/bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sniffer.DetectHead(tt.head)
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDetectHeadUnknown(t *testing.T) {
	for _, head := range [][]byte{nil, {}, []byte("plain text")} {
		if _, err := sniffer.DetectHead(head); !errors.Is(err, sniffer.ErrUnknownType) {
			t.Errorf("expected ErrUnknownType for %q, got %v", head, err)
		}
	}
}

func TestDetectFileFallsBackToExtension(t *testing.T) {
	got := sniffer.DetectFile("photo.jpg", []byte("garbage"))
	if got != "image/jpeg" {
		t.Errorf("expected extension fallback image/jpeg, got %s", got)
	}

	got = sniffer.DetectFile("photo.png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	if got != "image/png" {
		t.Errorf("expected sniffed image/png, got %s", got)
	}
}
