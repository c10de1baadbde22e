package internal_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	photoshelf "github.com/ramon-reichert/photoshelf/internal"
	"github.com/ramon-reichert/photoshelf/internal/analyze"
	"github.com/ramon-reichert/photoshelf/internal/filter"
	"github.com/ramon-reichert/photoshelf/internal/library"
	"github.com/ramon-reichert/photoshelf/internal/platform/logger"
)

type stubAnalyzer struct {
	result library.AnalysisResult
}

func (s stubAnalyzer) Analyze(ctx context.Context, jpegPayload []byte) (library.AnalysisResult, error) {
	return s.result, nil
}

func writeTestImage(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 48, 32))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
}

func importTestFolder(t *testing.T, svc *photoshelf.Service) {
	t.Helper()

	root := t.TempDir()
	writeTestImage(t, filepath.Join(root, "A", "1.png"))
	writeTestImage(t, filepath.Join(root, "A", "2.png"))
	writeTestImage(t, filepath.Join(root, "B", "3.png"))

	count, err := svc.ImportFolder(context.Background(), root)
	if err != nil {
		t.Fatalf("import folder: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 imports, got %d", count)
	}
}

func findByPath(t *testing.T, svc *photoshelf.Service, path string) library.Photo {
	t.Helper()

	for _, p := range svc.Photos() {
		if p.Metadata.Path == path {
			return p
		}
	}
	t.Fatalf("photo %s not found", path)
	return library.Photo{}
}

func TestImportFilterAndFacets(t *testing.T) {
	svc := photoshelf.New(photoshelf.Config{Log: logger.Discard()})
	importTestFolder(t, svc)

	first := findByPath(t, svc, "A/1.png")
	if err := svc.Rate(first.ID, 4); err != nil {
		t.Fatalf("rate: %v", err)
	}
	svc.AddTag(first.ID, "sunset")

	got := svc.Filter(filter.Criteria{FolderPrefix: "A", MinRating: 3})
	if len(got) != 1 || got[0].Metadata.Path != "A/1.png" {
		t.Fatalf("expected exactly A/1.png, got %d results", len(got))
	}

	facets := svc.Facets()
	if !reflect.DeepEqual(facets.Folders, []string{"A", "B"}) {
		t.Errorf("unexpected folders: %v", facets.Folders)
	}
	if facets.TagCounts["sunset"] != 1 {
		t.Errorf("unexpected tag counts: %v", facets.TagCounts)
	}

	tree := svc.FolderTree()
	if tree.PhotoCount != 3 || len(tree.Children) != 2 {
		t.Errorf("unexpected folder tree: count %d, children %d", tree.PhotoCount, len(tree.Children))
	}
}

func TestFacetsMemoized(t *testing.T) {
	svc := photoshelf.New(photoshelf.Config{Log: logger.Discard()})
	importTestFolder(t, svc)

	a := svc.Facets()
	b := svc.Facets()

	// Unchanged revision returns the cached summary, map identity included.
	if reflect.ValueOf(a.TagCounts).Pointer() != reflect.ValueOf(b.TagCounts).Pointer() {
		t.Error("expected cached summary while the store is unchanged")
	}

	svc.AddTag(findByPath(t, svc, "B/3.png").ID, "alps")

	c := svc.Facets()
	if c.TagCounts["alps"] != 1 {
		t.Errorf("expected recompute after mutation, got %v", c.TagCounts)
	}
}

func TestRateValidates(t *testing.T) {
	svc := photoshelf.New(photoshelf.Config{Log: logger.Discard()})
	importTestFolder(t, svc)

	id := findByPath(t, svc, "A/1.png").ID

	for _, bad := range []int{-1, 6} {
		if err := svc.Rate(id, bad); !errors.Is(err, photoshelf.ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", bad, err)
		}
	}

	if err := svc.Rate(id, 0); err != nil {
		t.Errorf("rating 0 clears the rating and must be valid: %v", err)
	}
}

func TestAddTagIgnoresBlank(t *testing.T) {
	svc := photoshelf.New(photoshelf.Config{Log: logger.Discard()})
	importTestFolder(t, svc)

	id := findByPath(t, svc, "A/1.png").ID
	svc.AddTag(id, "  ")

	if tags := findByPath(t, svc, "A/1.png").Tags; len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	svc := photoshelf.New(photoshelf.Config{
		Log: logger.Discard(),
		Analyzer: stubAnalyzer{result: library.AnalysisResult{
			Tags:             []string{"abstract", "test-pattern"},
			Description:      "A flat test pattern.",
			RatingSuggestion: 2,
		}},
	})
	importTestFolder(t, svc)

	if !svc.AnalysisConfigured() {
		t.Fatal("expected analysis configured")
	}

	id := findByPath(t, svc, "A/1.png").ID
	if err := svc.Analyze(context.Background(), id); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	p := findByPath(t, svc, "A/1.png")
	if p.AIDescription != "A flat test pattern." || p.Rating != 2 {
		t.Errorf("analysis result not applied: %+v", p)
	}
}

func TestAnalyzeWithoutBackend(t *testing.T) {
	svc := photoshelf.New(photoshelf.Config{Log: logger.Discard()})
	importTestFolder(t, svc)

	if svc.AnalysisConfigured() {
		t.Fatal("expected analysis not configured")
	}

	id := findByPath(t, svc, "A/1.png").ID
	if err := svc.Analyze(context.Background(), id); !errors.Is(err, analyze.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
