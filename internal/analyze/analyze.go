// Package analyze orchestrates the per-photo vision analysis call.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ramon-reichert/photoshelf/internal/imaging"
	"github.com/ramon-reichert/photoshelf/internal/library"
	"github.com/ramon-reichert/photoshelf/internal/platform/logger"
)

var (
	// ErrNotConfigured means no analysis backend is available. The feature
	// should be hidden rather than surfaced per click.
	ErrNotConfigured = errors.New("analysis not configured")

	// ErrNotFound means the photo id is unknown to the store.
	ErrNotFound = errors.New("photo not found")

	// ErrInFlight means an analysis call for this photo is already outstanding.
	ErrInFlight = errors.New("analysis already in flight")

	// ErrMalformedResponse means the collaborator answered with a body that
	// is absent or not the expected shape.
	ErrMalformedResponse = errors.New("malformed analysis response")
)

// Analyzer is the external vision collaborator. The payload is a downscaled
// JPEG; the result carries 5-10 short tags, a one-sentence description, and
// a rating suggestion in [1,5].
type Analyzer interface {
	Analyze(ctx context.Context, jpegPayload []byte) (library.AnalysisResult, error)
}

// Coordinator drives one photo at a time through
// Idle -> Analyzing -> Idle-with-result | Idle-with-error.
type Coordinator struct {
	log      logger.Logger
	store    *library.Store
	analyzer Analyzer
	timeout  time.Duration
	maxSide  int
	quality  int
}

// Config holds configuration for creating a Coordinator.
type Config struct {
	Log      logger.Logger
	Store    *library.Store
	Analyzer Analyzer // nil when no credential is configured
	Timeout  time.Duration
	MaxSide  int
	Quality  int
}

// New creates a Coordinator with the given configuration.
func New(cfg Config) *Coordinator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxSide <= 0 {
		cfg.MaxSide = imaging.DefaultMaxSide
	}
	if cfg.Quality <= 0 {
		cfg.Quality = imaging.DefaultQuality
	}

	return &Coordinator{
		log:      cfg.Log,
		store:    cfg.Store,
		analyzer: cfg.Analyzer,
		timeout:  cfg.Timeout,
		maxSide:  cfg.MaxSide,
		quality:  cfg.Quality,
	}
}

// Configured reports whether an analysis backend is wired in.
func (c *Coordinator) Configured() bool {
	return c.analyzer != nil
}

// Analyze runs the external call for one photo and merges the outcome into
// the store. On any failure the in-flight flag is cleared and the photo's
// tags, rating, and description stay untouched. There is no retry.
func (c *Coordinator) Analyze(ctx context.Context, id string) error {
	if c.analyzer == nil {
		return ErrNotConfigured
	}

	photo, ok := c.store.Get(id)
	if !ok {
		return ErrNotFound
	}
	if photo.IsAnalyzing {
		return ErrInFlight
	}

	// Visible to observers before the external call is issued.
	c.store.SetAnalyzing(id, true)

	payload, err := imaging.Resize(photo.SourcePath, c.maxSide, c.quality)
	if err != nil {
		c.store.SetAnalyzing(id, false)
		return fmt.Errorf("prepare payload: %w", err)
	}

	c.log(ctx, "analyzing photo", "id", id, "path", photo.Metadata.Path, "payload_bytes", len(payload))

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.analyzer.Analyze(callCtx, payload)
	if err != nil {
		c.store.SetAnalyzing(id, false)
		c.log(ctx, "analysis failed", "id", id, "error", err)
		return fmt.Errorf("analyze photo: %w", err)
	}

	c.store.ApplyAnalysisResult(id, result)

	c.log(ctx, "analysis complete", "id", id, "tags", len(result.Tags), "rating_suggestion", result.RatingSuggestion)

	return nil
}
