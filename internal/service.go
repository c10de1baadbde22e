// Package internal provides the service orchestrator for Photoshelf.
package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ramon-reichert/photoshelf/internal/analyze"
	"github.com/ramon-reichert/photoshelf/internal/facet"
	"github.com/ramon-reichert/photoshelf/internal/filter"
	"github.com/ramon-reichert/photoshelf/internal/importer"
	"github.com/ramon-reichert/photoshelf/internal/library"
	"github.com/ramon-reichert/photoshelf/internal/platform/logger"
)

// ErrInvalidRating is returned when a rating falls outside [0,5]. The store
// itself does not re-validate, so this boundary does.
var ErrInvalidRating = errors.New("rating must be between 0 and 5")

// Service orchestrates importing, filtering, and analysis operations.
type Service struct {
	log         logger.Logger
	Store       *library.Store
	coordinator *analyze.Coordinator

	mu       sync.Mutex
	facetRev uint64
	facets   facet.Summary
	hasFacet bool
}

// Config holds configuration for creating a Service.
type Config struct {
	Log logger.Logger

	// Analyzer may be nil when no credential is configured; analysis then
	// reports ErrNotConfigured without touching any record.
	Analyzer analyze.Analyzer

	AnalysisTimeout time.Duration
	MaxSide         int
	Quality         int
}

// New creates a Service with the given configuration.
func New(cfg Config) *Service {
	store := library.NewStore()

	return &Service{
		log:   cfg.Log,
		Store: store,
		coordinator: analyze.New(analyze.Config{
			Log:      cfg.Log,
			Store:    store,
			Analyzer: cfg.Analyzer,
			Timeout:  cfg.AnalysisTimeout,
			MaxSide:  cfg.MaxSide,
			Quality:  cfg.Quality,
		}),
	}
}

// ImportFolder imports all images in a folder as one batch and returns the
// number of records added.
func (s *Service) ImportFolder(ctx context.Context, folderPath string) (int, error) {
	photos, err := importer.Import(ctx, s.log, folderPath)
	if err != nil {
		return 0, fmt.Errorf("import folder: %w", err)
	}

	if len(photos) == 0 {
		s.log(ctx, "no images found", "folder", folderPath)
		return 0, nil
	}

	s.Store.Append(photos)
	s.log(ctx, "imported images", "count", len(photos), "total", s.Store.Len())

	return len(photos), nil
}

// Photos returns the full collection in import order.
func (s *Service) Photos() []library.Photo {
	return s.Store.All()
}

// Filter returns the photos matching the criteria, in import order.
func (s *Service) Filter(c filter.Criteria) []library.Photo {
	return filter.Apply(s.Store.All(), c)
}

// Facets returns the folder and tag aggregates, recomputed only when the
// collection has changed since the last call.
func (s *Service) Facets() facet.Summary {
	rev := s.Store.Revision()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasFacet && s.facetRev == rev {
		return s.facets
	}

	s.facets = facet.Compute(s.Store.All())
	s.facetRev = rev
	s.hasFacet = true

	return s.facets
}

// FolderTree returns the nested folder view of the collection.
func (s *Service) FolderTree() *facet.FolderNode {
	return facet.BuildTree(s.Store.All())
}

// Rate sets a photo's rating after validating the range.
func (s *Service) Rate(id string, rating int) error {
	if rating < 0 || rating > 5 {
		return ErrInvalidRating
	}

	s.Store.UpdateRating(id, rating)
	return nil
}

// AddTag adds a tag to a photo. Blank tags are ignored.
func (s *Service) AddTag(id string, tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}

	s.Store.AddTag(id, tag)
}

// RemoveTag removes a tag from a photo.
func (s *Service) RemoveTag(id string, tag string) {
	s.Store.RemoveTag(id, tag)
}

// Analyze runs the external vision call for one photo.
func (s *Service) Analyze(ctx context.Context, id string) error {
	return s.coordinator.Analyze(ctx, id)
}

// AnalysisConfigured reports whether the analysis feature should be offered.
func (s *Service) AnalysisConfigured() bool {
	return s.coordinator.Configured()
}
