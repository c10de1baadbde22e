// Package library provides the in-memory photo collection for Photoshelf.
package library

import (
	"sync"
	"time"
)

// Metadata is the immutable file snapshot captured at import time.
type Metadata struct {
	Filename     string
	Path         string // relative to the import root, "/"-separated
	SizeBytes    int64
	MimeType     string
	LastModified time.Time
	Width        int
	Height       int
}

// Photo represents one imported image and its user- and AI-derived state.
type Photo struct {
	ID            string
	SourcePath    string // absolute location of the file on disk
	Metadata      Metadata
	Rating        int // 0 means unrated
	Tags          []string
	AIDescription string
	IsAnalyzing   bool
}

// HasTag reports whether the photo carries the exact tag.
func (p Photo) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AnalysisResult is the outcome of a successful vision analysis call.
type AnalysisResult struct {
	Tags             []string `json:"tags" validate:"required,min=1,max=10"`
	Description      string   `json:"description" validate:"required"`
	RatingSuggestion int      `json:"ratingSuggestion" validate:"min=1,max=5"`
}

// Store owns the ordered photo collection. All mutation happens as
// whole-record replacement under the lock, so snapshots taken earlier never
// observe a half-applied change.
type Store struct {
	mu     sync.RWMutex
	photos []Photo
	byID   map[string]int
	rev    uint64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]int),
	}
}

// Append adds records to the end of the collection as one atomic batch.
// Callers guarantee id uniqueness.
func (s *Store) Append(photos []Photo) {
	if len(photos) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range photos {
		s.byID[p.ID] = len(s.photos)
		s.photos = append(s.photos, p)
	}
	s.rev++
}

// Get retrieves a photo by id.
func (s *Store) Get(id string) (Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Photo{}, false
	}
	return s.photos[i], true
}

// All returns a snapshot of the collection in import order.
func (s *Store) All() []Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Photo, len(s.photos))
	copy(out, s.photos)
	return out
}

// Len returns the number of photos in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.photos)
}

// Revision returns a counter that increases with every mutation. Derived
// views cache against it.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.rev
}

// UpdateRating replaces the rating. No-op if the id is unknown. The value is
// not re-validated here; callers keep it in [0,5].
func (s *Store) UpdateRating(id string, rating int) {
	s.update(id, func(p Photo) Photo {
		p.Rating = rating
		return p
	})
}

// AddTag adds a tag with set semantics: adding a present tag changes nothing.
func (s *Store) AddTag(id string, tag string) {
	s.update(id, func(p Photo) Photo {
		if p.HasTag(tag) {
			return p
		}
		tags := make([]string, 0, len(p.Tags)+1)
		tags = append(tags, p.Tags...)
		p.Tags = append(tags, tag)
		return p
	})
}

// RemoveTag removes a tag. No-op if absent.
func (s *Store) RemoveTag(id string, tag string) {
	s.update(id, func(p Photo) Photo {
		if !p.HasTag(tag) {
			return p
		}
		tags := make([]string, 0, len(p.Tags)-1)
		for _, t := range p.Tags {
			if t != tag {
				tags = append(tags, t)
			}
		}
		p.Tags = tags
		return p
	})
}

// SetAnalyzing toggles the transient in-flight flag.
func (s *Store) SetAnalyzing(id string, flag bool) {
	s.update(id, func(p Photo) Photo {
		p.IsAnalyzing = flag
		return p
	})
}

// ApplyAnalysisResult merges an analysis outcome into the record: tags are
// unioned, the description is set, and the suggested rating is taken only
// when the photo is still unrated. The in-flight flag is cleared.
func (s *Store) ApplyAnalysisResult(id string, result AnalysisResult) {
	s.update(id, func(p Photo) Photo {
		tags := make([]string, 0, len(p.Tags)+len(result.Tags))
		tags = append(tags, p.Tags...)
		for _, t := range result.Tags {
			if !contains(tags, t) {
				tags = append(tags, t)
			}
		}
		p.Tags = tags
		p.AIDescription = result.Description
		if p.Rating == 0 {
			p.Rating = result.RatingSuggestion
		}
		p.IsAnalyzing = false
		return p
	})
}

// update applies fn to the photo with the given id as a whole-record
// replacement. Unknown ids are a silent no-op.
func (s *Store) update(id string, fn func(Photo) Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return
	}

	s.photos[i] = fn(s.photos[i])
	s.rev++
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
