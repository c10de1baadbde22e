// Package filter computes the visible subset of a photo collection.
package filter

import (
	"strings"

	"github.com/ramon-reichert/photoshelf/internal/library"
)

// Criteria is the active combination of filter constraints. The zero value
// matches everything.
type Criteria struct {
	// FolderPrefix restricts to photos whose relative path starts with this
	// literal prefix. The match is not segment-aware: "ab" matches "abc/x.jpg".
	FolderPrefix string

	// RequiredTags must all be present on a photo (AND semantics).
	RequiredTags []string

	// MinRating excludes photos rated below it. 0 means no restriction.
	MinRating int

	// SearchText matches case-insensitively against the filename or any tag.
	SearchText string
}

// IsZero reports whether no constraint is active.
func (c Criteria) IsZero() bool {
	return c.FolderPrefix == "" && len(c.RequiredTags) == 0 && c.MinRating == 0 && c.SearchText == ""
}

// Apply returns the photos satisfying all active criteria, preserving the
// collection's relative order.
func Apply(photos []library.Photo, c Criteria) []library.Photo {
	out := make([]library.Photo, 0, len(photos))
	for _, p := range photos {
		if matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p library.Photo, c Criteria) bool {
	if c.FolderPrefix != "" && !strings.HasPrefix(p.Metadata.Path, c.FolderPrefix) {
		return false
	}

	if p.Rating < c.MinRating {
		return false
	}

	for _, tag := range c.RequiredTags {
		if !p.HasTag(tag) {
			return false
		}
	}

	if c.SearchText != "" {
		query := strings.ToLower(c.SearchText)
		if !strings.Contains(strings.ToLower(p.Metadata.Filename), query) && !anyTagContains(p.Tags, query) {
			return false
		}
	}

	return true
}

func anyTagContains(tags []string, query string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}
