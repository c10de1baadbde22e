// Package facet derives the folder and tag aggregates that drive filter UI.
package facet

import (
	"sort"
	"strings"

	"github.com/ramon-reichert/photoshelf/internal/library"
)

// Summary holds the derived aggregates for the current collection. It is
// never a source of truth: recompute it whenever the collection changes.
type Summary struct {
	Folders   []string       // sorted distinct folder prefixes
	TagCounts map[string]int // exact tag -> number of photos carrying it
}

// Compute derives a Summary from the given photos.
//
// A photo whose path contains no "/" sits at the import root and contributes
// no folder entry. Tag counting is case-sensitive by design.
func Compute(photos []library.Photo) Summary {
	folderSet := make(map[string]struct{})
	tagCounts := make(map[string]int)

	for _, p := range photos {
		if folder, ok := folderOf(p.Metadata.Path); ok {
			folderSet[folder] = struct{}{}
		}
		for _, t := range p.Tags {
			tagCounts[t]++
		}
	}

	folders := make([]string, 0, len(folderSet))
	for f := range folderSet {
		folders = append(folders, f)
	}
	sort.Strings(folders)

	return Summary{
		Folders:   folders,
		TagCounts: tagCounts,
	}
}

// TagCount is one entry of TagsByCount.
type TagCount struct {
	Tag   string
	Count int
}

// TagsByCount returns the tag counts ordered most-used first, ties broken
// alphabetically. This is the sidebar's display order.
func (s Summary) TagsByCount() []TagCount {
	out := make([]TagCount, 0, len(s.TagCounts))
	for tag, count := range s.TagCounts {
		out = append(out, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})

	return out
}

func folderOf(path string) (string, bool) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", false
	}
	return path[:i], true
}
