package filter

import (
	"sort"

	"github.com/ramon-reichert/photoshelf/internal/library"
)

// Order selects a display ordering for a filtered view.
type Order string

const (
	OrderDateDesc   Order = "date-desc"
	OrderDateAsc    Order = "date-asc"
	OrderRatingDesc Order = "rating-desc"
	OrderNameAsc    Order = "name-asc"
)

// Sort returns the photos in the given order. The input slice is not
// modified; ties keep import order.
func Sort(photos []library.Photo, order Order) []library.Photo {
	out := make([]library.Photo, len(photos))
	copy(out, photos)

	switch order {
	case OrderDateDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Metadata.LastModified.After(out[j].Metadata.LastModified)
		})
	case OrderDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Metadata.LastModified.Before(out[j].Metadata.LastModified)
		})
	case OrderRatingDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case OrderNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Metadata.Filename < out[j].Metadata.Filename
		})
	}

	return out
}
