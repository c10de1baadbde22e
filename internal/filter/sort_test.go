package filter_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/ramon-reichert/photoshelf/internal/filter"
	"github.com/ramon-reichert/photoshelf/internal/library"
)

func TestSort(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	a := photo("a.jpg", 2)
	a.Metadata.LastModified = day(1)
	b := photo("c.jpg", 5)
	b.Metadata.LastModified = day(3)
	c := photo("b.jpg", 5)
	c.Metadata.LastModified = day(2)

	photos := []library.Photo{a, b, c}

	tests := []struct {
		order filter.Order
		want  []string
	}{
		{filter.OrderDateDesc, []string{"c.jpg", "b.jpg", "a.jpg"}},
		{filter.OrderDateAsc, []string{"a.jpg", "b.jpg", "c.jpg"}},
		{filter.OrderRatingDesc, []string{"c.jpg", "b.jpg", "a.jpg"}},
		{filter.OrderNameAsc, []string{"a.jpg", "b.jpg", "c.jpg"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			got := paths(filter.Sort(photos, tt.order))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	// The input order is untouched.
	if photos[0].Metadata.Path != "a.jpg" {
		t.Error("sort mutated its input")
	}
}

func TestSortEqualRatingsKeepOrder(t *testing.T) {
	photos := []library.Photo{photo("z.jpg", 3), photo("a.jpg", 3)}

	got := paths(filter.Sort(photos, filter.OrderRatingDesc))

	if !reflect.DeepEqual(got, []string{"z.jpg", "a.jpg"}) {
		t.Errorf("expected stable order for ties, got %v", got)
	}
}
