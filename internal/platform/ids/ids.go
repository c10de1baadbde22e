// Package ids generates unique identifiers for photo records.
package ids

import "github.com/segmentio/ksuid"

// New returns a new unique, time-sortable identifier.
func New() string {
	return ksuid.New().String()
}
