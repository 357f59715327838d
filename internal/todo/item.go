package todo

import (
	"time"
)

// Item is a single todo entry as displayed to its owner.
// IDs are client-generated at intent-creation time so a predicted item
// is addressable before the store confirms it; within any displayed
// list IDs are unique.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter selects which items are visible.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"
	FilterComplete Filter = "complete"
)

// IsValidFilter checks if a filter is valid
func IsValidFilter(f Filter) bool {
	switch f {
	case FilterAll, FilterActive, FilterComplete:
		return true
	}
	return false
}

// Matches reports whether the item is visible under the filter.
func (f Filter) Matches(it Item) bool {
	switch f {
	case FilterActive:
		return !it.Complete
	case FilterComplete:
		return it.Complete
	default:
		return true
	}
}
