// Package mode defines the result orderings of place queries.
package mode

import "strings"

// Mode is a place ordering.
type Mode string

// Caller-selectable modes.
const (
	// Newest orders by creation time, newest first. It is the default.
	Newest   Mode = "newest"
	Oldest   Mode = "oldest"
	Likes    Mode = "likes"
	Comments Mode = "comments"
	Views    Mode = "views"
)

// Modes chosen by the engines, never parsed from input.
const (
	// Popular orders by likes, then views.
	Popular Mode = "popular"
	// Distance orders by distance, then newest first. Used by paginated proximity search.
	Distance Mode = "distance"
	// Nearest orders by distance, then place id. Used by the nearby listing.
	Nearest Mode = "nearest"
)

// Column is a sortable place attribute.
type Column string

// Sortable columns.
const (
	ColumnCreatedAt Column = "created_at"
	ColumnLikes     Column = "likes_count"
	ColumnComments  Column = "comments_count"
	ColumnViews     Column = "views"
	ColumnDistance  Column = "distance"
	ColumnID        Column = "place_id"
)

// Key is one ORDER BY term.
type Key struct {
	Column Column
	Desc   bool
}

var keys = map[Mode][]Key{
	Newest: {{ColumnCreatedAt, true}},
	Oldest: {{ColumnCreatedAt, false}},
	Likes:  {{ColumnLikes, true}, {ColumnCreatedAt, true}},
	Comments: {
		{ColumnComments, true}, {ColumnCreatedAt, true},
	},
	Views: {{ColumnViews, true}, {ColumnCreatedAt, true}},
	Popular: {
		{ColumnLikes, true}, {ColumnViews, true}, {ColumnCreatedAt, true},
	},
	Distance: {{ColumnDistance, false}, {ColumnCreatedAt, true}},
	Nearest:  {{ColumnDistance, false}},
}

// Parse maps caller input to a Mode. Unknown or engine-only values fall back to Newest.
func Parse(s string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Newest, Oldest, Likes, Comments, Views:
		return m
	default:
		return Newest
	}
}

// IsValid checks if the mode is one of the known values.
func (m Mode) IsValid() bool {
	_, ok := keys[m]
	return ok
}

// NeedsDistance reports whether the ordering uses the computed distance.
func (m Mode) NeedsDistance() bool {
	return m == Distance || m == Nearest
}

// Keys returns the full ordering, ending with an ascending place id tie-break
// so that equal rows always come back in the same order.
func (m Mode) Keys() []Key {
	base, ok := keys[m]
	if !ok {
		base = keys[Newest]
	}
	out := make([]Key, 0, len(base)+1)
	out = append(out, base...)
	return append(out, Key{Column: ColumnID})
}
