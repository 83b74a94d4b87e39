// Package result holds paginated query output.
package result

import (
	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/page"
)

// Paged is one page of places with the total under the same predicate.
type Paged struct {
	items []place.Place
	total int
	page  page.Page
}

// New creates a paged result.
func New(items []place.Place, total int, p page.Page) Paged {
	if items == nil {
		items = []place.Place{}
	}
	return Paged{items: items, total: total, page: p}
}

// Items returns the places on this page.
func (r Paged) Items() []place.Place { return r.items }

// Count returns the number of places on this page.
func (r Paged) Count() int { return len(r.items) }

// Total returns the number of places matching the predicate across all pages.
func (r Paged) Total() int { return r.total }

// Page returns the requested page.
func (r Paged) Page() page.Page { return r.page }

// TotalPages returns the number of pages needed to cover Total.
func (r Paged) TotalPages() int { return r.page.TotalPages(r.total) }
