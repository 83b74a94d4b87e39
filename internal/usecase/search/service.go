package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/filter"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
	"github.com/kailas-cloud/placedex/internal/domain/search/page"
	"github.com/kailas-cloud/placedex/internal/domain/search/result"
)

// DefaultPopularLimit is the popular listing size when none is requested.
const DefaultPopularLimit = 6

// Query is a keyword search or listing request.
type Query struct {
	Keyword  string
	Category string
	Province string
	Sort     mode.Mode
	Page     page.Page
}

// Service handles keyword search and catalog listings.
type Service struct {
	repo         Repository
	popularLimit int
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo, popularLimit: DefaultPopularLimit}
}

// WithPopularLimit overrides the default popular listing size.
func (s *Service) WithPopularLimit(n int) *Service {
	if n > 0 {
		s.popularLimit = n
	}
	return s
}

// Search matches the keyword across title, description, location, province
// and tag names, narrowed by category and province. An empty keyword lists
// every place that passes the other filters.
func (s *Service) Search(ctx context.Context, q Query) (result.Paged, error) {
	pred := filter.Build(filter.SearchFilter{
		Keyword:  q.Keyword,
		Category: q.Category,
		Province: q.Province,
	})

	res, err := Paginate(ctx, s.repo, pred, sortOrDefault(q.Sort), pageOrDefault(q.Page))
	if err != nil {
		return result.Paged{}, fmt.Errorf("search places: %w", err)
	}
	return res, nil
}

// List returns active places filtered by category and province, without keyword matching.
func (s *Service) List(ctx context.Context, q Query) (result.Paged, error) {
	q.Keyword = ""
	res, err := s.Search(ctx, q)
	if err != nil {
		return result.Paged{}, fmt.Errorf("list places: %w", err)
	}
	return res, nil
}

// Popular returns the most liked places, optionally within a category.
func (s *Service) Popular(ctx context.Context, category string, limit int) ([]place.Place, error) {
	if limit < 1 {
		limit = s.popularLimit
	}
	pred := filter.Build(filter.SearchFilter{Category: category})

	items, err := s.repo.FetchPlaces(ctx, pred, mode.Popular, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("popular places: %w", err)
	}
	if items == nil {
		items = []place.Place{}
	}
	return items, nil
}

func sortOrDefault(m mode.Mode) mode.Mode {
	if !m.IsValid() {
		return mode.Newest
	}
	return m
}

func pageOrDefault(p page.Page) page.Page {
	return page.New(p.Number(), p.Size())
}
