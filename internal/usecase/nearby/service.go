package nearby

import (
	"context"
	"fmt"
	"math"

	"github.com/kailas-cloud/placedex/internal/domain"
	"github.com/kailas-cloud/placedex/internal/domain/geo"
	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/filter"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
	"github.com/kailas-cloud/placedex/internal/domain/search/page"
	"github.com/kailas-cloud/placedex/internal/domain/search/result"
	"github.com/kailas-cloud/placedex/internal/usecase/search"
)

// Defaults for proximity queries.
const (
	DefaultNearbyRadiusKm = 50.0
	DefaultSearchRadiusKm = 10.0
	DefaultNearbyLimit    = 6
)

// Query describes a proximity request. A nil Point is rejected.
type Query struct {
	Point *geo.Point
	// RadiusKm <= 0 selects the engine default.
	RadiusKm float64
	Category string
	Keyword  string
	// Limit caps the nearby listing; <= 0 selects the default.
	Limit int
}

// Service ranks places by distance from a query point.
type Service struct {
	repo           Repository
	nearbyRadiusKm float64
	searchRadiusKm float64
	nearbyLimit    int
}

// New creates a proximity service with the default radii and limit.
func New(repo Repository) *Service {
	return &Service{
		repo:           repo,
		nearbyRadiusKm: DefaultNearbyRadiusKm,
		searchRadiusKm: DefaultSearchRadiusKm,
		nearbyLimit:    DefaultNearbyLimit,
	}
}

// WithDefaults overrides the default radii and nearby limit. Non-positive values are ignored.
func (s *Service) WithDefaults(nearbyRadiusKm, searchRadiusKm float64, nearbyLimit int) *Service {
	if nearbyRadiusKm > 0 {
		s.nearbyRadiusKm = nearbyRadiusKm
	}
	if searchRadiusKm > 0 {
		s.searchRadiusKm = searchRadiusKm
	}
	if nearbyLimit > 0 {
		s.nearbyLimit = nearbyLimit
	}
	return s
}

// Nearby returns up to Limit places within the radius, closest first.
// Equal distances are ordered by place id.
func (s *Service) Nearby(ctx context.Context, q Query) ([]place.Place, error) {
	pred, center, err := s.predicate(q, s.nearbyRadiusKm)
	if err != nil {
		return nil, fmt.Errorf("nearby: %w", err)
	}
	limit := q.Limit
	if limit < 1 {
		limit = s.nearbyLimit
	}

	items, err := s.repo.FetchPlaces(ctx, pred, mode.Nearest, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("nearby: fetch places: %w", err)
	}
	if items == nil {
		items = []place.Place{}
	}
	annotate(items, center)
	return items, nil
}

// SearchNearby returns one page of places within the radius ordered by
// distance, then newest first, with the total under the same predicate.
func (s *Service) SearchNearby(ctx context.Context, q Query, pg page.Page) (result.Paged, error) {
	pred, center, err := s.predicate(q, s.searchRadiusKm)
	if err != nil {
		return result.Paged{}, fmt.Errorf("search nearby: %w", err)
	}

	res, err := search.Paginate(ctx, s.repo, pred, mode.Distance, page.New(pg.Number(), pg.Size()))
	if err != nil {
		return result.Paged{}, fmt.Errorf("search nearby: %w", err)
	}
	annotate(res.Items(), center)
	return res, nil
}

func (s *Service) predicate(q Query, defaultKm float64) (filter.Predicate, geo.Point, error) {
	if q.Point == nil {
		return filter.Predicate{}, geo.Point{}, domain.ErrMissingCoordinates
	}
	km := q.RadiusKm
	if km <= 0 || math.IsNaN(km) || math.IsInf(km, 0) {
		km = defaultKm
	}
	r, err := filter.NewRadius(*q.Point, km)
	if err != nil {
		return filter.Predicate{}, geo.Point{}, err
	}
	pred := filter.Build(filter.SearchFilter{
		Keyword:  q.Keyword,
		Category: q.Category,
		Radius:   &r,
	})
	return pred, *q.Point, nil
}

// annotate fills distances the store did not report.
func annotate(items []place.Place, from geo.Point) {
	for i := range items {
		if items[i].Distance == nil {
			items[i].SetDistance(from)
		}
	}
}
