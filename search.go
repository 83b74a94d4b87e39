package placedex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/placedex/internal/domain"
	"github.com/kailas-cloud/placedex/internal/domain/geo"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
	"github.com/kailas-cloud/placedex/internal/domain/search/page"
	nearbyuc "github.com/kailas-cloud/placedex/internal/usecase/nearby"
	searchuc "github.com/kailas-cloud/placedex/internal/usecase/search"
)

// SearchRequest is a keyword search or listing request. Zero values select defaults.
type SearchRequest struct {
	// Query is matched case-insensitively against title, description,
	// location, province and tag names. Empty matches everything.
	Query    string
	Category string
	Province string
	Sort     SortMode
	Page     int
	Limit    int
}

// NearbyRequest is a proximity query.
type NearbyRequest struct {
	// At is required; nil yields ErrMissingCoordinates.
	At       *Coordinates
	RadiusKm float64
	Category string
	Query    string
	Page     int
	Limit    int
}

// Search runs a paginated keyword search.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*PlacePage, error) {
	res, err := c.searchSvc.Search(ctx, c.searchQuery(req))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return pageFromDomain(res), nil
}

// List returns a paginated listing; req.Query is ignored.
func (c *Client) List(ctx context.Context, req SearchRequest) (*PlacePage, error) {
	res, err := c.searchSvc.List(ctx, c.searchQuery(req))
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return pageFromDomain(res), nil
}

// Popular returns the most liked places, optionally within a category.
func (c *Client) Popular(ctx context.Context, category string, limit int) ([]Place, error) {
	items, err := c.searchSvc.Popular(ctx, category, limit)
	if err != nil {
		return nil, fmt.Errorf("popular: %w", err)
	}
	return placesFromDomain(items), nil
}

// Nearby returns up to req.Limit places within the radius, closest first.
// req.Page is ignored.
func (c *Client) Nearby(ctx context.Context, req NearbyRequest) ([]Place, error) {
	q, err := nearbyQuery(req)
	if err != nil {
		return nil, fmt.Errorf("nearby: %w", err)
	}
	items, err := c.nearbySvc.Nearby(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("nearby: %w", err)
	}
	return placesFromDomain(items), nil
}

// SearchNearby returns one page of places within the radius ordered by
// distance, then newest first.
func (c *Client) SearchNearby(ctx context.Context, req NearbyRequest) (*PlacePage, error) {
	q, err := nearbyQuery(req)
	if err != nil {
		return nil, fmt.Errorf("search nearby: %w", err)
	}
	res, err := c.nearbySvc.SearchNearby(ctx, q, page.NewWithDefault(req.Page, req.Limit, c.pageSize))
	if err != nil {
		return nil, fmt.Errorf("search nearby: %w", err)
	}
	return pageFromDomain(res), nil
}

// Suggest returns autocomplete entries: places, then provinces, then tags.
// A blank query returns no entries.
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	candidates, err := c.suggestSvc.Suggest(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	out := make([]Suggestion, len(candidates))
	for i, cand := range candidates {
		out[i] = suggestionFromDomain(cand)
	}
	return out, nil
}

func (c *Client) searchQuery(req SearchRequest) searchuc.Query {
	return searchuc.Query{
		Keyword:  req.Query,
		Category: req.Category,
		Province: req.Province,
		Sort:     mode.Parse(string(req.Sort)),
		Page:     page.NewWithDefault(req.Page, req.Limit, c.pageSize),
	}
}

func nearbyQuery(req NearbyRequest) (nearbyuc.Query, error) {
	if req.At == nil {
		return nearbyuc.Query{}, domain.ErrMissingCoordinates
	}
	pt, err := geo.NewPoint(req.At.Lat, req.At.Lng)
	if err != nil {
		return nearbyuc.Query{}, err
	}
	return nearbyuc.Query{
		Point:    &pt,
		RadiusKm: req.RadiusKm,
		Category: req.Category,
		Keyword:  req.Query,
		Limit:    req.Limit,
	}, nil
}
