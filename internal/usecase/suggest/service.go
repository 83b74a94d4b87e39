package suggest

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	domsuggest "github.com/kailas-cloud/placedex/internal/domain/suggest"
)

// DefaultLimit is the number of suggestions returned when none is requested.
const DefaultLimit = 5

// Service blends place, province and tag matches into one autocomplete list.
type Service struct {
	repo         Repository
	defaultLimit int
}

// New creates a suggest service.
func New(repo Repository) *Service {
	return &Service{repo: repo, defaultLimit: DefaultLimit}
}

// WithDefaultLimit overrides DefaultLimit.
func (s *Service) WithDefaultLimit(n int) *Service {
	if n > 0 {
		s.defaultLimit = n
	}
	return s
}

// Suggest returns at most limit candidates for query. A blank query returns
// an empty list without touching the store.
func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]domsuggest.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domsuggest.Candidate{}, nil
	}
	if limit < 1 {
		limit = s.defaultLimit
	}

	var (
		places    []domsuggest.PlaceCandidate
		provinces []domsuggest.ProvinceCandidate
		tags      []domsuggest.TagCandidate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if places, err = s.repo.MatchPlaces(gctx, query, limit); err != nil {
			return fmt.Errorf("match places: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if provinces, err = s.repo.MatchProvinces(gctx, query, limit); err != nil {
			return fmt.Errorf("match provinces: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if tags, err = s.repo.MatchTags(gctx, query, limit); err != nil {
			return fmt.Errorf("match tags: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	domsuggest.MarkPlaces(query, places)
	return domsuggest.Merge(places, provinces, tags, limit), nil
}
