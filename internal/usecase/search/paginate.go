package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/filter"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
	"github.com/kailas-cloud/placedex/internal/domain/search/page"
	"github.com/kailas-cloud/placedex/internal/domain/search/result"
)

// Paginate fetches one page and the total for the same predicate concurrently.
func Paginate(
	ctx context.Context, repo Repository,
	pred filter.Predicate, sort mode.Mode, pg page.Page,
) (result.Paged, error) {
	var (
		items []place.Place
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = repo.FetchPlaces(gctx, pred, sort, pg.Offset(), pg.Size())
		if err != nil {
			return fmt.Errorf("fetch places: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = repo.CountPlaces(gctx, pred)
		if err != nil {
			return fmt.Errorf("count places: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return result.Paged{}, err
	}

	return result.New(items, total, pg), nil
}
