package nearby

import (
	"context"

	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/filter"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
)

// Repository is the record store contract for proximity queries.
type Repository interface {
	FetchPlaces(
		ctx context.Context, pred filter.Predicate, sort mode.Mode, offset, limit int,
	) ([]place.Place, error)

	CountPlaces(ctx context.Context, pred filter.Predicate) (int, error)
}
