package suggest

import (
	"context"

	domsuggest "github.com/kailas-cloud/placedex/internal/domain/suggest"
)

// Repository fetches the three candidate pools. Each pool comes back in its
// own ranking order, capped at limit.
type Repository interface {
	MatchPlaces(ctx context.Context, query string, limit int) ([]domsuggest.PlaceCandidate, error)
	MatchProvinces(ctx context.Context, query string, limit int) ([]domsuggest.ProvinceCandidate, error)
	MatchTags(ctx context.Context, query string, limit int) ([]domsuggest.TagCandidate, error)
}
