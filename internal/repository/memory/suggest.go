package memory

import (
	"context"

	"github.com/kailas-cloud/placedex/internal/db"
	domsuggest "github.com/kailas-cloud/placedex/internal/domain/suggest"
)

// MatchPlaces returns active places whose title or location contains query.
func (s *Store) MatchPlaces(ctx context.Context, query string, limit int) ([]domsuggest.PlaceCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, db.Classify(db.OpMatchPlaces, err, nil)
	}
	var out []domsuggest.PlaceCandidate
	for i := range s.entries {
		p := &s.entries[i].place
		if domsuggest.Contains(p.Title, query) || domsuggest.Contains(p.Location, query) {
			out = append(out, domsuggest.PlaceCandidate{
				ID:           p.ID,
				Title:        p.Title,
				Location:     p.Location,
				MainImage:    p.MainImage,
				ProvinceName: p.Province.Name,
				CategoryName: p.Category.Name,
			})
		}
	}
	domsuggest.RankPlaces(query, out)
	return capped(out, limit), nil
}

// MatchProvinces returns provinces whose name contains query.
func (s *Store) MatchProvinces(ctx context.Context, query string, limit int) ([]domsuggest.ProvinceCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, db.Classify(db.OpMatchProvinces, err, nil)
	}
	var out []domsuggest.ProvinceCandidate
	for _, p := range s.provinces {
		if domsuggest.Contains(p.Name, query) {
			out = append(out, p)
		}
	}
	domsuggest.RankProvinces(query, out)
	return capped(out, limit), nil
}

// MatchTags returns tags whose name contains query, with their place counts.
func (s *Store) MatchTags(ctx context.Context, query string, limit int) ([]domsuggest.TagCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, db.Classify(db.OpMatchTags, err, nil)
	}
	var out []domsuggest.TagCandidate
	for _, t := range s.tags {
		if domsuggest.Contains(t.Name, query) {
			out = append(out, t)
		}
	}
	domsuggest.RankTags(query, out)
	return capped(out, limit), nil
}

func capped[T any](s []T, limit int) []T {
	if limit >= 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
