// Package memory serves the catalog from an in-process snapshot of a seed file.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/placedex/internal/db"
	"github.com/kailas-cloud/placedex/internal/domain/geo"
	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/filter"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
	domsuggest "github.com/kailas-cloud/placedex/internal/domain/suggest"
	"github.com/kailas-cloud/placedex/internal/seed"
)

var errDistanceWithoutPoint = errors.New("distance ordering requires a radius")

// entry is an active place with its lower-cased searchable text.
type entry struct {
	place    place.Place
	text     []string
	tagNames []string
}

// Store is an immutable catalog snapshot. It is safe for concurrent use.
type Store struct {
	entries   []entry
	provinces []domsuggest.ProvinceCandidate
	tags      []domsuggest.TagCandidate
}

// New builds a snapshot from a validated catalog.
func New(c *seed.Catalog) (*Store, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("memory store: %w", err)
	}

	categories := make(map[string]place.Category, len(c.Categories))
	for _, cat := range c.Categories {
		categories[cat.Name] = place.Category{ID: cat.ID, Name: cat.Name, Icon: cat.Icon}
	}
	provinces := make(map[string]place.Province, len(c.Provinces))
	s := &Store{}
	for _, p := range c.Provinces {
		provinces[p.Name] = place.Province{ID: p.ID, Name: p.Name, Region: p.Region, Image: p.Image}
		s.provinces = append(s.provinces, domsuggest.ProvinceCandidate{
			ID: p.ID, Name: p.Name, Region: p.Region, Image: p.Image,
		})
	}
	owners := make(map[string]place.Owner, len(c.Users))
	for _, u := range c.Users {
		owners[u.Username] = place.Owner{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName}
	}

	tagNames := c.TagNames()
	tagCounts := make(map[string]int, len(tagNames))

	for _, sp := range c.Places {
		placeTags := distinct(sp.Tags)
		for _, t := range placeTags {
			tagCounts[t]++
		}
		if !sp.IsActive() {
			continue
		}

		p := place.Place{
			ID:            sp.ID,
			Title:         sp.Title,
			Description:   sp.Description,
			Location:      sp.Location,
			MainImage:     sp.MainImage,
			Category:      categories[sp.Category],
			Province:      provinces[sp.Province],
			Owner:         owners[sp.Owner],
			Views:         sp.Views,
			LikesCount:    int64(len(distinct(sp.LikedBy))),
			CommentsCount: activeComments(sp.Comments),
			CreatedAt:     sp.CreatedAt.UTC(),
		}
		if sp.Latitude != nil {
			pt, err := geo.NewPoint(*sp.Latitude, *sp.Longitude)
			if err != nil {
				return nil, fmt.Errorf("memory store: place %d: %w", sp.ID, err)
			}
			p.Coordinates = &pt
		}

		lowered := make([]string, len(placeTags))
		for i, t := range placeTags {
			lowered[i] = strings.ToLower(t)
		}
		s.entries = append(s.entries, entry{
			place: p,
			text: []string{
				strings.ToLower(p.Title),
				strings.ToLower(p.Description),
				strings.ToLower(p.Location),
				strings.ToLower(p.Province.Name),
			},
			tagNames: lowered,
		})
	}

	for i, name := range tagNames {
		s.tags = append(s.tags, domsuggest.TagCandidate{
			ID: int64(i + 1), Name: name, PlaceCount: tagCounts[name],
		})
	}
	return s, nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

// FetchPlaces returns one page of places matching pred in sort order.
func (s *Store) FetchPlaces(
	ctx context.Context, pred filter.Predicate, sort mode.Mode, offset, limit int,
) ([]place.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, db.Classify(db.OpFetchPlaces, err, nil)
	}
	if _, ok := pred.Radius(); sort.NeedsDistance() && !ok {
		return nil, &db.Error{Op: db.OpFetchPlaces, Err: errDistanceWithoutPoint}
	}

	matched := s.match(pred)
	sortPlaces(matched, sort.Keys())

	if offset < 0 || offset >= len(matched) || limit <= 0 {
		return []place.Place{}, nil
	}
	end := len(matched)
	if limit < end-offset {
		end = offset + limit
	}
	return matched[offset:end], nil
}

// CountPlaces returns the number of places matching pred.
func (s *Store) CountPlaces(ctx context.Context, pred filter.Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, db.Classify(db.OpCountPlaces, err, nil)
	}
	return len(s.match(pred)), nil
}

// match evaluates pred over every active place. Places inside a radius get
// their distance set.
func (s *Store) match(pred filter.Predicate) []place.Place {
	clauses := pred.Row()
	r, hasRadius := pred.Radius()

	out := make([]place.Place, 0, len(s.entries))
	for i := range s.entries {
		e := &s.entries[i]
		if !e.matches(clauses) {
			continue
		}
		p := e.place
		if hasRadius {
			if !r.Center().Bound(r.Km()).Contains(p.Coordinates.Orb()) {
				continue
			}
			d := geo.DistanceKm(r.Center(), *p.Coordinates)
			if d > r.Km() {
				continue
			}
			p.Distance = &d
		}
		out = append(out, p)
	}
	return out
}

func (e *entry) matches(clauses []filter.Clause) bool {
	for _, c := range clauses {
		switch c.Kind() {
		case filter.ClauseKeyword:
			if !e.matchesKeyword(c.Value()) {
				return false
			}
		case filter.ClauseCategory:
			if e.place.Category.Name != c.Value() {
				return false
			}
		case filter.ClauseProvince:
			if e.place.Province.Name != c.Value() {
				return false
			}
		case filter.ClauseHasCoordinates:
			if !e.place.HasCoordinates() {
				return false
			}
		}
	}
	return true
}

func (e *entry) matchesKeyword(kw string) bool {
	for _, t := range e.text {
		if strings.Contains(t, kw) {
			return true
		}
	}
	for _, t := range e.tagNames {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

func sortPlaces(places []place.Place, keys []mode.Key) {
	sort.SliceStable(places, func(i, j int) bool {
		for _, k := range keys {
			c := compare(&places[i], &places[j], k.Column)
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compare(a, b *place.Place, col mode.Column) int {
	switch col {
	case mode.ColumnCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case mode.ColumnLikes:
		return cmpInt(a.LikesCount, b.LikesCount)
	case mode.ColumnComments:
		return cmpInt(a.CommentsCount, b.CommentsCount)
	case mode.ColumnViews:
		return cmpInt(a.Views, b.Views)
	case mode.ColumnDistance:
		return cmpFloat(*a.Distance, *b.Distance)
	case mode.ColumnID:
		return cmpInt(a.ID, b.ID)
	default:
		return 0
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func activeComments(comments []seed.Comment) int64 {
	var n int64
	for _, c := range comments {
		if c.IsActive() {
			n++
		}
	}
	return n
}

func distinct(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
