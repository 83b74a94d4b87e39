package catalog

import (
	"errors"
	"strings"

	"github.com/kailas-cloud/placedex/internal/db"
	"github.com/kailas-cloud/placedex/internal/domain/search/filter"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
)

// matchedAlias names the derived table every paginated query selects from.
const matchedAlias = "matched"

var errDistanceWithoutPoint = errors.New("distance ordering requires a radius")

const (
	likesCountColumn = "(SELECT COUNT(DISTINCT l.like_id) FROM likes l " +
		"WHERE l.place_id = p.place_id) AS likes_count"
	commentsCountColumn = "(SELECT COUNT(*) FROM comments cm " +
		"WHERE cm.place_id = p.place_id AND cm.is_active = TRUE) AS comments_count"
)

// placeColumns is the projection scanned by scanPlace, in order.
var placeColumns = []string{
	"p.place_id", "p.title", "p.description", "p.location", "p.main_image",
	"p.latitude", "p.longitude", "p.views", "p.created_at",
	"c.category_id", "c.category_name", "c.icon",
	"pr.province_id", "pr.province_name", "pr.region", "pr.image",
	"u.user_id", "u.username", "u.display_name",
	likesCountColumn, commentsCountColumn,
}

// keywordColumns maps keyword fields to the stored columns they match.
var keywordColumns = map[filter.Field]string{
	filter.FieldTitle:        "p.title",
	filter.FieldDescription:  "p.description",
	filter.FieldLocation:     "p.location",
	filter.FieldProvinceName: "pr.province_name",
}

// matchedPlaces renders the active places satisfying the row clauses of
// pred. With a radius it also projects the distance column and narrows rows
// to the radius bounding box; the exact bound applies on the derived table.
func matchedPlaces(d db.Dialect, pred filter.Predicate) *db.SelectBuilder {
	b := db.Select(d, placeColumns...)

	r, hasRadius := pred.Radius()
	if hasRadius {
		lat, lng := b.Arg(r.Center().Lat()), b.Arg(r.Center().Lng())
		b.Column(d.DistanceKm(lat, lng, "p.latitude", "p.longitude") + " AS distance")
	}

	b.From("places p").
		Join("JOIN categories c ON c.category_id = p.category_id").
		Join("JOIN provinces pr ON pr.province_id = p.province_id").
		Join("JOIN users u ON u.user_id = p.user_id").
		Where("p.is_active = TRUE")

	for _, c := range pred.Row() {
		switch c.Kind() {
		case filter.ClauseKeyword:
			b.Where(keywordCondition(b, c))
		case filter.ClauseCategory:
			b.Where("c.category_name = " + b.Arg(c.Value()))
		case filter.ClauseProvince:
			b.Where("pr.province_name = " + b.Arg(c.Value()))
		case filter.ClauseHasCoordinates:
			b.Where("p.latitude IS NOT NULL AND p.longitude IS NOT NULL")
		}
	}

	if hasRadius {
		box := r.Center().Bound(r.Km())
		b.Where("p.latitude BETWEEN " + b.Arg(box.Min.Lat()) + " AND " + b.Arg(box.Max.Lat()))
		b.Where("p.longitude BETWEEN " + b.Arg(box.Min.Lon()) + " AND " + b.Arg(box.Max.Lon()))
	}

	return b
}

func keywordCondition(b *db.SelectBuilder, c filter.Clause) string {
	pattern := containsPattern(c.Value())
	terms := make([]string, 0, len(c.Fields()))
	for _, f := range c.Fields() {
		if f == filter.FieldTagName {
			terms = append(terms, "EXISTS (SELECT 1 FROM place_tags pt "+
				"JOIN tags t ON t.tag_id = pt.tag_id "+
				"WHERE pt.place_id = p.place_id AND "+likeLower("t.tag_name", b.Arg(pattern))+")")
			continue
		}
		terms = append(terms, likeLower(keywordColumns[f], b.Arg(pattern)))
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

// buildFetch renders one page of pred in sort order.
func buildFetch(d db.Dialect, pred filter.Predicate, sort mode.Mode, offset, limit int) (string, []any, error) {
	r, hasRadius := pred.Radius()
	if sort.NeedsDistance() && !hasRadius {
		return "", nil, errDistanceWithoutPoint
	}

	b := matchedPlaces(d, pred).Wrap(matchedAlias)
	if hasRadius {
		b.Where(matchedAlias + ".distance <= " + b.Arg(r.Km()))
	}
	for _, k := range sort.Keys() {
		dir := " ASC"
		if k.Desc {
			dir = " DESC"
		}
		b.OrderBy(matchedAlias + "." + string(k.Column) + dir)
	}
	b.Limit(limit).Offset(offset)

	q, args := b.Build()
	return q, args, nil
}

// buildCount renders the total of pred over the same derived table as buildFetch.
func buildCount(d db.Dialect, pred filter.Predicate) (string, []any) {
	b := matchedPlaces(d, pred).Wrap(matchedAlias, "COUNT(*)")
	if r, ok := pred.Radius(); ok {
		b.Where(matchedAlias + ".distance <= " + b.Arg(r.Km()))
	}
	return b.Build()
}

func buildMatchPlaces(d db.Dialect, query string, limit int) (string, []any) {
	q := strings.ToLower(query)
	b := db.Select(d,
		"p.place_id", "p.title", "p.location", "p.main_image", "pr.province_name", "c.category_name",
	).
		From("places p").
		Join("JOIN provinces pr ON pr.province_id = p.province_id").
		Join("JOIN categories c ON c.category_id = p.category_id").
		Where("p.is_active = TRUE")
	b.Where("(" + likeLower("p.title", b.Arg(containsPattern(q))) +
		" OR " + likeLower("p.location", b.Arg(containsPattern(q))) + ")")
	b.OrderBy("CASE WHEN " + likeLower("p.title", b.Arg(prefixPattern(q))) + " THEN 0" +
		" WHEN " + likeLower("p.title", b.Arg(containsPattern(q))) + " THEN 1 ELSE 2 END")
	b.OrderBy("LOWER(p.title)").OrderBy("p.place_id").Limit(limit)
	return b.Build()
}

func buildMatchProvinces(d db.Dialect, query string, limit int) (string, []any) {
	q := strings.ToLower(query)
	b := db.Select(d, "province_id", "province_name", "region", "image").From("provinces")
	b.Where(likeLower("province_name", b.Arg(containsPattern(q))))
	b.OrderBy("CASE WHEN " + likeLower("province_name", b.Arg(prefixPattern(q))) + " THEN 0 ELSE 1 END")
	b.OrderBy("LOWER(province_name)").OrderBy("province_id").Limit(limit)
	return b.Build()
}

func buildMatchTags(d db.Dialect, query string, limit int) (string, []any) {
	q := strings.ToLower(query)
	b := db.Select(d, "t.tag_id", "t.tag_name", "COUNT(pt.place_id) AS place_count").
		From("tags t").
		Join("LEFT JOIN place_tags pt ON pt.tag_id = t.tag_id")
	b.Where(likeLower("t.tag_name", b.Arg(containsPattern(q))))
	b.GroupBy("t.tag_id").GroupBy("t.tag_name")
	b.OrderBy("CASE WHEN " + likeLower("t.tag_name", b.Arg(prefixPattern(q))) + " THEN 0 ELSE 1 END")
	b.OrderBy("place_count DESC").OrderBy("LOWER(t.tag_name)").OrderBy("t.tag_id").Limit(limit)
	return b.Build()
}

func likeLower(col, placeholder string) string {
	return "LOWER(" + col + ") LIKE " + placeholder + ` ESCAPE '\'`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string { return "%" + likeEscaper.Replace(s) + "%" }

func prefixPattern(s string) string { return likeEscaper.Replace(s) + "%" }
