package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kailas-cloud/placedex/internal/domain/geo"
	"github.com/kailas-cloud/placedex/internal/domain/place"
	domsuggest "github.com/kailas-cloud/placedex/internal/domain/suggest"
)

// timeLayouts are the text forms drivers may return for created_at.
var timeLayouts = []string{
	"2006-01-02T15:04:05.000000000Z",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlace(rows rowScanner, withDistance bool) (place.Place, error) {
	var (
		p         place.Place
		lat, lng  sql.NullFloat64
		createdAt any
		distance  sql.NullFloat64
	)
	dest := []any{
		&p.ID, &p.Title, &p.Description, &p.Location, &p.MainImage,
		&lat, &lng, &p.Views, &createdAt,
		&p.Category.ID, &p.Category.Name, &p.Category.Icon,
		&p.Province.ID, &p.Province.Name, &p.Province.Region, &p.Province.Image,
		&p.Owner.ID, &p.Owner.Username, &p.Owner.DisplayName,
		&p.LikesCount, &p.CommentsCount,
	}
	if withDistance {
		dest = append(dest, &distance)
	}
	if err := rows.Scan(dest...); err != nil {
		return place.Place{}, fmt.Errorf("scan place: %w", err)
	}

	if lat.Valid && lng.Valid {
		pt, err := geo.NewPoint(lat.Float64, lng.Float64)
		if err != nil {
			return place.Place{}, fmt.Errorf("place %d: %w", p.ID, err)
		}
		p.Coordinates = &pt
	}

	t, err := parseTime(createdAt)
	if err != nil {
		return place.Place{}, fmt.Errorf("place %d created_at: %w", p.ID, err)
	}
	p.CreatedAt = t

	if distance.Valid {
		d := distance.Float64
		p.Distance = &d
	}
	return p, nil
}

// parseTime accepts the timestamp representations of both engines.
func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case []byte:
		return parseTimeText(string(t))
	case string:
		return parseTimeText(t)
	case int64:
		return time.Unix(t, 0).UTC(), nil
	case nil:
		return time.Time{}, fmt.Errorf("timestamp is NULL")
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func parseTimeText(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func scanPlaceCandidate(rows rowScanner) (domsuggest.PlaceCandidate, error) {
	var c domsuggest.PlaceCandidate
	err := rows.Scan(&c.ID, &c.Title, &c.Location, &c.MainImage, &c.ProvinceName, &c.CategoryName)
	return c, err
}

func scanProvinceCandidate(rows rowScanner) (domsuggest.ProvinceCandidate, error) {
	var c domsuggest.ProvinceCandidate
	err := rows.Scan(&c.ID, &c.Name, &c.Region, &c.Image)
	return c, err
}

func scanTagCandidate(rows rowScanner) (domsuggest.TagCandidate, error) {
	var c domsuggest.TagCandidate
	err := rows.Scan(&c.ID, &c.Name, &c.PlaceCount)
	return c, err
}
