// Package place holds the read models of the catalog: places and the
// reference entities they point to.
package place

import (
	"time"

	"github.com/kailas-cloud/placedex/internal/domain/geo"
)

// Category is a named grouping a place belongs to.
type Category struct {
	ID   int64
	Name string
	Icon string
}

// Province is the administrative area a place is located in.
type Province struct {
	ID     int64
	Name   string
	Region string
	Image  string
}

// Owner is the user that published a place.
type Owner struct {
	ID          int64
	Username    string
	DisplayName string
}

// Tag is a free-form label attached to places.
type Tag struct {
	ID   int64
	Name string
}

// Place is an active catalog entry with its joined references and aggregates.
type Place struct {
	ID          int64
	Title       string
	Description string
	Location    string
	MainImage   string
	Category    Category
	Province    Province
	Owner       Owner

	// Coordinates is nil when the place has no position.
	Coordinates *geo.Point

	Views         int64
	LikesCount    int64
	CommentsCount int64
	CreatedAt     time.Time

	// Distance is set by proximity queries, in kilometers from the query point.
	Distance *float64
}

// HasCoordinates reports whether the place can take part in distance computation.
func (p *Place) HasCoordinates() bool {
	return p.Coordinates != nil
}

// SetDistance records the distance from the given query point.
// It is a no-op for places without coordinates.
func (p *Place) SetDistance(from geo.Point) {
	if p.Coordinates == nil {
		return
	}
	d := geo.DistanceKm(from, *p.Coordinates)
	p.Distance = &d
}
