package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/kailas-cloud/placedex/internal/domain"
)

// Point is a validated query location (latitude/longitude in degrees).
type Point struct {
	p orb.Point
}

// NewPoint validates and creates a Point.
func NewPoint(lat, lng float64) (Point, error) {
	if !isFinite(lat) || !isFinite(lng) {
		return Point{}, fmt.Errorf("%w: coordinates must be finite numbers", domain.ErrInvalidCoordinate)
	}
	if !ValidateCoordinates(lat, lng) {
		return Point{}, fmt.Errorf("%w: lat %g / lng %g out of range", domain.ErrInvalidCoordinate, lat, lng)
	}
	return Point{p: orb.Point{lng, lat}}, nil
}

// ParsePoint builds a Point from raw request values.
// Either value empty yields ErrMissingCoordinates; unparsable values yield ErrInvalidCoordinate.
func ParsePoint(lat, lng string) (Point, error) {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" || lng == "" {
		return Point{}, fmt.Errorf("%w: latitude and longitude are required", domain.ErrMissingCoordinates)
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: latitude %q is not a number", domain.ErrInvalidCoordinate, lat)
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: longitude %q is not a number", domain.ErrInvalidCoordinate, lng)
	}
	return NewPoint(la, ln)
}

// Lat returns the latitude in degrees.
func (p Point) Lat() float64 { return p.p.Lat() }

// Lng returns the longitude in degrees.
func (p Point) Lng() float64 { return p.p.Lon() }

// Orb returns the point as an orb.Point (lon, lat order).
func (p Point) Orb() orb.Point { return p.p }

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.Lat(), p.Lng())
}

// boundPad widens boxes so rounding never excludes a point on the circle.
const boundPad = 1e-9

// Bound returns a lat/lng box that contains every point within radiusKm.
// Boxes touching a pole or the antimeridian widen to the full longitude range.
func (p Point) Bound(radiusKm float64) orb.Bound {
	r := radiusKm / EarthRadiusKm
	dLat := r*180/math.Pi + boundPad
	minLat, maxLat := p.Lat()-dLat, p.Lat()+dLat
	if minLat <= -90 || maxLat >= 90 {
		return orb.Bound{
			Min: orb.Point{-180, math.Max(minLat, -90)},
			Max: orb.Point{180, math.Min(maxLat, 90)},
		}
	}

	s := math.Sin(r) / math.Cos(p.Lat()*math.Pi/180)
	if r >= math.Pi/2 || s >= 1 {
		return orb.Bound{Min: orb.Point{-180, minLat}, Max: orb.Point{180, maxLat}}
	}
	dLng := math.Asin(s)*180/math.Pi + boundPad
	minLng, maxLng := p.Lng()-dLng, p.Lng()+dLng
	if minLng < -180 || maxLng > 180 {
		minLng, maxLng = -180, 180
	}
	return orb.Bound{Min: orb.Point{minLng, minLat}, Max: orb.Point{maxLng, maxLat}}
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
