package geo

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/placedex/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by every distance computation.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two validated points.
func DistanceKm(a, b Point) float64 {
	return distanceKm(a.Lat(), a.Lng(), b.Lat(), b.Lng())
}

// Distance returns the great-circle distance in kilometers between two raw
// coordinate pairs. It fails only on non-finite input.
func Distance(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if !isFinite(lat1) || !isFinite(lng1) || !isFinite(lat2) || !isFinite(lng2) {
		return 0, fmt.Errorf("%w: coordinates must be finite numbers", domain.ErrInvalidCoordinate)
	}
	return distanceKm(lat1, lng1, lat2, lng2), nil
}

// distanceKm is the spherical law of cosines form:
// R * acos(cos(lat1) cos(lat2) cos(lng2-lng1) + sin(lat1) sin(lat2)).
func distanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	cosine := math.Cos(lat1r)*math.Cos(lat2r)*math.Cos(dLng) + math.Sin(lat1r)*math.Sin(lat2r)
	// Rounding can push the argument past ±1 for coincident or antipodal points.
	cosine = ClampUnit(cosine)

	return EarthRadiusKm * math.Acos(cosine)
}

// ClampUnit clamps x to [-1, 1].
func ClampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
