package placedex

import "github.com/kailas-cloud/placedex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidCoordinate  = domain.ErrInvalidCoordinate
	ErrMissingCoordinates = domain.ErrMissingCoordinates
	ErrStoreUnavailable   = domain.ErrStoreUnavailable
	ErrStoreTimeout       = domain.ErrStoreTimeout
)

// ErrorKind returns the stable code of err: invalid_coordinate,
// missing_coordinates, store_unavailable, store_timeout or internal.
func ErrorKind(err error) string {
	return string(domain.KindOf(err))
}

// IsClientError reports whether err was caused by request input.
func IsClientError(err error) bool {
	return domain.IsClientError(err)
}
