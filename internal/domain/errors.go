package domain

import "errors"

var (
	// ErrInvalidCoordinate signals a latitude/longitude that is not a finite number in range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrMissingCoordinates signals a proximity query without a query point.
	ErrMissingCoordinates = errors.New("missing coordinates")
	// ErrStoreUnavailable signals that the record store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStoreTimeout signals that a record store call exceeded its deadline.
	ErrStoreTimeout = errors.New("store timeout")
)

// Kind is a stable, machine-checkable error code.
type Kind string

// Error kinds surfaced to callers.
const (
	KindInvalidCoordinate  Kind = "invalid_coordinate"
	KindMissingCoordinates Kind = "missing_coordinates"
	KindStoreUnavailable   Kind = "store_unavailable"
	KindStoreTimeout       Kind = "store_timeout"
	KindInternal           Kind = "internal"
)

// KindOf classifies err into one of the stable kinds.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidCoordinate):
		return KindInvalidCoordinate
	case errors.Is(err, ErrMissingCoordinates):
		return KindMissingCoordinates
	case errors.Is(err, ErrStoreTimeout):
		return KindStoreTimeout
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}

// IsClientError reports whether err was caused by caller input.
func IsClientError(err error) bool {
	k := KindOf(err)
	return k == KindInvalidCoordinate || k == KindMissingCoordinates
}
