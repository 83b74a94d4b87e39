package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/kailas-cloud/placedex/internal/domain"
)

// Op names a store operation for error context and metrics.
const (
	OpOpen           = "open"
	OpMigrate        = "migrate"
	OpPing           = "ping"
	OpFetchPlaces    = "fetch_places"
	OpCountPlaces    = "count_places"
	OpMatchPlaces    = "match_places"
	OpMatchProvinces = "match_provinces"
	OpMatchTags      = "match_tags"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Classify wraps err with op and tags it with ErrStoreTimeout or
// ErrStoreUnavailable when it is a deadline or connectivity failure.
// unavailable adds engine-specific connectivity checks and may be nil.
func Classify(op string, err error, unavailable func(error) bool) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		err = fmt.Errorf("%w: %w", domain.ErrStoreTimeout, err)
	case isConnError(err) || unavailable != nil && unavailable(err):
		err = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return &Error{Op: op, Err: err}
}

func isConnError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
