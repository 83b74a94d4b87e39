package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dialect renders the SQL fragments that differ between engines.
type Dialect interface {
	// Name identifies the engine in logs and metrics.
	Name() string
	// Placeholder returns the bind marker for the n-th argument (1-based).
	Placeholder(n int) string
	// DistanceKm returns an expression computing the great-circle distance in
	// kilometers between (lat, lng) and (latCol, lngCol).
	DistanceKm(lat, lng, latCol, lngCol string) string
	// IsUnavailable reports engine errors that mean the store cannot serve requests.
	IsUnavailable(err error) bool
	// BindTime converts a timestamp into the value stored for the engine.
	BindTime(t time.Time) any
}

// SQLStore is an open relational record store.
type SQLStore interface {
	Dialect
	Pinger
	DB() *sql.DB
	Close() error
}

// WaitForReady polls Ping until the store responds or timeout expires.
func WaitForReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := p.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
