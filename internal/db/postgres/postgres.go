// Package postgres opens the Postgres record store through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kailas-cloud/placedex/internal/db"
)

// Compile-time check: Store implements db.SQLStore.
var _ db.SQLStore = (*Store)(nil)

// DriverName is the database/sql driver registered by lib/pq.
const DriverName = "postgres"

// Config holds connection parameters for a Postgres store.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store is a Postgres connection pool with the Postgres SQL dialect.
type Store struct {
	db *sql.DB
}

// NewStore opens a connection pool. It does not wait for the server; use
// db.WaitForReady for that.
func NewStore(cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	sqlDB, err := sql.Open(DriverName, cfg.DSN)
	if err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Store{db: sqlDB}, nil
}

// Migrate creates or upgrades the catalog schema.
func (s *Store) Migrate(ctx context.Context) error {
	return db.Migrate(ctx, s.db, s, Migrations)
}

// DB returns the underlying pool.
func (s *Store) DB() *sql.DB { return s.db }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return db.Classify(db.OpPing, err, s.IsUnavailable)
	}
	return nil
}

// Close shuts down the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name identifies the dialect.
func (s *Store) Name() string { return "postgres" }

// Placeholder renders "$n".
func (s *Store) Placeholder(n int) string { return db.DollarPlaceholder(n) }

// DistanceKm renders the spherical law of cosines with the acos argument
// clamped to [-1, 1].
func (s *Store) DistanceKm(lat, lng, latCol, lngCol string) string {
	return fmt.Sprintf(
		"(6371.0 * ACOS(LEAST(1.0, GREATEST(-1.0, "+
			"COS(RADIANS(%[1]s)) * COS(RADIANS(%[3]s)) * COS(RADIANS(%[4]s) - RADIANS(%[2]s)) + "+
			"SIN(RADIANS(%[1]s)) * SIN(RADIANS(%[3]s))))))",
		lat, lng, latCol, lngCol,
	)
}

// IsUnavailable reports connection-class and startup/shutdown server errors.
func (s *Store) IsUnavailable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch {
	case pqErr.Code.Class() == "08": // connection_exception
		return true
	case pqErr.Code == "57P01", pqErr.Code == "57P02", pqErr.Code == "57P03":
		return true
	case pqErr.Code == "53300": // too_many_connections
		return true
	}
	return false
}

// BindTime stores timestamps natively.
func (s *Store) BindTime(t time.Time) any { return t.UTC() }
