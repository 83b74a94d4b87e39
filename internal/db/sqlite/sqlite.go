// Package sqlite opens the embedded record store through modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"time"

	"modernc.org/sqlite"

	"github.com/kailas-cloud/placedex/internal/db"
	"github.com/kailas-cloud/placedex/internal/domain/geo"
)

// Compile-time check: Store implements db.SQLStore.
var _ db.SQLStore = (*Store)(nil)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// DistanceFunc is the SQL function computing great-circle kilometers.
const DistanceFunc = "haversine_km"

// TimeLayout is the fixed-width text form of stored timestamps; it sorts lexically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// Primary result codes treated as "store unavailable".
const (
	codeBusy     = 5
	codeLocked   = 6
	codeCantOpen = 14
)

var registerOnce sync.Once
var registerErr error

// Config holds parameters for an sqlite store.
type Config struct {
	// Path is the database file. ":memory:" is supported with a single connection.
	Path         string
	MaxOpenConns int
}

// Store is an sqlite database with the sqlite SQL dialect.
type Store struct {
	db *sql.DB
}

// NewStore opens the database file, enables WAL and foreign keys and
// registers the distance function.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if err := registerFunctions(); err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}

	sqlDB, err := sql.Open(DriverName, cfg.Path)
	if err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}

	conns := cfg.MaxOpenConns
	if conns <= 0 {
		conns = 4
	}
	if cfg.Path == ":memory:" {
		// Every connection to ":memory:" is a separate database.
		conns = 1
	}
	sqlDB.SetMaxOpenConns(conns)
	sqlDB.SetMaxIdleConns(conns)
	sqlDB.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			_ = sqlDB.Close()
			return nil, &db.Error{Op: db.OpOpen, Err: fmt.Errorf("%s: %w", pragma, err)}
		}
	}

	return &Store{db: sqlDB}, nil
}

// registerFunctions installs haversine_km(lat1, lng1, lat2, lng2). NULL in,
// NULL out, so places without coordinates never match a radius.
func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction(
			DistanceFunc, 4,
			func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				coords := make([]float64, len(args))
				for i, a := range args {
					switch v := a.(type) {
					case nil:
						return nil, nil
					case float64:
						coords[i] = v
					case int64:
						coords[i] = float64(v)
					default:
						return nil, fmt.Errorf("%s: argument %d has type %T", DistanceFunc, i+1, a)
					}
				}
				return geo.Distance(coords[0], coords[1], coords[2], coords[3])
			},
		)
	})
	return registerErr
}

// Migrate creates or upgrades the catalog schema.
func (s *Store) Migrate(ctx context.Context) error {
	return db.Migrate(ctx, s.db, s, Migrations)
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Ping checks that the database file is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return db.Classify(db.OpPing, err, s.IsUnavailable)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name identifies the dialect.
func (s *Store) Name() string { return "sqlite" }

// Placeholder renders "?".
func (s *Store) Placeholder(n int) string { return db.QuestionPlaceholder(n) }

// DistanceKm calls the registered Go distance function.
func (s *Store) DistanceKm(lat, lng, latCol, lngCol string) string {
	return fmt.Sprintf("%s(%s, %s, %s, %s)", DistanceFunc, lat, lng, latCol, lngCol)
}

// IsUnavailable reports busy, locked and cannot-open results.
func (s *Store) IsUnavailable(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case codeBusy, codeLocked, codeCantOpen:
		return true
	}
	return false
}

// BindTime stores timestamps as fixed-width UTC text.
func (s *Store) BindTime(t time.Time) any { return t.UTC().Format(TimeLayout) }
