// Package storage opens the configured record store and wraps it for the engines.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/placedex/internal/db"
	"github.com/kailas-cloud/placedex/internal/db/postgres"
	"github.com/kailas-cloud/placedex/internal/db/sqlite"
	"github.com/kailas-cloud/placedex/internal/repository/catalog"
	"github.com/kailas-cloud/placedex/internal/repository/instrumented"
	"github.com/kailas-cloud/placedex/internal/repository/memory"
	"github.com/kailas-cloud/placedex/internal/seed"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const defaultReadinessTimeout = 10 * time.Second

// Config selects and tunes the record store.
type Config struct {
	Driver       string
	DSN          string
	Path         string
	MaxOpenConns int
	QueryTimeout time.Duration
	// ReadinessTimeout bounds the initial connectivity wait.
	ReadinessTimeout time.Duration

	// SeedFile is required for the memory driver. Relational stores load it
	// only when they hold no places yet.
	SeedFile string
	// Catalog, when set, is used instead of SeedFile.
	Catalog *seed.Catalog
}

// Handle is an open record store.
type Handle struct {
	// Catalog serves every engine read, instrumented with store metrics.
	Catalog *instrumented.Repo
	// Engine is the driver name used in logs and metrics.
	Engine string

	close func() error
}

// Close releases the underlying connection pool.
func (h *Handle) Close() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}

// relational is a SQL store that can create its own schema.
type relational interface {
	db.SQLStore
	Migrate(ctx context.Context) error
}

// Open connects to the store named by cfg.Driver, migrates and seeds it.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Handle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case DriverMemory:
		c, err := loadCatalog(cfg)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, errors.New("memory store: seed file is required")
		}
		store, err := memory.New(c)
		if err != nil {
			return nil, fmt.Errorf("memory store: %w", err)
		}
		logger.Info("Memory store loaded", zap.Int("places", len(c.Places)))
		return &Handle{
			Catalog: instrumented.New(store, DriverMemory, logger),
			Engine:  DriverMemory,
			close:   store.Close,
		}, nil

	case DriverPostgres, DriverSQLite:
		store, err := openRelational(cfg)
		if err != nil {
			return nil, err
		}
		if err := prepare(ctx, store, cfg, logger); err != nil {
			_ = store.Close()
			return nil, err
		}
		repo := catalog.New(store)
		if cfg.QueryTimeout > 0 {
			repo = repo.WithQueryTimeout(cfg.QueryTimeout)
		}
		return &Handle{
			Catalog: instrumented.New(repo, cfg.Driver, logger),
			Engine:  cfg.Driver,
			close:   store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openRelational(cfg Config) (relational, error) {
	if cfg.Driver == DriverPostgres {
		s, err := postgres.NewStore(postgres.Config{DSN: cfg.DSN, MaxOpenConns: cfg.MaxOpenConns})
		if err != nil {
			return nil, fmt.Errorf("create postgres store: %w", err)
		}
		return s, nil
	}
	s, err := sqlite.NewStore(sqlite.Config{Path: cfg.Path, MaxOpenConns: cfg.MaxOpenConns})
	if err != nil {
		return nil, fmt.Errorf("create sqlite store: %w", err)
	}
	return s, nil
}

func prepare(ctx context.Context, store relational, cfg Config, logger *zap.Logger) error {
	timeout := cfg.ReadinessTimeout
	if timeout <= 0 {
		timeout = defaultReadinessTimeout
	}
	if err := db.WaitForReady(ctx, store, timeout); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	c, err := loadCatalog(cfg)
	if err != nil || c == nil {
		return err
	}
	empty, err := isEmpty(ctx, store)
	if err != nil {
		return err
	}
	if !empty {
		logger.Info("Seed skipped, store already has places")
		return nil
	}
	if err := seed.Insert(ctx, store, c); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("Store seeded", zap.Int("places", len(c.Places)))
	return nil
}

func loadCatalog(cfg Config) (*seed.Catalog, error) {
	if cfg.Catalog != nil {
		if err := cfg.Catalog.Validate(); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		return cfg.Catalog, nil
	}
	if cfg.SeedFile == "" {
		return nil, nil
	}
	c, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return c, nil
}

func isEmpty(ctx context.Context, store db.SQLStore) (bool, error) {
	var n int
	if err := store.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM places").Scan(&n); err != nil {
		return false, fmt.Errorf("count places: %w", err)
	}
	return n == 0, nil
}
