package placedex

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/placedex/internal/storage"
	nearbyuc "github.com/kailas-cloud/placedex/internal/usecase/nearby"
	searchuc "github.com/kailas-cloud/placedex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/placedex/internal/usecase/suggest"
)

// Client is the placedex entry point. It is safe for concurrent use.
type Client struct {
	store      *storage.Handle
	searchSvc  *searchuc.Service
	nearbySvc  *nearbyuc.Service
	suggestSvc *suggestuc.Service
	pageSize   int
}

// New opens the configured store and creates a Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("placedex: store required (use WithPostgres, WithSQLite or WithMemory)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := storage.Open(context.Background(), storage.Config{
		Driver:           cfg.driver,
		DSN:              cfg.dsn,
		Path:             cfg.path,
		SeedFile:         cfg.seedFile,
		MaxOpenConns:     cfg.maxOpenConns,
		QueryTimeout:     cfg.queryTimeout,
		ReadinessTimeout: cfg.readinessTimeout,
	}, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("placedex: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store *storage.Handle, cfg *clientConfig) *Client {
	return &Client{
		store:     store,
		searchSvc: searchuc.New(store.Catalog).WithPopularLimit(cfg.popularLimit),
		nearbySvc: nearbyuc.New(store.Catalog).
			WithDefaults(cfg.nearbyRadiusKm, cfg.searchRadiusKm, cfg.nearbyLimit),
		suggestSvc: suggestuc.New(store.Catalog).WithDefaultLimit(cfg.suggestLimit),
		pageSize:   cfg.pageSize,
	}
}

// Close releases all resources.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Catalog.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Engine names the store the client reads from.
func (c *Client) Engine() string {
	return c.store.Engine
}
