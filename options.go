package placedex

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver       string // "postgres", "sqlite" or "memory"
	dsn          string
	path         string
	seedFile     string
	maxOpenConns int

	queryTimeout     time.Duration
	readinessTimeout time.Duration

	pageSize       int
	nearbyRadiusKm float64
	searchRadiusKm float64
	nearbyLimit    int
	suggestLimit   int
	popularLimit   int

	logger *zap.Logger
}

// WithPostgres connects the client to a Postgres database.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "postgres"
		c.dsn = dsn
	})
}

// WithSQLite opens (or creates) an sqlite database file.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sqlite"
		c.path = path
	})
}

// WithMemory serves the catalog in seedFile from memory.
func WithMemory(seedFile string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "memory"
		c.seedFile = seedFile
	})
}

// WithSeedFile loads a YAML catalog into an empty Postgres or sqlite store.
func WithSeedFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedFile = path
	})
}

// WithMaxOpenConns caps the connection pool.
func WithMaxOpenConns(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxOpenConns = n
	})
}

// WithQueryTimeout bounds every store statement. Defaults to 5s.
func WithQueryTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.queryTimeout = d
	})
}

// WithReadinessTimeout bounds the initial wait for the database. Defaults to 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithPageSize sets the page size used when a request has none. Defaults to 10.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithNearbyDefaults sets the default radii (km) of Nearby and SearchNearby
// and the default Nearby limit. Zero keeps the built-in default.
func WithNearbyDefaults(nearbyRadiusKm, searchRadiusKm float64, nearbyLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.nearbyRadiusKm = nearbyRadiusKm
		c.searchRadiusKm = searchRadiusKm
		c.nearbyLimit = nearbyLimit
	})
}

// WithSuggestLimit sets the default number of suggestions. Defaults to 5.
func WithSuggestLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.suggestLimit = n
	})
}

// WithPopularLimit sets the default size of Popular. Defaults to 6.
func WithPopularLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.popularLimit = n
	})
}

// WithLogger sets the logger for store calls. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
