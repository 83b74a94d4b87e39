// Command placedex-mcp serves place search as MCP tools over stdio.
// Logs go to stderr; stdout carries the protocol.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/placedex"
	"github.com/kailas-cloud/placedex/internal/config"
	logpkg "github.com/kailas-cloud/placedex/internal/logger"
	"github.com/kailas-cloud/placedex/internal/mcp"
	"github.com/kailas-cloud/placedex/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "placedex-mcp:", err)
		os.Exit(1)
	}
}

func run() error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := placedex.New(clientOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	logger.Info("Starting placedex MCP server",
		zap.String("version", version.String()),
		zap.String("engine", client.Engine()),
	)
	return mcp.NewServer(client, logger).Serve()
}

func clientOptions(cfg config.Config, logger *zap.Logger) []placedex.Option {
	opts := []placedex.Option{
		placedex.WithLogger(logger),
		placedex.WithMaxOpenConns(cfg.Database.MaxOpenConns),
		placedex.WithQueryTimeout(cfg.Database.QueryTimeout()),
		placedex.WithReadinessTimeout(time.Duration(cfg.Database.ReadinessTimeout) * time.Second),
		placedex.WithPageSize(cfg.Search.DefaultPageSize),
		placedex.WithNearbyDefaults(cfg.Search.NearbyRadiusKm, cfg.Search.SearchNearbyRadiusKm, cfg.Search.NearbyLimit),
		placedex.WithSuggestLimit(cfg.Search.SuggestLimit),
		placedex.WithPopularLimit(cfg.Search.PopularLimit),
	}
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		opts = append(opts, placedex.WithPostgres(cfg.Database.DSN), placedex.WithSeedFile(cfg.Database.SeedFile))
	case config.DriverMemory:
		opts = append(opts, placedex.WithMemory(cfg.Database.SeedFile))
	default:
		opts = append(opts, placedex.WithSQLite(cfg.Database.Path), placedex.WithSeedFile(cfg.Database.SeedFile))
	}
	return opts
}
