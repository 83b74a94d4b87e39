package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/placedex/internal/config"
	logpkg "github.com/kailas-cloud/placedex/internal/logger"
	"github.com/kailas-cloud/placedex/internal/metrics"
	"github.com/kailas-cloud/placedex/internal/storage"
	chiTransport "github.com/kailas-cloud/placedex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/placedex/internal/usecase/health"
	nearbyuc "github.com/kailas-cloud/placedex/internal/usecase/nearby"
	searchuc "github.com/kailas-cloud/placedex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/placedex/internal/usecase/suggest"
	"github.com/kailas-cloud/placedex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting placedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterStoreMetrics()
	metrics.RegisterEngineMetrics()

	ctx := context.Background()
	store, err := storage.Open(ctx, storage.Config{
		Driver:           cfg.Database.Driver,
		DSN:              cfg.Database.DSN,
		Path:             cfg.Database.Path,
		SeedFile:         cfg.Database.SeedFile,
		MaxOpenConns:     cfg.Database.MaxOpenConns,
		QueryTimeout:     cfg.Database.QueryTimeout(),
		ReadinessTimeout: time.Duration(cfg.Database.ReadinessTimeout) * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()
	logger.Info("Connected to record store", zap.String("engine", store.Engine))

	// Create use case services
	searchSvc := searchuc.New(store.Catalog).WithPopularLimit(cfg.Search.PopularLimit)
	nearbySvc := nearbyuc.New(store.Catalog).WithDefaults(
		cfg.Search.NearbyRadiusKm, cfg.Search.SearchNearbyRadiusKm, cfg.Search.NearbyLimit,
	)
	suggestSvc := suggestuc.New(store.Catalog).WithDefaultLimit(cfg.Search.SuggestLimit)
	healthSvc := healthuc.New(store.Catalog)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, nearbySvc, suggestSvc, healthSvc, logger).
		WithDefaultPageSize(cfg.Search.DefaultPageSize)
	handler := chiTransport.NewRouter(server, chiTransport.AuthConfig{
		APIKeys:   cfg.Auth.APIKeys,
		JWTSecret: cfg.Auth.JWTSecret,
		JWTIssuer: cfg.Auth.JWTIssuer,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
