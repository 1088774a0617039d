// Package main is the entry point for the quotation service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotation-service/internal/adapters/store/memory"
	"github.com/jsamuelsen/quotation-service/internal/adapters/store/mongo"
	"github.com/jsamuelsen/quotation-service/internal/adapters/ws"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/platform/config"
	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
	"github.com/jsamuelsen/quotation-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// Configuration problems stop the process before anything is served.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()

	store, closeStore, err := openStore(ctx, cfg.Store, healthRegistry, logger)
	if err != nil {
		return err
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if closeErr := closeStore(closeCtx); closeErr != nil {
			logger.Error("store close error", slog.Any("error", closeErr))
		}
	}()

	hub := ws.NewHub(ws.Config{
		SendBuffer:     cfg.Realtime.SendBuffer,
		WriteTimeout:   cfg.Realtime.WriteTimeout,
		OriginPatterns: cfg.Realtime.OriginPatterns,
		Logger:         logger,
		Registerer:     prometheus.DefaultRegisterer,
	})
	if err := healthRegistry.Register(hub); err != nil {
		return fmt.Errorf("registering realtime health check: %w", err)
	}

	quotationService := app.NewQuotationService(app.QuotationServiceConfig{
		Store:       store,
		Broadcaster: hub,
		Logger:      logger,
	})

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		ServiceName:      cfg.Telemetry.ServiceName,
		HealthHandler:    handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime)),
		QuotationHandler: handlers.NewQuotationHandler(quotationService),
		RealtimePath:     cfg.Realtime.Path,
		RealtimeHandler:  hub.HandleWS,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		Timeout:          cfg.Server.RequestTimeout,
	})

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, hub, serverErr, cfg.Server.ShutdownTimeout)
}

// openStore selects the quotation store from the configured URI. The
// returned close function releases the store's connections.
func openStore(
	ctx context.Context,
	cfg config.StoreConfig,
	registry ports.HealthRegistry,
	logger *slog.Logger,
) (ports.QuotationStore, func(context.Context) error, error) {
	if cfg.IsMemory() {
		logger.Warn("using in-memory quotation store; records are lost on exit")
		return memory.New(), func(context.Context) error { return nil }, nil
	}

	store, err := mongo.Connect(ctx, mongo.Config{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Collection:     cfg.Collection,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", config.ErrStartup, err)
	}

	indexCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := store.EnsureIndexes(indexCtx); err != nil {
		_ = store.Close(context.Background())
		return nil, nil, fmt.Errorf("%w: %w", config.ErrStartup, err)
	}

	if err := registry.Register(store); err != nil {
		_ = store.Close(context.Background())
		return nil, nil, fmt.Errorf("registering store health check: %w", err)
	}

	logger.Info("connected to mongodb",
		slog.String("database", cfg.Database),
		slog.String("collection", cfg.Collection),
	)

	return store, store.Close, nil
}

// waitForShutdown blocks until a signal arrives or the server fails, then
// stops the HTTP server and disconnects realtime subscribers.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	hub *ws.Hub,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error

	select {
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	// Hijacked WebSocket connections are not tracked by the HTTP server.
	if err := hub.Close(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("realtime shutdown: %w", err))
	}

	logger.Info("shutdown complete")

	return runErr
}
