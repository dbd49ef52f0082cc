package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/catan-leaderboard/internal/api"
	"github.com/mcoot/catan-leaderboard/internal/config"
	"github.com/mcoot/catan-leaderboard/internal/factory"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		logger.Error("failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown error", slog.String("error", err.Error()))
		}
	}()

	// Create application factory
	app, err := factory.New(ctx, factory.Config{
		AuthConfig:   auth.Config{BcryptCost: cfg.BcryptCost},
		Logger:       logger,
		StorageType:  cfg.StorageType,
		RedisConfig:  cfg.Redis(),
		AssetsConfig: cfg.Assets(),
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Storage.Close(); err != nil {
			logger.Warn("storage close error", slog.String("error", err.Error()))
		}
	}()

	if err := app.Storage.Ping(ctx); err != nil {
		// The server still starts; health reports the store as unavailable
		logger.Warn("storage not reachable at startup", slog.String("error", err.Error()))
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Store:          app.Storage,
		AuthService:    app.AuthService,
		BoardService:   app.BoardService,
		LedgerService:  app.LedgerService,
		StatsService:   app.StatsService,
		ProfileService: app.ProfileService,
	})

	server := api.NewServer(router, cfg.Server(), logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.Bool("uploads", cfg.Assets() != nil),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
