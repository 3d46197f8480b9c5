package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/anoveskey1/evbpmusic-backend/internal/api"
	"github.com/anoveskey1/evbpmusic-backend/internal/config"
	"github.com/anoveskey1/evbpmusic-backend/internal/factory"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load settings from defaults, .env and the environment
	conf, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create application factory
	app, err := factory.New(factory.FromConfig(conf, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	logger.Info("application configured",
		slog.String("storage", conf.StorageType),
		slog.String("mail", conf.MailType),
		slog.String("redemption_policy", string(conf.RedemptionPolicy)),
		slog.Duration("code_ttl", conf.CodeTTL),
	)

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Ledger:         app.Ledger,
		Workflow:       app.Workflow,
		Counter:        app.Counter,
		AllowedOrigins: conf.AllowedOrigins,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = conf.Host
	serverConfig.Port = conf.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

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
