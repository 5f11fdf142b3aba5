package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mcoot/gamehub-go/internal/api"
	"github.com/mcoot/gamehub-go/internal/factory"
	"github.com/mcoot/gamehub-go/internal/services/token"
	sqlitestorage "github.com/mcoot/gamehub-go/internal/storage/sqlite"
	"github.com/mcoot/gamehub-go/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Token secret is the one setting with no usable default
	secret := os.Getenv("GAMEHUB_SECRET")
	if secret == "" {
		logger.Error("GAMEHUB_SECRET is required")
		os.Exit(1)
	}

	sqliteCfg := sqlitestorage.DefaultConfig()
	if dbPath := os.Getenv("GAMEHUB_DB"); dbPath != "" {
		sqliteCfg.Path = dbPath
	}

	cfg := factory.Config{
		TokenConfig:  token.Config{Secret: secret},
		Logger:       logger,
		StorageType:  os.Getenv("STORAGE_TYPE"),
		SQLiteConfig: &sqliteCfg,
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create schema and seed demo data on the sqlite backend
	if store, ok := app.Storage.(*sqlitestorage.Storage); ok {
		if err := store.Init(context.Background()); err != nil {
			logger.Error("failed to initialize database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()
	}

	staticDir := os.Getenv("GAMEHUB_STATIC")
	if staticDir == "" {
		staticDir = "public"
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		Clock:           app.Clock,
		AuthService:     app.AuthService,
		CatalogService:  app.CatalogService,
		ProgressService: app.ProgressService,
		Static:          web.NewStaticHandler(staticDir),
	})

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("GAMEHUB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid GAMEHUB_PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
