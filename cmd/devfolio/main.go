// Package main is the entry point for the portfolio API server.
// It loads configuration, selects the storage backend, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devfolio/internal/cache"
	"devfolio/internal/config"
	"devfolio/internal/database"
	"devfolio/internal/document"
	"devfolio/internal/filestore"
	"devfolio/internal/handlers"
	"devfolio/internal/metrics"
	"devfolio/internal/middleware"
	"devfolio/internal/mongostore"
	"devfolio/internal/router"
	"devfolio/internal/store"
	"devfolio/internal/theme"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_file", cfg.DataFile,
	)

	policy, err := theme.ParsePolicy(cfg.ThemeFallbackPolicy)
	if err != nil {
		slog.Error("invalid theme configuration", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Storage facade: the primary store is tried once; on failure every
	// request is served from the data file for the process lifetime.
	seed := filestore.SeedOptions{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword}
	facade := store.NewFacade(store.Options{
		Primary:        primaryOpener(cfg),
		Fallback:       func() document.Store { return filestore.NewFallback(cfg.DataFile, seed) },
		ConnectTimeout: cfg.ConnectTimeout,
		Metrics:        m,
	})
	facade.Initialize(context.Background())

	themeOpts := theme.Options{
		Policy:       policy,
		HistoryLimit: cfg.ThemeHistoryLimit,
		Metrics:      m,
	}

	// Connect to Valkey for the stylesheet cache (optional).
	if cfg.ValkeyAddr != "" {
		valkeyClient, err := cache.ConnectValkey(context.Background(), cfg.ValkeyAddr, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, theme stylesheets will not be cached", "error", err)
		} else {
			defer valkeyClient.Close()
			themeOpts.Cache = cache.NewStyleCache(valkeyClient, cache.DefaultStyleTTL)
			slog.Info("valkey connected", "addr", cfg.ValkeyAddr)
		}
	}

	engine := theme.New(facade, themeOpts)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	r := router.New(router.Deps{
		Public:  handlers.NewPublic(facade, engine),
		Admin:   handlers.NewAdmin(facade),
		Themes:  handlers.NewThemes(engine),
		Health:  handlers.Health(facade),
		Metrics: m,
		APIKey:  cfg.AdminAPIKey,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "backend", facade.Backend())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	if err := facade.Close(ctx); err != nil {
		slog.Error("failed to close storage", "error", err)
	}

	slog.Info("server stopped gracefully")
}

// primaryOpener returns the connector for the configured primary store, or
// nil when DATABASE_URL is empty.
func primaryOpener(cfg *config.Config) store.Opener {
	kind, _ := cfg.PrimaryKind()
	switch kind {
	case config.PrimaryMongoDB:
		return func(ctx context.Context) (document.Store, error) {
			return mongostore.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName, cfg.ConnectTimeout)
		}
	case config.PrimaryPostgres:
		return func(ctx context.Context) (document.Store, error) {
			return database.Open(ctx, cfg.DatabaseURL, cfg.ConnectTimeout)
		}
	}
	return nil
}
