package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/checkout"
	h "shopfront/internal/http"
	"shopfront/internal/kv"
	"shopfront/internal/persist"
	"shopfront/pkg/logging"
)

type Config struct {
	HTTPPort        string
	CatalogURL      string
	DBPath          string
	RedisAddr       string
	RequestTimeout  time.Duration
	CatalogTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CatalogURL:      getEnv("CATALOG_URL", "https://fakestoreapi.com"),
		DBPath:          getEnv("DB_PATH", "./data/shopfront.db"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RequestTimeout:  30 * time.Second,
		CatalogTimeout:  10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// openBackend picks the durable backend: Redis when an address is
// configured, the local SQLite file otherwise. Falls back to a
// non-durable in-memory store rather than refusing to start, since
// persistence is best-effort by contract.
func openBackend(cfg *Config) kv.Backend {
	if cfg.RedisAddr != "" {
		slog.Info("using redis storage", "addr", cfg.RedisAddr)
		return kv.NewRedisBackend(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}
	backend, err := kv.NewSQLiteBackend(cfg.DBPath)
	if err != nil {
		slog.Warn("failed to open sqlite storage, cart will not survive restarts", "path", cfg.DBPath, "error", err)
		return kv.NewMemoryBackend()
	}
	slog.Info("using sqlite storage", "path", cfg.DBPath)
	return backend
}

func main() {
	logging.Setup()
	cfg := loadConfig()

	store := kv.NewAdapter(openBackend(cfg), slog.Default())
	defer store.Close()

	// Rehydrate the cart persisted by a previous session, then keep the
	// durable mirror in sync from here on.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	cartStore := cart.NewStore(persist.Rehydrate(ctx, store))
	cancel()
	persist.NewBridge(store, slog.Default()).Attach(cartStore)

	catalogClient := catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout)
	catalogSvc := catalog.NewService(catalogClient, store, slog.Default())
	checkoutSvc := checkout.NewService(cartStore, slog.Default())

	router := h.NewRouter(cartStore, catalogSvc, checkoutSvc, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("shopfront starting", "port", cfg.HTTPPort, "catalog", cfg.CatalogURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
