/*
Package main is the entry point for the RBAC Gateway.

It is responsible for loading configuration, initializing the global logging system,
wiring the session store, the remote session API client, and the page templates into
the HTTP server, and gracefully handling operating system interrupt signals
(SIGINT, SIGTERM) to ensure a smooth shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"rbacgate/internal/configs"
	"rbacgate/internal/handler"
	"rbacgate/internal/menu"
	"rbacgate/internal/pkg/logx"
	"rbacgate/internal/session"
	"rbacgate/internal/upstream"
	"rbacgate/internal/web"
)

func main() {
	// Load configuration from file and environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("upstream", cfg.UpstreamBaseURL).
		Str("session_backend", cfg.SessionBackend).
		Dur("session_ttl", cfg.SessionTTL).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session store backend
	var store session.Store
	switch cfg.SessionBackend {
	case configs.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
		defer cancelPing()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logx.Fatal(err, "Failed to connect to redis session store")
		}

		store = session.NewRedisStore(rdb)
	default:
		store = session.NewMemoryStore()
	}

	deps := &handler.AppDeps{
		Config:   cfg,
		Sessions: session.NewManager(store, cfg.SessionTTL, cfg.Environment != "development"),
		Upstream: upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout),
		Pages:    web.New(),
		Sidebar:  menu.NewRenderer(),
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("RBAC Gateway starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
