package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scrubline/scrubline/api/internal/config"
	"github.com/scrubline/scrubline/api/internal/handlers"
	"github.com/scrubline/scrubline/api/internal/publish"
	"github.com/scrubline/scrubline/api/internal/ratelimit"
	"github.com/scrubline/scrubline/api/internal/server"
	"github.com/scrubline/scrubline/common/logging"

	natsclient "github.com/scrubline/scrubline/common/messaging/nats"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("api"))
	logging.SetDefault(logger)

	slog.Info("Starting API service",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}

	// Initialize rate limiter
	var rateLimiter ratelimit.RateLimiter
	if cfg.Redis.Enabled && cfg.Ingestion.RateLimitEnabled {
		limiter, err := ratelimit.NewRedisRateLimiter(
			cfg.Redis.URL,
			cfg.Ingestion.RateLimitRequests,
			cfg.Ingestion.RateLimitWindow,
		)
		if err != nil {
			log.Printf("WARNING: Failed to initialize Redis rate limiter: %v", err)
			log.Println("Continuing without rate limiting")
			rateLimiter = &ratelimit.NoOpRateLimiter{}
		} else {
			rateLimiter = limiter
			log.Printf("Rate limiting enabled: %d requests per %s per tenant", cfg.Ingestion.RateLimitRequests, cfg.Ingestion.RateLimitWindow)
		}
	} else {
		rateLimiter = &ratelimit.NoOpRateLimiter{}
		log.Println("Rate limiting disabled")
	}
	defer rateLimiter.Close()

	// Connect to NATS and ensure the log stream exists
	jsClient, err := natsclient.NewJetStreamClient(natsclient.Config{
		URL:  cfg.NATS.URL,
		Name: "scrubline-api",
	})
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer jsClient.Close()

	streamCtx, streamCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := jsClient.CreateOrUpdateStream(streamCtx, natsclient.LogsStream); err != nil {
		log.Fatalf("Failed to provision log stream: %v", err)
	}
	streamCancel()
	log.Printf("Log stream ready (nats: %s, subject prefix: %s)", cfg.NATS.URL, cfg.NATS.SubjectPrefix)

	// Initialize publisher and HTTP handlers
	publisher := publish.New(jsClient, cfg.NATS.SubjectPrefix, logger)
	handler := handlers.NewIngestHandler(publisher, rateLimiter, cfg.Ingestion.MaxBodyBytes, logger)
	router := server.NewRouter(handler)

	// Create server with config values
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("API service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Drain lets in-flight publishes settle before exit
	if err := jsClient.Drain(); err != nil {
		log.Printf("WARNING: NATS drain failed: %v", err)
	}

	log.Println("Server stopped")
}
