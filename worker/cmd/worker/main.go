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

	"github.com/scrubline/scrubline/common/logging"
	"github.com/scrubline/scrubline/worker/internal/config"
	"github.com/scrubline/scrubline/worker/internal/handlers"
	"github.com/scrubline/scrubline/worker/internal/pipeline"
	"github.com/scrubline/scrubline/worker/internal/redact"
	"github.com/scrubline/scrubline/worker/internal/server"
	"github.com/scrubline/scrubline/worker/internal/storage"
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
	).With(logging.Service("worker"))
	logging.SetDefault(logger)

	slog.Info("Starting worker service",
		slog.Int("port", cfg.Server.Port),
		slog.String("storage_backend", cfg.Storage.Backend),
		slog.Duration("per_char_delay", cfg.Redaction.PerCharDelay),
	)

	// Initialize document store
	var store storage.Store
	switch cfg.Storage.Backend {
	case "firestore", "":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		fs, err := storage.NewFirestoreStore(ctx, cfg.Storage.Firestore.ProjectID)
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize Firestore store: %v", err)
		}
		store = fs
		log.Printf("Document store ready (backend: firestore, project: %s)", cfg.Storage.Firestore.ProjectID)
	case "opensearch":
		osStore, err := storage.NewOpenSearchStore(storage.OpenSearchConfig{
			URL:           cfg.Storage.OpenSearch.URL,
			Username:      cfg.Storage.OpenSearch.Username,
			Password:      cfg.Storage.OpenSearch.Password,
			TLSSkipVerify: cfg.Storage.OpenSearch.TLSSkipVerify,
			IndexPrefix:   cfg.Storage.OpenSearch.IndexPrefix,
		})
		if err != nil {
			log.Fatalf("Failed to initialize OpenSearch store: %v", err)
		}
		store = osStore
		log.Printf("Document store ready (backend: opensearch, url: %s)", cfg.Storage.OpenSearch.URL)
	default:
		log.Fatalf("Unknown storage backend: %s (supported: firestore, opensearch)", cfg.Storage.Backend)
	}
	defer store.Close()

	// Initialize pipeline and HTTP handlers
	redactor := redact.New(cfg.Redaction.PerCharDelay)
	pl := pipeline.New(redactor, store, logger)
	handler := handlers.NewPushHandler(pl, logger)
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
		log.Printf("Worker service listening on %s", srv.Addr)
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

	log.Println("Server stopped")
}
