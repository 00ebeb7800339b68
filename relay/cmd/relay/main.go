package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scrubline/scrubline/common/logging"
	"github.com/scrubline/scrubline/common/messaging"
	"github.com/scrubline/scrubline/relay/internal/config"
	"github.com/scrubline/scrubline/relay/internal/push"

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
	).With(logging.Service("relay"))
	logging.SetDefault(logger)

	slog.Info("Starting relay service",
		slog.String("nats_url", cfg.NATS.URL),
		slog.String("worker_url", cfg.Delivery.WorkerURL),
	)

	// Connect to NATS and ensure the stream and consumer exist
	jsClient, err := natsclient.NewJetStreamClient(natsclient.Config{
		URL:  cfg.NATS.URL,
		Name: "scrubline-relay",
	})
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer jsClient.Close()

	setupCtx, setupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := jsClient.CreateOrUpdateStream(setupCtx, natsclient.LogsStream); err != nil {
		log.Fatalf("Failed to provision log stream: %v", err)
	}
	consumerCfg := natsclient.DefaultPushConsumerConfig()
	if _, err := jsClient.CreateOrUpdateConsumer(setupCtx, cfg.NATS.Stream, consumerCfg); err != nil {
		log.Fatalf("Failed to provision consumer: %v", err)
	}
	setupCancel()

	// Start the delivery loop
	deliverer := push.New(cfg.Delivery.WorkerURL, cfg.Delivery.Timeout, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop, err := jsClient.ConsumeMessages(ctx, cfg.NATS.Stream, messaging.ConsumerPushDelivery, cfg.Delivery.NakDelay, deliverer.Handle)
	if err != nil {
		log.Fatalf("Failed to start consuming: %v", err)
	}
	log.Printf("Relay delivering %s to %s", messaging.SubjectLogsIngestAll, cfg.Delivery.WorkerURL)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down relay...")
	stop()
	cancel()

	if err := jsClient.Drain(); err != nil {
		log.Printf("WARNING: NATS drain failed: %v", err)
	}

	log.Println("Relay stopped")
}
