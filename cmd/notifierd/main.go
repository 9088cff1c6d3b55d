package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/config"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/notifier"
	"github.com/warplabs/warps-engine/internal/providers/jetstream"
	"github.com/warplabs/warps-engine/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadNotifierdConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "notifierd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Warps side-effect dispatcher",
		zap.String("environment", cfg.Environment))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Notifier.HTTPTimeout)

	// Side-effect executors
	broadcaster := notifier.NewBroadcaster(notifier.Config{
		BatchSize:       cfg.Notifier.BatchSize,
		InterBatchDelay: cfg.Notifier.InterBatchDelay,
		WorkerPoolSize:  cfg.Notifier.Worker.WorkerPoolSize,
		WorkerQueueSize: cfg.Notifier.Worker.WorkerQueueSize,
	}, httpClient, jsonAdapter, clock)
	castPublisher := notifier.NewCastPublisher(notifier.CastConfig{
		APIURL:     cfg.Notifier.CastAPIURL,
		APIKey:     cfg.Notifier.CastAPIKey,
		SignerUUID: cfg.Notifier.CastSignerUUID,
	}, httpClient, jsonAdapter)
	pointsLedger := notifier.NewPointsLedger(dataStore, clock)
	webhookSender := notifier.NewWebhookSender(notifier.WebhookConfig{
		URL:    cfg.Notifier.WebhookURL,
		Secret: cfg.Notifier.WebhookSecret,
	}, httpClient, jsonAdapter, clock)

	dispatcher := notifier.NewDispatcher(notifier.DispatcherConfig{
		FrameURL: cfg.Notifier.FrameURL,
	}, dataStore, broadcaster, castPublisher, pointsLedger, webhookSender, jsonAdapter)

	// Connect the durable game event subscriber
	subscriber, err := jetstream.NewSubscriber(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		ConsumerName:   cfg.NATS.ConsumerName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
		AckWaitTimeout: cfg.NATS.AckWait,
		MaxDeliver:     cfg.NATS.MaxDeliver,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create game event subscriber", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer subscriber.Close()
	logger.InfoCtx(ctx, "Connected to NATS JetStream",
		zap.String("stream", cfg.NATS.StreamName),
		zap.String("consumer", cfg.NATS.ConsumerName))

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for subscriber errors
	errCh := make(chan error, 1)

	// Start consuming game events
	go func() {
		if err := subscriber.Run(ctx, dispatcher.Handle); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "subscriber"))
		cancel()
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Side-effect dispatcher stopped")
}
