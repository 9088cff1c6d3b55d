package main

import (
	"context"
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
	"github.com/warplabs/warps-engine/internal/api/rest"
	"github.com/warplabs/warps-engine/internal/api/server"
	"github.com/warplabs/warps-engine/internal/chain"
	"github.com/warplabs/warps-engine/internal/chainstate"
	"github.com/warplabs/warps-engine/internal/config"
	"github.com/warplabs/warps-engine/internal/inventory"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/metadata"
	"github.com/warplabs/warps-engine/internal/notifier"
	"github.com/warplabs/warps-engine/internal/providers/jetstream"
	"github.com/warplabs/warps-engine/internal/reconciler"
	"github.com/warplabs/warps-engine/internal/store"
	"github.com/warplabs/warps-engine/internal/tracker"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadGamedConfig(*configFile, *envPath)
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
			"service": "gamed",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Warps game engine",
		zap.String("environment", cfg.Environment),
		zap.String("chain", string(cfg.Chain())))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()
	base64Adapter := adapter.NewBase64()
	httpClient := adapter.NewHTTPClient(cfg.Notifier.HTTPTimeout)

	// Connect to the Ethereum RPC node
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
	}
	defer ethClient.Close()
	logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.String("rpc_url", cfg.Ethereum.RPCURL))

	// The server custodies the signing key for every sponsored write
	signer, err := adapter.NewSigner(cfg.Ethereum.OwnerPrivateKey)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load owner signing key", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Loaded owner signer", zap.String("address", signer.Address().Hex()))

	// Contract gateway bound to the pinned chain
	gateway, err := chain.NewGateway(cfg.Chain(), cfg.Ethereum.ContractAddress, ethClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create contract gateway",
			zap.Error(err),
			zap.String("contract", cfg.Ethereum.ContractAddress))
	}

	// Transaction lifecycle tracker
	txTracker := tracker.NewTracker(ethClient, clock, tracker.Config{
		PollInterval:      cfg.Tracker.PollInterval,
		SettlementTimeout: cfg.Tracker.SettlementTimeout,
		MaxRPCRetries:     uint64(cfg.Tracker.MaxRPCRetries),
	})

	// Token inventory cache with the on-chain metadata codec
	codec := metadata.NewCodec(jsonAdapter, jcsAdapter, base64Adapter, "")
	tokenInventory := inventory.NewInventory(gateway, codec, inventory.Config{
		PageSize: uint64(cfg.Inventory.PageSize),
	})

	// Shared chain-state poller
	stateProvider := chainstate.NewProvider(gateway, chainstate.Config{
		TTL:         cfg.ChainState.TTL,
		StaleWindow: cfg.ChainState.StaleWindow,
	}, clock)

	// Connect to NATS JetStream for game event publishing
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create game event publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))

	// Game state reconciler
	gameReconciler := reconciler.NewReconciler(reconciler.Config{
		HighlightDuration: cfg.Reconciler.HighlightDuration,
	}, gateway, txTracker, tokenInventory, stateProvider, publisher, clock)

	// Cast publisher and points ledger back the privileged mint flow
	castPublisher := notifier.NewCastPublisher(notifier.CastConfig{
		APIURL:     cfg.Notifier.CastAPIURL,
		APIKey:     cfg.Notifier.CastAPIKey,
		SignerUUID: cfg.Notifier.CastSignerUUID,
	}, httpClient, jsonAdapter)
	pointsLedger := notifier.NewPointsLedger(dataStore, clock)

	// REST handler and server
	handler := rest.NewHandler(rest.Config{
		WebhookSecret: cfg.Auth.WebhookSecret,
		FrameURL:      cfg.Notifier.FrameURL,
	}, dataStore, stateProvider, tokenInventory, gameReconciler, gateway, txTracker, castPublisher, pointsLedger, signer, clock)

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AdminSecret:  cfg.Auth.MintSecret,
	}, handler)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Game engine stopped")
}
