package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/warplabs/warps-engine/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	Environment string `mapstructure:"environment"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
}

// Chain resolves the pinned target chain from the environment
func (c *BaseConfig) Chain() domain.Chain {
	return domain.ChainForEnvironment(c.Environment)
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// EthereumConfig holds Ethereum-specific configuration
type EthereumConfig struct {
	RPCURL          string `mapstructure:"rpc_url"`
	ContractAddress string `mapstructure:"contract_address"`
	// OwnerPrivateKey is the hex-encoded key custodied by the server for the
	// privileged owner mint
	OwnerPrivateKey string `mapstructure:"owner_private_key"`
}

// TrackerConfig holds transaction lifecycle tracker configuration.
// A single settlement timeout bounds every tracked transaction.
type TrackerConfig struct {
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	SettlementTimeout time.Duration `mapstructure:"settlement_timeout"`
	MaxRPCRetries     int           `mapstructure:"max_rpc_retries"`
}

// ReconcilerConfig holds game state reconciler configuration
type ReconcilerConfig struct {
	HighlightDuration time.Duration `mapstructure:"highlight_duration"`
}

// ChainStateConfig holds the shared chain-state poller configuration
type ChainStateConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	StaleWindow time.Duration `mapstructure:"stale_window"`
}

// InventoryConfig holds token inventory cache configuration
type InventoryConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// NotifierConfig holds side-effect notifier configuration
type NotifierConfig struct {
	BatchSize       int           `mapstructure:"batch_size"`
	InterBatchDelay time.Duration `mapstructure:"inter_batch_delay"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	CastAPIURL      string        `mapstructure:"cast_api_url"`
	CastAPIKey      string        `mapstructure:"cast_api_key"`
	CastSignerUUID  string        `mapstructure:"cast_signer_uuid"`
	FrameURL        string        `mapstructure:"frame_url"`
	WebhookURL      string        `mapstructure:"webhook_url"`
	WebhookSecret   string        `mapstructure:"webhook_secret"`
	Worker          WorkerConfig  `mapstructure:"worker"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// MintSecret gates the privileged owner-mint route
	MintSecret string `mapstructure:"mint_secret"`
	// WebhookSecret signs and verifies frame webhook payloads
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// GamedConfig holds configuration for the game engine service
type GamedConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Ethereum   EthereumConfig   `mapstructure:"ethereum"`
	Tracker    TrackerConfig    `mapstructure:"tracker"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	ChainState ChainStateConfig `mapstructure:"chainstate"`
	Inventory  InventoryConfig  `mapstructure:"inventory"`
	Notifier   NotifierConfig   `mapstructure:"notifier"`
	Auth       AuthConfig       `mapstructure:"auth"`
}

// NotifierdConfig holds configuration for the side-effect dispatcher
type NotifierdConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Notifier   NotifierConfig `mapstructure:"notifier"`
}

// LoadGamedConfig loads configuration for the game engine service
func LoadGamedConfig(configFile string, envPath string) (*GamedConfig, error) {
	v := configureViper("gamed", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("environment", "production")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "GAME_EVENTS")
	v.SetDefault("tracker.poll_interval", "2s")
	v.SetDefault("tracker.settlement_timeout", "2m")
	v.SetDefault("tracker.max_rpc_retries", 5)
	v.SetDefault("reconciler.highlight_duration", "12s")
	v.SetDefault("chainstate.ttl", "30s")
	v.SetDefault("chainstate.stale_window", "60s")
	v.SetDefault("inventory.page_size", 20)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config GamedConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if config.Ethereum.RPCURL == "" {
		return nil, errors.New("ethereum.rpc_url is required")
	}
	if config.Ethereum.ContractAddress == "" {
		return nil, errors.New("ethereum.contract_address is required")
	}

	return &config, nil
}

// LoadNotifierdConfig loads configuration for the side-effect dispatcher
func LoadNotifierdConfig(configFile string, envPath string) (*NotifierdConfig, error) {
	v := configureViper("notifierd", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("environment", "production")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "GAME_EVENTS")
	v.SetDefault("nats.consumer_name", "notifierd")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 3)
	v.SetDefault("notifier.batch_size", 100)
	v.SetDefault("notifier.inter_batch_delay", "1s")
	v.SetDefault("notifier.http_timeout", "30s")
	v.SetDefault("notifier.worker.pool_size", 20)
	v.SetDefault("notifier.worker.queue_size", 1024)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config NotifierdConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if config.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if config.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &config, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/gamed/, cmd/notifierd/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("WARPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"environment",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.contract_address",
		"ethereum.owner_private_key",
		// Tracker
		"tracker.poll_interval",
		"tracker.settlement_timeout",
		"tracker.max_rpc_retries",
		// Reconciler
		"reconciler.highlight_duration",
		// Chain state
		"chainstate.ttl",
		"chainstate.stale_window",
		// Inventory
		"inventory.page_size",
		// Notifier
		"notifier.batch_size",
		"notifier.inter_batch_delay",
		"notifier.http_timeout",
		"notifier.cast_api_url",
		"notifier.cast_api_key",
		"notifier.cast_signer_uuid",
		"notifier.frame_url",
		"notifier.webhook_url",
		"notifier.webhook_secret",
		"notifier.worker.pool_size",
		"notifier.worker.queue_size",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.mint_secret",
		"auth.webhook_secret",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
