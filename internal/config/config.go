package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Secret backends for the gateway secret key
const (
	SecretBackendEnv   = "env"
	SecretBackendAWS   = "aws"
	SecretBackendVault = "vault"
	SecretBackendLocal = "local"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gateway  GatewayConfig
	Secrets  SecretsConfig
	Logger   LoggerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ShutdownTimeout time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds PostgreSQL configuration. An empty URL disables the
// audit log, invoice lookup and legacy migration.
type DatabaseConfig struct {
	URL          string
	MaxConns     int32
	MinConns     int32
	QueryTimeout time.Duration
	AutoMigrate  bool

	// LegacyGatewayID marks accounts awaiting migration
	LegacyGatewayID string
}

// Enabled reports whether a database is configured
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// GatewayConfig holds the processor configuration of the installed gateway
type GatewayConfig struct {
	GatewayID      string
	PublishableKey string

	// SecretKey is read directly when the secret backend is "env"
	SecretKey string
	// SecretKeyPath locates the key in the aws, vault or local backend
	SecretKeyPath string

	APIURL             string
	Timeout            time.Duration
	DefaultCurrency    string
	MigrationBatchSize int
	// MigrationInterval runs legacy migration batches in the background; zero disables
	MigrationInterval  time.Duration
	CircuitMaxFailures int
	CircuitTimeout     time.Duration
}

// SecretsConfig selects and configures the secret backend
type SecretsConfig struct {
	Backend     string
	AWSRegion   string
	AWSEndpoint string
	VaultAddr   string
	VaultToken  string
	VaultMount  string
	Dir         string
	CacheTTL    time.Duration
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding the environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvAsInt("HTTP_PORT", 8080),
			Host:            getEnv("HTTP_HOST", "0.0.0.0"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
			RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 20),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        int32(getEnvAsInt("DB_MAX_CONNS", 10)),
			MinConns:        int32(getEnvAsInt("DB_MIN_CONNS", 1)),
			QueryTimeout:    getEnvAsDuration("DB_QUERY_TIMEOUT", 5*time.Second),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", false),
			LegacyGatewayID: getEnv("LEGACY_GATEWAY_ID", "stripe_legacy"),
		},
		Gateway: GatewayConfig{
			GatewayID:          getEnv("GATEWAY_ID", "stripe"),
			PublishableKey:     getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			SecretKey:          getEnv("STRIPE_SECRET_KEY", ""),
			SecretKeyPath:      getEnv("STRIPE_SECRET_KEY_PATH", ""),
			APIURL:             getEnv("STRIPE_API_URL", ""),
			Timeout:            getEnvAsDuration("STRIPE_TIMEOUT", 80*time.Second),
			DefaultCurrency:    strings.ToLower(getEnv("DEFAULT_CURRENCY", "usd")),
			MigrationBatchSize: getEnvAsInt("MIGRATION_BATCH_SIZE", 50),
			MigrationInterval:  getEnvAsDuration("MIGRATION_INTERVAL", 0),
			CircuitMaxFailures: getEnvAsInt("CIRCUIT_MAX_FAILURES", 5),
			CircuitTimeout:     getEnvAsDuration("CIRCUIT_TIMEOUT", 30*time.Second),
		},
		Secrets: SecretsConfig{
			Backend:     strings.ToLower(getEnv("SECRET_BACKEND", SecretBackendEnv)),
			AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
			AWSEndpoint: getEnv("AWS_ENDPOINT", ""),
			VaultAddr:   getEnv("VAULT_ADDR", ""),
			VaultToken:  getEnv("VAULT_TOKEN", ""),
			VaultMount:  getEnv("VAULT_MOUNT", "secret"),
			Dir:         getEnv("SECRETS_DIR", "./secrets"),
			CacheTTL:    getEnvAsDuration("SECRETS_CACHE_TTL", 5*time.Minute),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	var problems []string

	if c.Gateway.PublishableKey == "" {
		problems = append(problems, "STRIPE_PUBLISHABLE_KEY is required")
	}

	switch c.Secrets.Backend {
	case SecretBackendEnv:
		if c.Gateway.SecretKey == "" {
			problems = append(problems, "STRIPE_SECRET_KEY is required when SECRET_BACKEND=env")
		}
	case SecretBackendAWS, SecretBackendLocal:
		if c.Gateway.SecretKeyPath == "" {
			problems = append(problems, "STRIPE_SECRET_KEY_PATH is required when SECRET_BACKEND="+c.Secrets.Backend)
		}
	case SecretBackendVault:
		if c.Gateway.SecretKeyPath == "" {
			problems = append(problems, "STRIPE_SECRET_KEY_PATH is required when SECRET_BACKEND=vault")
		}
		if c.Secrets.VaultAddr == "" {
			problems = append(problems, "VAULT_ADDR is required when SECRET_BACKEND=vault")
		}
	default:
		problems = append(problems, fmt.Sprintf("SECRET_BACKEND %q is not one of env, aws, vault, local", c.Secrets.Backend))
	}

	if len(c.Gateway.DefaultCurrency) != 3 {
		problems = append(problems, fmt.Sprintf("DEFAULT_CURRENCY %q is not an ISO 4217 code", c.Gateway.DefaultCurrency))
	}
	if c.Gateway.MigrationBatchSize <= 0 {
		problems = append(problems, "MIGRATION_BATCH_SIZE must be positive")
	}
	if c.Gateway.MigrationInterval < 0 {
		problems = append(problems, "MIGRATION_INTERVAL must not be negative")
	}
	if c.Gateway.MigrationInterval > 0 && !c.Database.Enabled() {
		problems = append(problems, "MIGRATION_INTERVAL requires DATABASE_URL")
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		problems = append(problems, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
