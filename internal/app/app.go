// Package app wires configuration into a running gateway service.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kevin07696/stripe-gateway/internal/adapters/postgres"
	"github.com/kevin07696/stripe-gateway/internal/adapters/secrets"
	"github.com/kevin07696/stripe-gateway/internal/adapters/stripe"
	"github.com/kevin07696/stripe-gateway/internal/config"
	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
	"github.com/kevin07696/stripe-gateway/internal/services/gateway"
	"github.com/kevin07696/stripe-gateway/pkg/observability"
	"github.com/kevin07696/stripe-gateway/pkg/resilience"
	"github.com/kevin07696/stripe-gateway/pkg/security"
)

// dbConnectAttempts bounds the startup wait for PostgreSQL
const dbConnectAttempts = 5

var errProcessorCircuitOpen = errors.New("processor circuit breaker is open")

// App holds the wired gateway and the resources that must be closed
type App struct {
	Service *gateway.Service
	Account gateway.Account
	Health  *observability.HealthChecker

	// DB is nil when no database is configured
	DB *postgres.DB
}

// New resolves the secret key, connects the optional database and builds
// the gateway service
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	secretKey, err := resolveSecretKey(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	account := gateway.Account{
		GatewayID: cfg.Gateway.GatewayID,
		Config: domain.GatewayConfig{
			PublishableKey: cfg.Gateway.PublishableKey,
			SecretKey:      secretKey,
		},
		Currency: cfg.Gateway.DefaultCurrency,
	}

	stripeConfig := stripe.DefaultConfig()
	stripeConfig.APIURL = cfg.Gateway.APIURL
	stripeConfig.Timeout = cfg.Gateway.Timeout
	stripeConfig.CircuitBreaker.MaxFailures = uint32(cfg.Gateway.CircuitMaxFailures)
	stripeConfig.CircuitBreaker.Timeout = cfg.Gateway.CircuitTimeout
	var circuitOpen atomic.Bool
	stripeConfig.CircuitBreaker.OnStateChange = func(_, to stripe.CircuitState) {
		circuitOpen.Store(to == stripe.StateOpen)
	}
	remote := stripe.NewClient(stripeConfig, logger)

	a := &App{Account: account}

	var (
		auditLog ports.AuditLogSink
		invoices ports.InvoiceLookup
		legacy   ports.LegacyAccountStore
	)
	if cfg.Database.Enabled() {
		db, err := connectDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		a.DB = db
		auditLog = postgres.NewAuditLogRepository(db)
		invoices = postgres.NewInvoiceRepository(db)
		legacy = postgres.NewLegacyAccountRepository(db, cfg.Database.LegacyGatewayID)
	} else {
		logger.Warn("No database configured; audit log, invoice lookup and migration are disabled")
	}

	if a.DB != nil {
		a.Health = observability.NewHealthChecker(a.DB.Pool())
	} else {
		a.Health = observability.NewHealthChecker(nil)
	}
	a.Health.Register("processor", func(context.Context) error {
		if circuitOpen.Load() {
			return errProcessorCircuitOpen
		}
		return nil
	})

	a.Service = gateway.NewService(remote, auditLog, invoices, legacy,
		security.NewZapLogger(logger.Named("gateway")),
		gateway.Config{MigrationBatchSize: cfg.Gateway.MigrationBatchSize},
	)

	logger.Info("Gateway initialized",
		zap.String("gateway_id", account.GatewayID),
		zap.String("secret_key", account.Config.MaskedSecretKey()),
		zap.String("currency", account.Currency),
		zap.Bool("database", a.DB != nil),
	)
	return a, nil
}

// Close releases the database pool
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func connectDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*postgres.DB, error) {
	dbConfig := postgres.DefaultConfig(cfg.URL)
	dbConfig.MaxConns = cfg.MaxConns
	dbConfig.MinConns = cfg.MinConns
	dbConfig.QueryTimeout = cfg.QueryTimeout

	var db *postgres.DB
	err := resilience.Retry(ctx, dbConnectAttempts, resilience.StartupBackoff(), func(ctx context.Context) error {
		var err error
		db, err = postgres.NewDB(ctx, dbConfig, logger)
		if err != nil {
			logger.Warn("Database not reachable yet", zap.Error(err))
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}
	return db, nil
}

func resolveSecretKey(ctx context.Context, cfg *config.Config, logger *zap.Logger) (string, error) {
	if cfg.Secrets.Backend == config.SecretBackendEnv {
		return cfg.Gateway.SecretKey, nil
	}

	manager, err := newSecretManager(ctx, cfg.Secrets, logger)
	if err != nil {
		return "", err
	}
	return secrets.NewKeyResolver(manager, logger).ResolveSecretKey(ctx, cfg.Gateway.SecretKeyPath)
}
