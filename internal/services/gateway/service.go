package gateway

import (
	"strings"
	"time"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
)

// Account is the immutable per-transaction context: which installed gateway
// is acting, with which settings, in which currency
type Account struct {
	GatewayID string
	Config    domain.GatewayConfig
	Currency  string
}

// currency returns the lower-case currency code, falling back to DefaultCurrency
func (a Account) currency() string {
	if a.Currency == "" {
		return DefaultCurrency
	}
	return strings.ToLower(a.Currency)
}

// Config tunes the gateway service
type Config struct {
	// MigrationBatchSize caps the legacy accounts rebound per batch
	MigrationBatchSize int
}

// DefaultConfig returns default service configuration
func DefaultConfig() Config {
	return Config{MigrationBatchSize: 50}
}

// Service is the card-payment gateway core. It holds no per-transaction
// state and is safe for concurrent use.
type Service struct {
	remote   adapterports.RemoteClient
	auditLog ports.AuditLogSink
	invoices ports.InvoiceLookup
	legacy   ports.LegacyAccountStore
	logger   ports.Logger
	config   Config
	now      func() time.Time
}

// NewService creates a new gateway service. invoices and legacy may be nil;
// charges then use the default description and migration is a no-op.
func NewService(
	remote adapterports.RemoteClient,
	auditLog ports.AuditLogSink,
	invoices ports.InvoiceLookup,
	legacy ports.LegacyAccountStore,
	logger ports.Logger,
	config Config,
) *Service {
	if config.MigrationBatchSize <= 0 {
		config.MigrationBatchSize = DefaultConfig().MigrationBatchSize
	}
	return &Service{
		remote:   remote,
		auditLog: auditLog,
		invoices: invoices,
		legacy:   legacy,
		logger:   logger,
		config:   config,
		now:      time.Now,
	}
}

// toError keeps a nil *GatewayError from turning into a non-nil error
func toError(gwErr *domain.GatewayError) error {
	if gwErr == nil {
		return nil
	}
	return gwErr
}
