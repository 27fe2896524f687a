package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/services/gateway"
)

// TransactionService runs card transactions against the processor. Each
// call returns a result even on failure; the error carries the detail.
type TransactionService interface {
	ProcessCC(ctx context.Context, acct gateway.Account, card gateway.OneOffCard, amount decimal.Decimal, invoices []gateway.InvoiceAmount) (*domain.TransactionResult, error)
	AuthorizeCC(ctx context.Context, acct gateway.Account, card gateway.OneOffCard, amount decimal.Decimal, invoices []gateway.InvoiceAmount) (*domain.TransactionResult, error)
	CaptureCC(ctx context.Context, acct gateway.Account, referenceID, transactionID string, amount decimal.Decimal) (*domain.TransactionResult, error)
	VoidCC(ctx context.Context, acct gateway.Account, referenceID, transactionID string) (*domain.TransactionResult, error)
	RefundCC(ctx context.Context, acct gateway.Account, referenceID, transactionID string, amount *decimal.Decimal) (*domain.TransactionResult, error)

	ProcessStoredCC(ctx context.Context, acct gateway.Account, customerRef, paymentMethodRef string, amount decimal.Decimal, invoices []gateway.InvoiceAmount) (*domain.TransactionResult, error)
	AuthorizeStoredCC(ctx context.Context, acct gateway.Account, customerRef, paymentMethodRef string, amount decimal.Decimal, invoices []gateway.InvoiceAmount) (*domain.TransactionResult, error)
	CaptureStoredCC(ctx context.Context, acct gateway.Account, referenceID, transactionID string, amount decimal.Decimal) (*domain.TransactionResult, error)
	VoidStoredCC(ctx context.Context, acct gateway.Account, referenceID, transactionID string) (*domain.TransactionResult, error)
	RefundStoredCC(ctx context.Context, acct gateway.Account, referenceID, transactionID string, amount *decimal.Decimal) (*domain.TransactionResult, error)
}

// CardService manages cards stored at the processor
type CardService interface {
	StoreCC(ctx context.Context, acct gateway.Account, paymentMethodRef, customerRef string) (*domain.StoredCard, error)
	UpdateCC(ctx context.Context, acct gateway.Account, paymentMethodRef, customerRef, oldPaymentMethodRef string) (*domain.StoredCard, error)
	RemoveCC(ctx context.Context, acct gateway.Account, customerRef, paymentMethodRef string) (*domain.RemovedCard, error)
	PrepareCardForm(ctx context.Context, acct gateway.Account) (*domain.CardForm, error)
	PaymentConfirmation(ctx context.Context, acct gateway.Account, referenceID string) (*domain.PaymentConfirmation, error)
}

// SettingsService validates gateway settings and runs the legacy migration
type SettingsService interface {
	ValidateSettings(ctx context.Context, cfg domain.GatewayConfig, checkConnection bool) error
	EditSettings(ctx context.Context, gatewayID string, meta map[string]string) (*gateway.SettingsUpdate, error)
	MigrateBatch(ctx context.Context, acct gateway.Account, maxCount int) (*gateway.MigrationReport, error)
}

// GatewayService is everything the HTTP and CLI surfaces call
type GatewayService interface {
	TransactionService
	CardService
	SettingsService
}
