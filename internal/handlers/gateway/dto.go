package gateway

import (
	"github.com/shopspring/decimal"

	"github.com/kevin07696/stripe-gateway/internal/domain"
	svc "github.com/kevin07696/stripe-gateway/internal/services/gateway"
)

// InvoiceLine is one invoice paid by a charge
type InvoiceLine struct {
	InvoiceID string          `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

// ChargeRequest charges or authorizes a card
type ChargeRequest struct {
	PaymentMethodReference string          `json:"reference_id" binding:"required"`
	CustomerReference      string          `json:"client_reference_id"`
	Amount                 decimal.Decimal `json:"amount"`
	Currency               string          `json:"currency"`
	Invoices               []InvoiceLine   `json:"invoices"`
}

// FollowUpRequest captures, voids or refunds an earlier transaction
type FollowUpRequest struct {
	ReferenceID   string           `json:"reference_id"`
	TransactionID string           `json:"transaction_id"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      string           `json:"currency"`
}

// StoreCardRequest stores or replaces a tokenized card
type StoreCardRequest struct {
	PaymentMethodReference    string `json:"reference_id" binding:"required"`
	CustomerReference         string `json:"client_reference_id"`
	OldPaymentMethodReference string `json:"old_reference_id"`
}

// SettingsRequest is a gateway settings record
type SettingsRequest struct {
	Meta map[string]string `json:"meta" binding:"required"`
}

// MigrationRequest runs one legacy migration batch
type MigrationRequest struct {
	MaxCount int `json:"max_count"`
}

// ErrorBody is the error payload of every failed call
type ErrorBody struct {
	Code    domain.ErrorCode   `json:"code"`
	Message string             `json:"message"`
	Fields  domain.FieldErrors `json:"fields,omitempty"`
}

// TransactionResponse wraps a transaction result and, on failure, its error
type TransactionResponse struct {
	Result *domain.TransactionResult `json:"result"`
	Error  *ErrorBody                `json:"error,omitempty"`
}

// ErrorResponse is returned by non-transaction calls on failure
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func toInvoiceAmounts(lines []InvoiceLine) []svc.InvoiceAmount {
	if len(lines) == 0 {
		return nil
	}
	out := make([]svc.InvoiceAmount, len(lines))
	for i, l := range lines {
		out[i] = svc.InvoiceAmount{InvoiceID: l.InvoiceID, Amount: l.Amount}
	}
	return out
}
