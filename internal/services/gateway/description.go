package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
)

// DefaultChargeDescription is used when no invoice codes can be resolved
const DefaultChargeDescription = "Charge for invoices"

// InvoiceAmount is one invoice being paid by a transaction
type InvoiceAmount struct {
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// chargeDescription builds a human-readable description from invoice display codes.
// Lookup failures fall back to the default description and never fail the charge.
func (s *Service) chargeDescription(ctx context.Context, invoices []InvoiceAmount) string {
	if len(invoices) == 0 || s.invoices == nil {
		return DefaultChargeDescription
	}

	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		if inv.InvoiceID != "" {
			ids = append(ids, inv.InvoiceID)
		}
	}
	if len(ids) == 0 {
		return DefaultChargeDescription
	}

	codes, err := s.invoices.InvoiceCodes(ctx, ids)
	if err != nil {
		s.logger.Warn("Invoice lookup failed, using default charge description",
			ports.Int("invoice_count", len(ids)),
			ports.Err(err),
		)
		return DefaultChargeDescription
	}
	if len(codes) == 0 {
		return DefaultChargeDescription
	}

	return fmt.Sprintf("Charge for %s", strings.Join(codes, ", "))
}
