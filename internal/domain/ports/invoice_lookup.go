package ports

import "context"

// InvoiceLookup resolves invoice identifiers to their display codes, used only
// to describe a charge
type InvoiceLookup interface {
	InvoiceCodes(ctx context.Context, invoiceIDs []string) ([]string, error)
}
