package postgres

import (
	"context"
	"fmt"

	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
)

// InvoiceRepository implements ports.InvoiceLookup over the host's invoices table
type InvoiceRepository struct {
	db *DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

var _ ports.InvoiceLookup = (*InvoiceRepository)(nil)

// InvoiceCodes returns the display codes of the given invoices in the order
// the ids were given. Unknown ids are skipped.
func (r *InvoiceRepository) InvoiceCodes(ctx context.Context, invoiceIDs []string) ([]string, error) {
	if len(invoiceIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	rows, err := r.db.pool.Query(ctx, `
		SELECT i.code
		FROM unnest($1::text[]) WITH ORDINALITY AS ids(id, ord)
		JOIN invoices i ON i.id = ids.id
		ORDER BY ids.ord`,
		invoiceIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query invoice codes: %w", err)
	}
	defer rows.Close()

	codes := make([]string, 0, len(invoiceIDs))
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan invoice code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice codes: %w", err)
	}
	return codes, nil
}
