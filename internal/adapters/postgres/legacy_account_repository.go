package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
)

// ErrAccountNotFound is returned when a rebind targets a missing or inactive account
var ErrAccountNotFound = errors.New("gateway account not found")

// LegacyAccountRepository implements ports.LegacyAccountStore. Accounts
// still bound to legacyGatewayID are the ones awaiting migration.
type LegacyAccountRepository struct {
	db              *DB
	legacyGatewayID string
}

// NewLegacyAccountRepository creates a new legacy account repository
func NewLegacyAccountRepository(db *DB, legacyGatewayID string) *LegacyAccountRepository {
	return &LegacyAccountRepository{db: db, legacyGatewayID: legacyGatewayID}
}

var _ ports.LegacyAccountStore = (*LegacyAccountRepository)(nil)

// ListActive returns active legacy accounts that carry a remote reference
func (r *LegacyAccountRepository) ListActive(ctx context.Context) ([]ports.LegacyAccount, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	rows, err := r.db.pool.Query(ctx, `
		SELECT id, gateway_id, reference_id
		FROM gateway_accounts
		WHERE gateway_id = $1
		  AND active
		  AND COALESCE(reference_id, '') <> ''
		ORDER BY updated_at, id`,
		r.legacyGatewayID,
	)
	if err != nil {
		return nil, fmt.Errorf("list legacy accounts: %w", err)
	}

	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[ports.LegacyAccount])
	if err != nil {
		return nil, fmt.Errorf("collect legacy accounts: %w", err)
	}
	return accounts, nil
}

// Rebind points a legacy account at gatewayID with new remote references
func (r *LegacyAccountRepository) Rebind(ctx context.Context, accountID, gatewayID, referenceID, clientReferenceID string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		qctx, cancel := r.db.queryContext(ctx)
		defer cancel()

		tag, err := tx.Exec(qctx, `
			UPDATE gateway_accounts
			SET gateway_id = $2,
			    reference_id = $3,
			    client_reference_id = $4,
			    updated_at = NOW()
			WHERE id = $1 AND active`,
			accountID, gatewayID, referenceID, clientReferenceID,
		)
		if err != nil {
			return fmt.Errorf("rebind account %s: %w", accountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("rebind account %s: %w", accountID, ErrAccountNotFound)
		}
		return nil
	})
}
