package postgres

import (
	"context"
	"fmt"
)

// schema creates the tables the repositories read and write. The invoices
// and gateway_accounts tables belong to the host; they are created here only
// when absent so the adapter can run standalone.
const schema = `
CREATE TABLE IF NOT EXISTS gateway_audit_logs (
    id          UUID PRIMARY KEY,
    gateway_id  TEXT NOT NULL,
    url         TEXT NOT NULL,
    direction   TEXT NOT NULL CHECK (direction IN ('input', 'output')),
    payload     JSONB NOT NULL,
    success     BOOLEAN NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_gateway_audit_logs_gateway_created
    ON gateway_audit_logs (gateway_id, created_at DESC);

CREATE TABLE IF NOT EXISTS invoices (
    id    TEXT PRIMARY KEY,
    code  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gateway_accounts (
    id                   TEXT PRIMARY KEY,
    gateway_id           TEXT NOT NULL,
    reference_id         TEXT,
    client_reference_id  TEXT,
    active               BOOLEAN NOT NULL DEFAULT TRUE,
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_gateway_accounts_gateway_active
    ON gateway_accounts (gateway_id) WHERE active;
`

// EnsureSchema creates missing tables and indexes
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
