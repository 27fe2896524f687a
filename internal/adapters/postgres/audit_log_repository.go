package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
)

// AuditLogRepository implements ports.AuditLogSink
type AuditLogRepository struct {
	db *DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

var _ ports.AuditLogSink = (*AuditLogRepository)(nil)

// Append stores one masked audit entry
func (r *AuditLogRepository) Append(ctx context.Context, entry *ports.AuditLogEntry) error {
	id, err := uuid.Parse(entry.ID)
	if err != nil {
		return fmt.Errorf("invalid audit entry ID: %w", err)
	}

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	_, err = r.db.pool.Exec(ctx, `
		INSERT INTO gateway_audit_logs (id, gateway_id, url, direction, payload, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, entry.GatewayID, entry.URL, string(entry.Direction), entry.Payload, entry.Success, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByGateway returns the most recent entries for gatewayID, newest first
func (r *AuditLogRepository) ListByGateway(ctx context.Context, gatewayID string, limit int) ([]ports.AuditLogEntry, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	rows, err := r.db.pool.Query(ctx, `
		SELECT id, gateway_id, url, direction, payload, success, created_at
		FROM gateway_audit_logs
		WHERE gateway_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		gatewayID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []ports.AuditLogEntry
	for rows.Next() {
		var (
			e         ports.AuditLogEntry
			id        uuid.UUID
			direction string
		)
		if err := rows.Scan(&id, &e.GatewayID, &e.URL, &direction, &e.Payload, &e.Success, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.ID = id.String()
		e.Direction = ports.AuditDirection(direction)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
