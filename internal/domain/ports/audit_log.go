package ports

import (
	"context"
	"time"
)

// AuditDirection tags whether a logged payload was sent to or received from the processor
type AuditDirection string

const (
	AuditDirectionInput  AuditDirection = "input"
	AuditDirectionOutput AuditDirection = "output"
)

// AuditLogEntry is one write-once record of a remote call payload.
// Payload is already masked when handed to the sink.
type AuditLogEntry struct {
	ID        string
	GatewayID string
	URL       string
	Direction AuditDirection
	Payload   []byte
	Success   bool
	CreatedAt time.Time
}

// AuditLogSink is the append-only store for remote call audit entries.
// The sink does no masking of its own.
type AuditLogSink interface {
	Append(ctx context.Context, entry *AuditLogEntry) error
}
