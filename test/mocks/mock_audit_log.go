package mocks

import (
	"context"
	"sync"

	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
)

// MockAuditLog records audit entries in memory for testing
type MockAuditLog struct {
	mu sync.Mutex

	appendError error

	// Entries holds every entry received, in order
	Entries []ports.AuditLogEntry
}

// NewMockAuditLog creates a new recording audit sink
func NewMockAuditLog() *MockAuditLog {
	return &MockAuditLog{}
}

// SetAppendError makes Append fail with err after recording the entry
func (m *MockAuditLog) SetAppendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendError = err
}

// Append records entry
func (m *MockAuditLog) Append(ctx context.Context, entry *ports.AuditLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, *entry)
	return m.appendError
}

// ByDirection returns the recorded entries flowing in direction
func (m *MockAuditLog) ByDirection(direction ports.AuditDirection) []ports.AuditLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ports.AuditLogEntry
	for _, e := range m.Entries {
		if e.Direction == direction {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears recorded entries
func (m *MockAuditLog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = nil
	m.appendError = nil
}
