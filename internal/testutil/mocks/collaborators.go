package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
)

// MockInvoiceLookup is a testify mock of ports.InvoiceLookup
type MockInvoiceLookup struct {
	mock.Mock
}

func (m *MockInvoiceLookup) InvoiceCodes(ctx context.Context, invoiceIDs []string) ([]string, error) {
	args := m.Called(ctx, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockLegacyAccountStore is a testify mock of ports.LegacyAccountStore
type MockLegacyAccountStore struct {
	mock.Mock
}

func (m *MockLegacyAccountStore) ListActive(ctx context.Context) ([]ports.LegacyAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.LegacyAccount), args.Error(1)
}

func (m *MockLegacyAccountStore) Rebind(ctx context.Context, accountID, gatewayID, referenceID, clientReferenceID string) error {
	args := m.Called(ctx, accountID, gatewayID, referenceID, clientReferenceID)
	return args.Error(0)
}

// MockAuditLogSink is a testify mock of ports.AuditLogSink
type MockAuditLogSink struct {
	mock.Mock
}

func (m *MockAuditLogSink) Append(ctx context.Context, entry *ports.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
