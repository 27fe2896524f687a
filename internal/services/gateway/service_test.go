package gateway

import (
	"time"

	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/testutil/fixtures"
	tmocks "github.com/kevin07696/stripe-gateway/internal/testutil/mocks"
	"github.com/kevin07696/stripe-gateway/test/mocks"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type testHarness struct {
	service  *Service
	remote   *tmocks.MockRemoteClient
	audit    *mocks.MockAuditLog
	invoices *tmocks.MockInvoiceLookup
	legacy   *tmocks.MockLegacyAccountStore
	logger   *mocks.MockLogger
}

func newTestHarness() *testHarness {
	h := &testHarness{
		remote:   new(tmocks.MockRemoteClient),
		audit:    mocks.NewMockAuditLog(),
		invoices: new(tmocks.MockInvoiceLookup),
		legacy:   new(tmocks.MockLegacyAccountStore),
		logger:   mocks.NewMockLogger(),
	}
	h.service = NewService(h.remote, h.audit, h.invoices, h.legacy, h.logger, Config{MigrationBatchSize: 2})
	h.service.now = func() time.Time { return fixedNow }
	return h
}

func testAccount() Account {
	return Account{
		GatewayID: "gw_1",
		Config: domain.GatewayConfig{
			PublishableKey: fixtures.TestPublishableKey,
			SecretKey:      fixtures.TestSecretKey,
		},
		Currency: "USD",
	}
}
