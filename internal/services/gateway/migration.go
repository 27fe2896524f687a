package gateway

import (
	"context"
	"fmt"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
	"github.com/kevin07696/stripe-gateway/pkg/observability"
)

// MigrationReport summarises one legacy migration batch
type MigrationReport struct {
	Migrated int `json:"migrated"`
	// Skipped accounts have no default card at the processor
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	// Remaining is the number of legacy accounts still to migrate
	Remaining int `json:"remaining"`
}

// MigrateBatch rebinds up to maxCount legacy accounts to acct's gateway. Each
// legacy account references a processor customer; its default card becomes
// the new payment method reference.
func (s *Service) MigrateBatch(ctx context.Context, acct Account, maxCount int) (*MigrationReport, error) {
	report := &MigrationReport{}
	if s.legacy == nil {
		return report, nil
	}
	if maxCount <= 0 {
		maxCount = s.config.MigrationBatchSize
	}

	accounts, err := s.legacy.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("list legacy accounts: %w", err)
	}

	limit := min(maxCount, len(accounts))
	for _, legacy := range accounts {
		if report.Migrated >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			report.Remaining = len(accounts) - report.Migrated
			return report, err
		}

		cust, gwErr := execute(ctx, s, acct, OpRetrieveCustomer, map[string]string{"id": legacy.ReferenceID},
			func(ctx context.Context, key string) (*adapterports.Customer, error) {
				return s.remote.RetrieveCustomer(ctx, key, legacy.ReferenceID)
			})
		if gwErr != nil {
			report.Failed++
			continue
		}
		if cust.DefaultSourceID == "" {
			report.Skipped++
			continue
		}

		if err := s.legacy.Rebind(ctx, legacy.ID, acct.GatewayID, cust.DefaultSourceID, cust.ID); err != nil {
			s.logger.Error("Failed to rebind legacy account",
				ports.String("account_id", legacy.ID),
				ports.Err(err),
			)
			report.Failed++
			continue
		}
		report.Migrated++
	}

	report.Remaining = len(accounts) - report.Migrated
	observability.RecordMigratedAccounts(report.Migrated)

	s.logger.Info("Legacy migration batch completed",
		ports.String("gateway_id", acct.GatewayID),
		ports.Int("migrated", report.Migrated),
		ports.Int("skipped", report.Skipped),
		ports.Int("failed", report.Failed),
		ports.Int("remaining", report.Remaining),
	)
	return report, nil
}
