package gateway

import (
	"context"
	"time"

	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
)

// Settings keys understood by EditSettings
const (
	SettingPublishableKey  = "publishable_key"
	SettingSecretKey       = "secret_key"
	SettingMigrateAccounts = "migrate_accounts"
)

// MessageSecretKeyInvalid is reported when the live connectivity check fails
const MessageSecretKeyInvalid = "Unable to connect to the API using the given Secret Key."

// SettingsUpdate is the outcome of EditSettings
type SettingsUpdate struct {
	// Meta is the settings record to persist; control flags are stripped
	Meta map[string]string `json:"meta"`
	// Migration is set when a legacy migration batch ran
	Migration *MigrationReport `json:"migration,omitempty"`
}

// EncryptableFields lists the settings the host must store encrypted
func EncryptableFields() []string {
	return domain.GatewayConfig{}.EncryptableFields()
}

// ValidateSettings checks that both keys are present and, when
// checkConnection is set, that the secret key can reach the processor
func (s *Service) ValidateSettings(ctx context.Context, cfg domain.GatewayConfig, checkConnection bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !checkConnection {
		return nil
	}

	start := time.Now()
	if _, err := s.remote.RetrieveBalance(ctx, cfg.SecretKey); err != nil {
		s.logger.Warn("Secret key failed the connectivity check",
			ports.String("secret_key", cfg.MaskedSecretKey()),
			ports.Duration("duration", time.Since(start)),
		)
		fields := make(domain.FieldErrors)
		fields.Add(SettingSecretKey, "valid", MessageSecretKeyInvalid)
		return domain.NewConfigurationError(fields)
	}

	s.logger.Debug("Secret key passed the connectivity check",
		ports.String("secret_key", cfg.MaskedSecretKey()),
		ports.Duration("duration", time.Since(start)),
	)
	return nil
}

// EditSettings validates a settings record. When it is valid and
// migrate_accounts is present, one legacy migration batch runs for gatewayID.
// The returned meta never carries migrate_accounts.
func (s *Service) EditSettings(ctx context.Context, gatewayID string, meta map[string]string) (*SettingsUpdate, error) {
	update := &SettingsUpdate{Meta: make(map[string]string, len(meta))}
	for k, v := range meta {
		if k == SettingMigrateAccounts {
			continue
		}
		update.Meta[k] = v
	}

	cfg := domain.GatewayConfig{
		PublishableKey: meta[SettingPublishableKey],
		SecretKey:      meta[SettingSecretKey],
	}
	if err := s.ValidateSettings(ctx, cfg, true); err != nil {
		return update, err
	}

	if _, migrate := meta[SettingMigrateAccounts]; migrate {
		report, err := s.MigrateBatch(ctx, Account{GatewayID: gatewayID, Config: cfg}, s.config.MigrationBatchSize)
		if err != nil {
			s.logger.Error("Legacy account migration failed",
				ports.String("gateway_id", gatewayID),
				ports.Err(err),
			)
		}
		update.Migration = report
	}

	return update, nil
}
