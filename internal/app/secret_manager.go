package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/adapters/secrets"
	"github.com/kevin07696/stripe-gateway/internal/config"
)

// newSecretManager builds the secret manager named by cfg.Backend
func newSecretManager(ctx context.Context, cfg config.SecretsConfig, logger *zap.Logger) (adapterports.SecretManagerAdapter, error) {
	switch cfg.Backend {
	case config.SecretBackendAWS:
		awsConfig := secrets.DefaultAWSSecretsManagerConfig(cfg.AWSRegion)
		awsConfig.Endpoint = cfg.AWSEndpoint
		awsConfig.CacheTTL = cfg.CacheTTL
		return secrets.NewAWSSecretsManagerAdapter(ctx, awsConfig, logger)

	case config.SecretBackendVault:
		vaultConfig := secrets.DefaultVaultConfig(cfg.VaultAddr)
		vaultConfig.Token = cfg.VaultToken
		vaultConfig.MountPath = cfg.VaultMount
		vaultConfig.CacheTTL = cfg.CacheTTL
		return secrets.NewVaultAdapter(ctx, vaultConfig, logger)

	case config.SecretBackendLocal:
		logger.Warn("Using local secret files - not for production use",
			zap.String("dir", cfg.Dir),
		)
		return secrets.NewLocalSecretManager(cfg.Dir, logger), nil

	default:
		return nil, fmt.Errorf("unknown secret backend %q", cfg.Backend)
	}
}
