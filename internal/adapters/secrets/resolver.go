package secrets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
)

// secretKeyPrefixes are the processor's secret and restricted key prefixes
var secretKeyPrefixes = []string{"sk_live_", "sk_test_", "rk_live_", "rk_test_"}

// KeyResolver loads a gateway secret key from a secret manager
type KeyResolver struct {
	manager ports.SecretManagerAdapter
	logger  *zap.Logger
}

// NewKeyResolver creates a resolver over manager
func NewKeyResolver(manager ports.SecretManagerAdapter, logger *zap.Logger) *KeyResolver {
	return &KeyResolver{manager: manager, logger: logger}
}

// ResolveSecretKey fetches the secret key stored at path and checks its shape.
// Only the masked key is ever logged.
func (r *KeyResolver) ResolveSecretKey(ctx context.Context, path string) (string, error) {
	secret, err := r.manager.GetSecret(ctx, path)
	if err != nil {
		return "", fmt.Errorf("resolve secret key: %w", err)
	}

	key := strings.TrimSpace(secret.Value)
	if !looksLikeSecretKey(key) {
		return "", fmt.Errorf("resolve secret key: value at %s is not a secret key", path)
	}

	r.logger.Info("Secret key resolved",
		zap.String("path", path),
		zap.String("version", secret.Version),
		zap.String("secret_key", domain.MaskSecret(key)),
	)
	return key, nil
}

func looksLikeSecretKey(key string) bool {
	for _, prefix := range secretKeyPrefixes {
		if strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
			return true
		}
	}
	return false
}
