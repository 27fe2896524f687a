package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value    string            // The secret value (e.g. the processor secret key)
	Version  string            // Secret version identifier
	Metadata map[string]string // Additional secret metadata
}

// SecretManagerAdapter retrieves secrets from a secret management service.
// Implementations cache values for a bounded TTL and never log them.
type SecretManagerAdapter interface {
	// GetSecret retrieves the current version of a secret by its path.
	// Path format depends on implementation:
	//   - AWS: "stripe-gateway/{gateway_id}/secret-key" or full ARN
	//   - Vault: "stripe-gateway/{gateway_id}" under the KV mount
	//   - Local: a file path relative to the secrets directory
	GetSecret(ctx context.Context, path string) (*Secret, error)

	// GetSecretVersion retrieves a specific version of a secret, used while a
	// rotated key is still being rolled out
	GetSecretVersion(ctx context.Context, path string, version string) (*Secret, error)
}
