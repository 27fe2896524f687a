package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kevin07696/stripe-gateway/internal/adapters/ports"
)

// localSecretManager implements SecretManagerAdapter over a directory of files.
// WARNING: This is for development only. Use AWS Secrets Manager or Vault in production.
type localSecretManager struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalSecretManager creates a new local filesystem secret manager
func NewLocalSecretManager(basePath string, logger *zap.Logger) ports.SecretManagerAdapter {
	return &localSecretManager{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret reads a secret file. The file holds either the bare value or a
// JSON object with a "secret_key" or "value" field.
func (m *localSecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	filePath, err := m.resolve(secretPath)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Reading secret from filesystem", zap.String("path", secretPath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	value, metadata, err := parseSecretValue(string(data))
	if err != nil {
		return nil, fmt.Errorf("secret %s: %w", secretPath, err)
	}

	return &ports.Secret{Value: value, Version: "v1", Metadata: metadata}, nil
}

// GetSecretVersion only knows version "v1"
func (m *localSecretManager) GetSecretVersion(ctx context.Context, path string, version string) (*ports.Secret, error) {
	if version != "" && version != "v1" {
		return nil, fmt.Errorf("secret %s: version %s not available locally", path, version)
	}
	return m.GetSecret(ctx, path)
}

// resolve keeps secretPath inside basePath
func (m *localSecretManager) resolve(secretPath string) (string, error) {
	filePath := filepath.Join(m.basePath, secretPath)
	rel, err := filepath.Rel(m.basePath, filePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("secret path escapes secrets directory: %s", secretPath)
	}
	return filePath, nil
}
