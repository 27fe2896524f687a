package domain

import (
	"strings"
)

// GatewayConfig is the settings record of one installed gateway instance
type GatewayConfig struct {
	PublishableKey string `json:"publishable_key"`
	SecretKey      string `json:"secret_key"`
}

// EncryptableFields lists the settings the host must store encrypted
func (c GatewayConfig) EncryptableFields() []string {
	return []string{"secret_key"}
}

// Validate checks that the required keys are present
func (c GatewayConfig) Validate() error {
	fields := make(FieldErrors)
	if strings.TrimSpace(c.PublishableKey) == "" {
		fields.Add("publishable_key", "empty", "Please enter a Publishable Key.")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		fields.Add("secret_key", "empty", "Please enter a Secret Key.")
	}
	if !fields.Empty() {
		return NewConfigurationError(fields)
	}
	return nil
}

// MaskedSecretKey returns the secret key reduced to its mode prefix and last
// four characters, safe for logs
func (c GatewayConfig) MaskedSecretKey() string {
	return MaskSecret(c.SecretKey)
}

// MaskSecret hides all but the prefix (e.g. "sk_test_") and the last four characters
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	prefix := ""
	if i := strings.LastIndex(secret, "_"); i >= 0 && i < len(secret)-1 {
		prefix = secret[:i+1]
		secret = secret[i+1:]
	}
	if len(secret) <= 4 {
		return prefix + "****"
	}
	return prefix + "****" + secret[len(secret)-4:]
}

// String never prints the secret key
func (c GatewayConfig) String() string {
	return "GatewayConfig{publishable_key=" + c.PublishableKey + ", secret_key=" + c.MaskedSecretKey() + "}"
}
