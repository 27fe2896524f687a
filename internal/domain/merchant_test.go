package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      GatewayConfig
		wantFields  []string
		wantMessage map[string]string
	}{
		{
			name:   "both_keys_present",
			config: GatewayConfig{PublishableKey: "pk_test_1", SecretKey: "sk_test_1"},
		},
		{
			name:       "missing_publishable_key",
			config:     GatewayConfig{SecretKey: "sk_test_1"},
			wantFields: []string{"publishable_key"},
			wantMessage: map[string]string{
				"publishable_key": "Please enter a Publishable Key.",
			},
		},
		{
			name:       "blank_secret_key",
			config:     GatewayConfig{PublishableKey: "pk_test_1", SecretKey: "   "},
			wantFields: []string{"secret_key"},
			wantMessage: map[string]string{
				"secret_key": "Please enter a Secret Key.",
			},
		},
		{
			name:       "both_missing",
			config:     GatewayConfig{},
			wantFields: []string{"publishable_key", "secret_key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			gwErr, ok := AsGatewayError(err)
			require.True(t, ok)
			assert.Equal(t, ErrorCodeConfiguration, gwErr.Code)
			assert.Len(t, gwErr.Fields, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, gwErr.Fields, field)
			}
			for field, msg := range tt.wantMessage {
				assert.Equal(t, msg, gwErr.Fields[field]["empty"])
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"sk_test_51HxAbCdEfGh": "sk_test_****EfGh",
		"sk_live_abcd":         "sk_live_****",
		"rk_live_1234567890":   "rk_live_****7890",
		"plainsecretvalue":     "****alue",
		"":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, MaskSecret(in), in)
	}
}

func TestGatewayConfig_StringNeverPrintsSecret(t *testing.T) {
	cfg := GatewayConfig{PublishableKey: "pk_test_1", SecretKey: "sk_test_51HxSuperSecret"}
	assert.NotContains(t, cfg.String(), "SuperSecret")
	assert.Contains(t, cfg.String(), "sk_test_****cret")
	assert.Equal(t, []string{"secret_key"}, cfg.EncryptableFields())
}
