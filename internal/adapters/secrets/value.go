package secrets

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrEmptySecret is returned when a secret exists but carries no value
var ErrEmptySecret = errors.New("secret value is empty")

// valueKeys are the JSON fields searched, in order, for the secret value
var valueKeys = []string{"secret_key", "value"}

// parseSecretValue accepts either a bare value or a JSON object holding the
// value under one of valueKeys. Other string fields become metadata.
func parseSecretValue(raw string) (string, map[string]string, error) {
	raw = strings.TrimSpace(raw)
	metadata := make(map[string]string)

	var fields map[string]any
	if strings.HasPrefix(raw, "{") && json.Unmarshal([]byte(raw), &fields) == nil {
		return valueFromFields(fields)
	}

	if raw == "" {
		return "", nil, ErrEmptySecret
	}
	return raw, metadata, nil
}

// valueFromFields extracts the value from an already decoded secret map
func valueFromFields(fields map[string]any) (string, map[string]string, error) {
	metadata := make(map[string]string)
	value := ""
	for _, key := range valueKeys {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			value = strings.TrimSpace(s)
			break
		}
	}
	for k, v := range fields {
		if s, ok := v.(string); ok && !isValueKey(k) {
			metadata[k] = s
		}
	}
	if value == "" {
		return "", nil, ErrEmptySecret
	}
	return value, metadata, nil
}

func isValueKey(k string) bool {
	for _, key := range valueKeys {
		if k == key {
			return true
		}
	}
	return false
}
