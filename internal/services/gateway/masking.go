package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MaskMarker replaces the value of every sensitive field in audit payloads
const MaskMarker = "***"

// sensitiveFields are masked at any nesting depth
var sensitiveFields = map[string]struct{}{
	"number":    {},
	"exp_month": {},
	"exp_year":  {},
	"cvc":       {},
}

// MaskPayload serializes v to JSON with every sensitive field replaced by MaskMarker
func MaskPayload(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal audit payload: %w", err)
	}
	return MaskJSON(raw)
}

// MaskJSON masks an already serialized payload
func MaskJSON(raw []byte) ([]byte, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode audit payload: %w", err)
	}

	masked, err := json.Marshal(maskValue(doc))
	if err != nil {
		return nil, fmt.Errorf("marshal masked payload: %w", err)
	}
	return masked, nil
}

func maskValue(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for key, child := range node {
			if _, sensitive := sensitiveFields[key]; sensitive && child != nil {
				node[key] = MaskMarker
				continue
			}
			node[key] = maskValue(child)
		}
		return node
	case []any:
		for i, child := range node {
			node[i] = maskValue(child)
		}
		return node
	default:
		return v
	}
}
