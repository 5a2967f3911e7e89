// Package jsonutil provides shared helpers for JSON decoding and for reading
// widget settings bags, whose values arrive as map[string]any after a
// round-trip through persistence.
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// GetString extracts a string from a settings bag, or "" when the key is
// absent or not a string.
func GetString(m map[string]any, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// GetStringOr extracts a string from a settings bag with a fallback.
func GetStringOr(m map[string]any, key, fallback string) string {
	if val, ok := m[key].(string); ok && val != "" {
		return val
	}
	return fallback
}

// GetInt extracts an integer from a settings bag. JSON decoding yields
// float64 for numbers, so both int and float64 are accepted.
func GetInt(m map[string]any, key string, fallback int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// ToString renders a settings value for display. Whole-number floats are
// shown without a fraction.
func ToString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
