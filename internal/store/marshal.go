package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalStrings encodes a string list as JSON TEXT for storage.
// HTML escaping is disabled so stored text stays byte-identical to input.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return "", fmt.Errorf("marshal strings: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalStrings parses JSON TEXT written by marshalStrings.
// An empty list decodes to nil.
func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("unmarshal strings: %w", err)
	}
	return values, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
