// Package jsonutil provides helpers for bodies received from external services.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeOrText decodes raw as JSON, keeping numbers as json.Number.
// Anything that is not valid JSON is returned as a string.
//
// Example:
//
//	`{"ok":true}` -> map[string]any{"ok": true}
//	`accepted`    -> "accepted"
//	``            -> ""
func DecodeOrText(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return string(raw)
	}
	return v
}

// MessageOf returns body["message"] when body is an object carrying a
// string message, otherwise a textual rendering of the whole body.
func MessageOf(body any) string {
	switch v := body.(type) {
	case map[string]any:
		if msg, ok := v["message"].(string); ok && msg != "" {
			return msg
		}
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(out)
	case string:
		return v
	case nil:
		return ""
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(out)
	}
}

// ScalarText renders a JSON scalar as text: strings as-is, numbers in their
// JSON form. Objects, arrays and null yield "".
func ScalarText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return fmt.Sprint(val)
	case bool:
		return fmt.Sprint(val)
	default:
		return ""
	}
}
