package payment

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// WebhookEnvelope is a provider webhook body decoded as a JSON object.
// Numbers are expected as json.Number (decoder.UseNumber).
type WebhookEnvelope map[string]any

// Data returns the envelope's "data" object, or the envelope itself when the
// provider sent a flat payload.
func (e WebhookEnvelope) Data() map[string]any {
	if data, ok := e["data"].(map[string]any); ok {
		return data
	}
	return e
}

// Attributes returns data.attributes, or an empty map.
func (e WebhookEnvelope) Attributes() map[string]any {
	if attrs, ok := e.Data()["attributes"].(map[string]any); ok {
		return attrs
	}
	return map[string]any{}
}

// stringField returns a scalar field as text. Absent, null and empty string
// values are reported as missing; objects and arrays are never identifiers.
func stringField(m map[string]any, key string) (string, bool) {
	switch v := m[key].(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// decimalField returns whether key is present (non-null, non-empty) and its
// numeric value. A present but non-numeric or out of range value parses to
// zero with ok=false.
func decimalField(m map[string]any, key string) (value decimal.Decimal, present bool, ok bool) {
	value, present, ok = parseDecimalField(m[key])
	if ok && !InAmountRange(value) {
		return decimal.Zero, true, false
	}
	return value, present, ok
}

func parseDecimalField(raw any) (decimal.Decimal, bool, bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, false, false
	case string:
		if v == "" {
			return decimal.Zero, false, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, true, false
		}
		return d, true, true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, true, false
		}
		return d, true, true
	case float64:
		return decimal.NewFromFloat(v), true, true
	default:
		return decimal.Zero, true, false
	}
}
