package logutil

import "strings"

// Redacted replaces the value of sensitive fields in logs.
const Redacted = "[REDACTED]"

var sensitiveKeyParts = []string{"token", "password", "secret", "key", "auth", "authorization"}

// IsSensitiveKey reports whether a field name looks like it holds a credential.
// Matching is a case-insensitive substring match.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// Sanitize returns a copy of data with sensitive values replaced, descending
// into nested maps and slices. The input is not modified.
func Sanitize(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		if IsSensitiveKey(k) {
			out[k] = Redacted
			continue
		}
		out[k] = SanitizeValue(v)
	}
	return out
}

// SanitizeValue redacts sensitive fields inside any decoded JSON value.
func SanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Sanitize(val)
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = SanitizeValue(item)
		}
		return items
	default:
		return v
	}
}

// maxBodyLogLen bounds how much of a non-JSON upstream body reaches the log.
const maxBodyLogLen = 512

// SanitizeBody prepares a decoded upstream body for logging: JSON values are
// redacted, plain text is truncated.
func SanitizeBody(v any) any {
	if text, ok := v.(string); ok {
		return TruncateForLog(text, maxBodyLogLen)
	}
	return SanitizeValue(v)
}

// SanitizeHeaders flattens HTTP headers for logging and redacts credentials
// such as crm-pay-token and Authorization.
func SanitizeHeaders(headers map[string][]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, values := range headers {
		if IsSensitiveKey(k) {
			out[k] = Redacted
			continue
		}
		out[k] = strings.Join(values, ", ")
	}
	return out
}
