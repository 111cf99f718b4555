package utils

import "strings"

// MaskSecret keeps the first two characters of a secret so operators can tell
// which credential is configured without printing it.
// Example: "sk_live_abcdef" -> "sk***"
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	runes := []rune(secret)
	if len(runes) <= 4 {
		return "***"
	}
	return string(runes[:2]) + strings.Repeat("*", 3)
}
