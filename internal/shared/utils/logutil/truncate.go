package logutil

// TruncateForLog truncates a string to maxLen bytes for logging upstream
// bodies. Longer strings get a "..." suffix.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
