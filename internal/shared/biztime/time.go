// Package biztime centralizes how the relay reads and renders the clock.
// All timestamps are UTC; nothing uses the implicit Local zone.
package biztime

import "time"

// ISOLayout renders millisecond precision with a literal Z, the format CRM
// clients already parse in health responses.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatISO formats t in UTC using ISOLayout.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}
