// Package version holds the release version reported by /health and the CLI.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/orris-inc/payrelay/internal/shared/version.Version=1.2.3".
var Version = "1.0.0"

// Commit is the VCS revision the binary was built from, if known.
var Commit = ""

// String returns the version with the commit appended when present.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
