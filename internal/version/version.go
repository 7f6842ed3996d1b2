// Package version exposes build metadata stamped at link time.
package version

// Overridden with -ldflags "-X .../internal/version.Version=..." by the
// release build; defaults identify a local dev build.
//
//nolint:revive
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
