// Package version exposes build-time version information.
package version

import "fmt"

// Set at build time via -ldflags.
var (
	// Version is the semantic version of the viewer.
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built.
	BuildTime = "unknown"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"
)

// Full returns a single-line version string suitable for logging.
func Full() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
