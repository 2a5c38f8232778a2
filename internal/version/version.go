// Package version provides build-time version information.
package version

// Set at build time via -ldflags, e.g.
//
//	go build -ldflags "-X numberline/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// Version is the semantic version.
	Version = "0.1.0"

	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)
