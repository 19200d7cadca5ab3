// Package version holds build-time version information for the CLI.
// The values are overridden via ldflags during release builds:
//
//	-X github.com/cesbo/error-rules/internal/version.Version=x.y.z
package version

// Version information (set via ldflags during build).
var (
	// Version is the release version.
	Version = "dev"
	// GitCommit is the git commit SHA the binary was built from.
	GitCommit = "unknown"
	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)
