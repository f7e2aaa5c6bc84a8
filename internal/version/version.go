// Package version provides build-time version information for sudokuread.
package version

import "fmt"

// Set at build time with -ldflags "-X sudoku-reader/internal/version.Version=..."
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the build information for -version output.
func String() string {
	return fmt.Sprintf("sudokuread %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
