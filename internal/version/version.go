// Package version exposes build information injected at link time.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of this build, set via ldflags
	Version = "dev"

	// GitCommit is the commit this binary was built from
	GitCommit = "unknown"

	// BuildTime is when this binary was built
	BuildTime = "unknown"
)

// String returns a single-line human-readable version description
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, GitCommit, BuildTime, runtime.Version())
}
