// Package version exposes build metadata for the vizexport binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is the semantic version of the build. It is overridable with
// -ldflags at release time.
var Version = "0.1.0"

// Revision is the VCS revision baked into the build.
var Revision = findRevision()

func findRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}

	return "unknown"
}

// GetVersionString returns a human-readable version string.
func GetVersionString() string {
	return fmt.Sprintf("%s+%s", Version, Revision)
}
