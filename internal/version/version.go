// Package version exposes build-time version information.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Short returns only the version number.
func Short() string {
	return Version
}

// Info returns detailed version information.
func Info() string {
	return fmt.Sprintf("sarthi %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, BuildTime, runtime.Version())
}
