// Package build holds version metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/ariel-frischer/tgit/internal/build.Version=v1.2.0"
//
// It imports no other internal package.
package build

import (
	"fmt"
	"runtime"
)

// Link-time values. Unset builds report "dev".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild reports whether Version was left unset.
func IsDevBuild() bool {
	return Version == "dev"
}

// Info returns the one-line summary printed by --version.
func Info() string {
	return fmt.Sprintf("tgit %s (commit %s, built %s, %s/%s)",
		Version, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
