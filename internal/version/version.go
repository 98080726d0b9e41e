// Package version reports build information injected with ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is set with -ldflags "-X github.com/jmylchreest/img2color/internal/version.Version=x.y.z".
	Version = "dev"

	// Commit is set with -ldflags "-X github.com/jmylchreest/img2color/internal/version.Commit=$(git rev-parse HEAD)".
	Commit = "unknown"

	// Date is the RFC3339 build date.
	Date = "unknown"
)

// Info holds the build information.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// GetInfo returns the build information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line description of the build.
func String() string {
	info := GetInfo()
	if info.Commit != "unknown" && info.Date != "unknown" {
		return fmt.Sprintf("img2color %s (commit: %s, built: %s, %s, %s)",
			info.Version, shortCommit(info.Commit), info.Date, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("img2color %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
