// Package version provides version information for the tplrename CLI tool.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are populated at build time using -ldflags.
// Example:
// go build -ldflags "-X 'tplrename/pkg/version.Version=1.2.3' -X 'tplrename/pkg/version.Commit=abcdefg' -X 'tplrename/pkg/version.BuildTime=2024-04-27T15:04:05Z'"
var (
	Version   = "dev"     // Semantic version of the application
	Commit    = "none"    // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

// Info contains comprehensive version information.
type Info struct {
	Version   string // Semantic version
	GitCommit string // Git commit hash
	BuildTime string // Build timestamp
	GoVersion string // Go runtime version
	Platform  string // OS and architecture
}

// Get returns the current version information. When the binary was built
// without ldflags, the VCS revision recorded by the Go toolchain is used.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if info.GitCommit == "none" {
		if revision := vcsRevision(); revision != "" {
			info.GitCommit = revision
		}
	}
	return info
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var revision, modified string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified == "true" {
		return revision + "-dirty"
	}
	return revision
}

// String returns the version information in a standard, single-line format.
// Example Output:
// tplrename version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.22.4 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf(
		"tplrename version %s (commit: %s) built at %s with %s on %s",
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
