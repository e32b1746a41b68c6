// Package version reports build information for the sharpgen binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build information, set at build time via
// -ldflags "-X github.com/teranos/sharpgen/internal/version.Version=v0.3.0".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

// Info contains version and build information
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information. Binaries installed with
// go install carry no ldflags; their module version and VCS stamp are used
// instead.
func Get() Info {
	info := Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fillFrom(bi)
	}
	return info
}

func (i *Info) fillFrom(bi *debug.BuildInfo) {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.CommitHash == "unknown" {
				i.CommitHash = s.Value
			}
		case "vcs.time":
			if i.BuildTime == "unknown" {
				i.BuildTime = s.Value
			}
		}
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("sharpgen %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
}

// Short returns the first seven characters of the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
