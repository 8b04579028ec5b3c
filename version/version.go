// Package version provides build and version information for clif, read from the VCS metadata the Go toolchain
// embeds at build time unless set explicitly through ldflags.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// These variables can be set via ldflags at build time for explicit versioning.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// GitCommit is the git commit hash.
	GitCommit = ""
	// GitCommitTime is the timestamp of the git commit.
	GitCommitTime = ""
	// GitTreeDirty indicates if the git tree was dirty at build time.
	GitTreeDirty = ""
)

// Info contains the full version information for the build.
type Info struct {
	Version       string
	GitCommit     string
	GitCommitTime string
	GitTreeDirty  bool
	GoVersion     string
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	applyBuildSettings(info.Settings)
}

// applyBuildSettings fills the VCS variables which were not set through ldflags.
func applyBuildSettings(settings []debug.BuildSetting) {
	for _, kv := range settings {
		switch kv.Key {
		case "vcs.revision":
			if GitCommit == "" {
				GitCommit = kv.Value
			}
		case "vcs.time":
			if GitCommitTime == "" {
				GitCommitTime = kv.Value
			}
		case "vcs.modified":
			if GitTreeDirty == "" {
				GitTreeDirty = kv.Value
			}
		}
	}
}

// GetInfo returns the complete version information.
func GetInfo() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		GitCommitTime: GitCommitTime,
		GitTreeDirty:  GitTreeDirty == "true",
		GoVersion:     runtime.Version(),
	}
}

// ShortCommit returns the first 7 characters of the git commit hash.
func (i Info) ShortCommit() string {
	if len(i.GitCommit) >= 7 {
		return i.GitCommit[:7]
	}
	return i.GitCommit
}

// FormattedTime returns the commit time in a human-readable format.
func (i Info) FormattedTime() string {
	if i.GitCommitTime == "" {
		return "unknown"
	}
	t, err := time.Parse(time.RFC3339, i.GitCommitTime)
	if err != nil {
		return i.GitCommitTime
	}
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}

// String returns a formatted multi-line version string.
func (i Info) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "clif version %s\n", i.Version)
	if i.GitCommit != "" {
		fmt.Fprintf(&sb, "  Commit:     %s\n", i.commitLabel())
	}
	if i.GitCommitTime != "" {
		fmt.Fprintf(&sb, "  Built:      %s\n", i.FormattedTime())
	}
	fmt.Fprintf(&sb, "  Go version: %s\n", i.GoVersion)

	return sb.String()
}

// Short returns a single-line version string suitable for --version output.
func (i Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	return i.Version + "+" + i.commitLabel()
}

func (i Info) commitLabel() string {
	if i.GitTreeDirty {
		return i.ShortCommit() + "-dirty"
	}
	return i.ShortCommit()
}
