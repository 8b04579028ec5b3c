package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestInfoString checks the multi-line and short forms with and without VCS metadata.
func TestInfoString(t *testing.T) {
	info := Info{Version: "1.2.3", GoVersion: "go1.23.0"}
	assert.EqualValues(t, "clif version 1.2.3\n  Go version: go1.23.0\n", info.String())
	assert.EqualValues(t, "1.2.3", info.Short())

	info.GitCommit = "0123456789abcdef"
	info.GitCommitTime = "2024-05-01T10:20:30Z"
	info.GitTreeDirty = true
	assert.EqualValues(t, ""+
		"clif version 1.2.3\n"+
		"  Commit:     0123456-dirty\n"+
		"  Built:      2024-05-01 10:20:30 UTC\n"+
		"  Go version: go1.23.0\n", info.String())
	assert.EqualValues(t, "1.2.3+0123456-dirty", info.Short())
}

// TestFormattedTime checks unparsable and missing commit times.
func TestFormattedTime(t *testing.T) {
	assert.EqualValues(t, "unknown", Info{}.FormattedTime())
	assert.EqualValues(t, "yesterday", Info{GitCommitTime: "yesterday"}.FormattedTime())
	assert.EqualValues(t, "abc", Info{GitCommit: "abc"}.ShortCommit())
}

// TestApplyBuildSettings checks build settings never override explicitly set values.
func TestApplyBuildSettings(t *testing.T) {
	oldCommit, oldTime, oldDirty := GitCommit, GitCommitTime, GitTreeDirty
	defer func() {
		GitCommit, GitCommitTime, GitTreeDirty = oldCommit, oldTime, oldDirty
	}()

	GitCommit, GitCommitTime, GitTreeDirty = "explicit", "", ""
	applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "fromvcs"},
		{Key: "vcs.time", Value: "2024-05-01T10:20:30Z"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "GOOS", Value: "linux"},
	})
	assert.EqualValues(t, "explicit", GitCommit)
	assert.EqualValues(t, "2024-05-01T10:20:30Z", GitCommitTime)
	assert.True(t, GetInfo().GitTreeDirty)
}
