package cli

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withBuild sets the link-time values and the embedded build info for one test.
func withBuild(t *testing.T, v, rev, date string, info *debug.BuildInfo) {
	t.Helper()
	origVersion, origCommit, origDate, origRead := version, commit, buildDate, readBuildInfo
	t.Cleanup(func() {
		version, commit, buildDate, readBuildInfo = origVersion, origCommit, origDate, origRead
	})

	version = v
	SetBuildInfo(rev, date)
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
}

func runVersion(t *testing.T) string {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	withBuild(t, "test-version-1.0.0", "abc1234", "2026-10-01T12:00:00Z", nil)

	out := runVersion(t)

	assert.Contains(t, out, "splookup version test-version-1.0.0")
	assert.Contains(t, out, "commit:   abc1234")
	assert.Contains(t, out, "built:    2026-10-01T12:00:00Z")
	assert.Contains(t, out, "go:       "+runtime.Version())
	assert.Contains(t, out, "platform: "+runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	withBuild(t, "dev", "", "", nil)

	out := runVersion(t)

	assert.Contains(t, out, "splookup version dev")
	assert.Contains(t, out, "commit:   unknown")
	assert.Contains(t, out, "built:    unknown")
}

func TestVersionCmd_FallsBackToVCSSettings(t *testing.T) {
	withBuild(t, "dev", "", "", &debug.BuildInfo{
		GoVersion: "go1.99.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2026-09-30T08:15:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	out := runVersion(t)

	assert.Contains(t, out, "commit:   deadbeef (modified)")
	assert.Contains(t, out, "built:    2026-09-30T08:15:00Z")
	assert.Contains(t, out, "go:       go1.99.0")
}

func TestVersionCmd_LinkTimeValuesWin(t *testing.T) {
	withBuild(t, "1.4.0", "release", "2026-10-19", &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2026-09-30T08:15:00Z"},
		},
	})

	meta := currentBuild()

	assert.Equal(t, "1.4.0", meta.Version)
	assert.Equal(t, "release", meta.Commit)
	assert.Equal(t, "2026-10-19", meta.Date)
	assert.False(t, meta.Modified)
}
