package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildInfo(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { SetBuildInfo(origVersion, origCommit, origDate) })
	SetBuildInfo(v, commit, date)
}

func TestGetCodenameForVersion(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{name: "exact match", version: "0.1.0", expected: "Teletype"},
		{name: "patch version uses base codename", version: "0.3.7", expected: "VT100"},
		{name: "prerelease uses base codename", version: "0.2.0-beta.1", expected: "VT52"},
		{name: "build metadata uses base codename", version: "1.0.2+55.abc", expected: "Xterm"},
		{name: "version without codename", version: "0.9.0", expected: ""},
		{name: "invalid version", version: "invalid", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetCodenameForVersion(tt.version))
		})
	}
}

func TestGetInfo(t *testing.T) {
	withBuildInfo(t, "0.1.2", "0123456789abcdef", "2026-01-02")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "0.1.2", info.Version)
	assert.Equal(t, "Teletype", info.Codename)
	assert.Equal(t, uint64(2), info.SemVer.Patch())
	assert.True(t, strings.Contains(info.Platform, "/"))

	withBuildInfo(t, "not-a-version", "unknown", "unknown")
	_, err = GetInfo()
	assert.Error(t, err)
	assert.Error(t, ValidateVersion())
}

func TestGetFormattedVersion(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		date     string
		expected string
	}{
		{name: "development build", version: "0.1.0", commit: "unknown", date: "unknown", expected: "cmdterm v0.1.0 'Teletype'"},
		{name: "release build", version: "0.2.1", commit: "abcdef0123", date: "2026-03-04", expected: "cmdterm v0.2.1 'VT52', commit abcdef0, built 2026-03-04"},
		{name: "no codename", version: "0.9.0", commit: "", date: "", expected: "cmdterm v0.9.0"},
		{name: "invalid", version: "x", commit: "unknown", date: "unknown", expected: "cmdterm vx (invalid version)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit, tt.date)
			assert.Equal(t, tt.expected, GetFormattedVersion())
		})
	}
}

func TestGetDetailedVersion(t *testing.T) {
	withBuildInfo(t, "0.4.0+12.deadbee", "deadbeef", "2026-05-06")

	detail := GetDetailedVersion()
	assert.Contains(t, detail, "Codename: VT220")
	assert.Contains(t, detail, "Build Metadata: 12.deadbee")
	assert.Contains(t, detail, "Go Version: go")
}

func TestVersionParts(t *testing.T) {
	withBuildInfo(t, "1.2.3-rc.1+7.abc", "unknown", "unknown")

	assert.Equal(t, "1.2.3", GetBaseVersion())
	assert.Equal(t, "7.abc", GetBuildMetadata())
	assert.True(t, IsPrerelease())
	assert.True(t, IsDevelopment())
	assert.Equal(t, "1.2.3-rc.1+7.abc", GetVersion())
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2   string
		expected int
		wantErr  bool
	}{
		{v1: "0.1.0", v2: "0.2.0", expected: -1},
		{v1: "1.0.0", v2: "1.0.0", expected: 0},
		{v1: "1.0.1", v2: "1.0.0-rc.1", expected: 1},
		{v1: "bad", v2: "1.0.0", wantErr: true},
		{v1: "1.0.0", v2: "bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.v1+"_vs_"+tt.v2, func(t *testing.T) {
			got, err := CompareVersions(tt.v1, tt.v2)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
