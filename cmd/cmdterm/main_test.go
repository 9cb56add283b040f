package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdterm/internal/config"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	original := cfg
	cfg = config.Default()
	cfg.TestMode = true
	cfg.StartupScript = ""
	t.Cleanup(func() { cfg = original })
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunBatch(t *testing.T) {
	setupTestConfig(t)
	script := writeScript(t, t.TempDir(), "demo.cmd", "# demo\nprint one\nschedule 1 print two\nwarp\n")

	var out bytes.Buffer
	require.NoError(t, runBatch(&out, script, false, 2*time.Second))

	assert.Equal(t, strings.Join([]string{
		"> print one",
		"one",
		"> schedule 1 print two",
		"> warp",
		"Error: Command WARP could not be found",
		"> print two",
		"two",
	}, "\n")+"\n", out.String())
}

func TestRunBatch_SettleRunsChainedSchedules(t *testing.T) {
	setupTestConfig(t)
	script := writeScript(t, t.TempDir(), "chain.cmd", "schedule 1 schedule 1 print nested\n")

	var out bytes.Buffer
	require.NoError(t, runBatch(&out, script, false, 3*time.Second))

	assert.Equal(t, strings.Join([]string{
		"> schedule 1 schedule 1 print nested",
		"> schedule 1 print nested",
		"> print nested",
		"nested",
	}, "\n")+"\n", out.String())
}

func TestRunBatch_JSON(t *testing.T) {
	setupTestConfig(t)
	script := writeScript(t, t.TempDir(), "demo.cmd", "print hi\n")

	var out bytes.Buffer
	require.NoError(t, runBatch(&out, script, true, 0))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"message":"print hi","kind":"input"}`, lines[0])
	assert.JSONEq(t, `{"message":"hi","kind":"message"}`, lines[1])
}

func TestRunBatch_MissingScript(t *testing.T) {
	setupTestConfig(t)

	err := runBatch(&bytes.Buffer{}, filepath.Join(t.TempDir(), "absent.cmd"), false, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open script")
}

func TestRunVerify(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	writeScript(t, dir, "greet.cmd", "print hi\n")

	var out bytes.Buffer
	require.NoError(t, runVerify(&out, dir, true))
	assert.Contains(t, out.String(), "RECORDED greet")

	out.Reset()
	require.NoError(t, runVerify(&out, dir, false))
	assert.Contains(t, out.String(), "PASS greet")
	assert.Contains(t, out.String(), "Results: 1 passed, 0 failed")

	writeScript(t, dir, "greet.expected", "> print hi\nbye\n")
	out.Reset()
	err := runVerify(&out, dir, false)
	require.Error(t, err)
	assert.Contains(t, out.String(), "FAIL greet")
}

func TestRunCommands_Raw(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCommands(&out, true))

	md := out.String()
	assert.Contains(t, md, "| `help` |")
	assert.Contains(t, md, "| `schedule` |")
	assert.Contains(t, md, "- `set [variable] [value]`")
	assert.NotContains(t, md, "`quit`")
}

func TestRunCommands_Rendered(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCommands(&out, false))
	assert.Contains(t, out.String(), "schedule")
}
