package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/joeycumines/behave/internal/command"
	"github.com/joeycumines/behave/internal/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config at a fresh file and clears overrides.
func isolate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	t.Setenv("BEHAVE_CONFIG", path)
	for _, k := range []string{"BEHAVE_COLOR", "BEHAVE_LOG_FILE", "BEHAVE_LOG_LEVEL", "BEHAVE_RUN_INTERVAL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return path
}

func TestRun_Version(t *testing.T) {
	isolate(t, "")

	var stdout bytes.Buffer
	require.NoError(t, run(t.Context(), []string{"version"}, &stdout, &bytes.Buffer{}))
	assert.Equal(t, "behave version "+version+"\n", stdout.String())
}

func TestRun_Help(t *testing.T) {
	isolate(t, "")

	var stdout bytes.Buffer
	require.NoError(t, run(t.Context(), nil, &stdout, &bytes.Buffer{}))
	for _, name := range []string{"config", "help", "run", "trees", "version"} {
		assert.Contains(t, stdout.String(), "  "+name+" ")
	}
}

func TestRun_ConfigFile(t *testing.T) {
	isolate(t, "[run]\ninterval 1ms\nunit 1ns\nmax-ticks 1\n")

	var stdout bytes.Buffer
	err := run(t.Context(), []string{"run", "countdown"}, &stdout, &bytes.Buffer{})
	assert.ErrorIs(t, err, driver.ErrTickLimit)
	assert.Contains(t, stdout.String(), "running after 1 tick(s)")
}

func TestRun_ConfigSetPersists(t *testing.T) {
	path := isolate(t, "")

	require.NoError(t, run(t.Context(), []string{"config", "run.trace", "true"}, &bytes.Buffer{}, &bytes.Buffer{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[run]\ntrace true\n", string(data))

	var stdout bytes.Buffer
	require.NoError(t, run(t.Context(), []string{"config", "run.trace"}, &stdout, &bytes.Buffer{}))
	assert.Equal(t, "true\n", stdout.String())
}

func TestRun_BadConfigIsIgnored(t *testing.T) {
	path := isolate(t, "")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(t.Context(), []string{"version"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Warning: ignoring configuration")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		err    error
		code   int
		prints bool
	}{
		{nil, 0, false},
		{fmt.Errorf("%w: run: bad", command.ErrUsage), 2, false},
		{fmt.Errorf("%w: door", command.ErrTreeFailed), 1, false},
		{driver.ErrTickLimit, 1, true},
		{errors.New("boom"), 1, true},
	} {
		var stderr bytes.Buffer
		assert.Equal(t, tc.code, exitCode(tc.err, &stderr), "%v", tc.err)
		assert.Equal(t, tc.prints, stderr.Len() > 0, "%v", tc.err)
	}
}
