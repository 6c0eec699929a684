package command

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeycumines/behave/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	help := NewHelpCommand(r)
	r.Register(help)
	r.Register(NewVersionCommand("1.0.0"))
	r.Register(NewRunCommand(config.NewConfig()))

	t.Run("general", func(t *testing.T) {
		t.Parallel()
		var stdout bytes.Buffer
		require.NoError(t, help.Execute(t.Context(), nil, &stdout, io.Discard))
		out := stdout.String()
		assert.Contains(t, out, "Usage: behave <command>")
		assert.Contains(t, out, "  help     Display help information for commands\n")
		assert.Less(t, strings.Index(out, "  run "), strings.Index(out, "  version "))
	})

	t.Run("command with flags", func(t *testing.T) {
		t.Parallel()
		var stdout bytes.Buffer
		require.NoError(t, help.Execute(t.Context(), []string{"run"}, &stdout, io.Discard))
		out := stdout.String()
		assert.Contains(t, out, "Command: run\n")
		assert.Contains(t, out, "Usage: behave run [options] <tree>\n")
		assert.Contains(t, out, "Flags:\n")
		assert.Contains(t, out, "-max-ticks")
	})

	t.Run("command without flags", func(t *testing.T) {
		t.Parallel()
		var stdout bytes.Buffer
		require.NoError(t, help.Execute(t.Context(), []string{"version"}, &stdout, io.Discard))
		assert.NotContains(t, stdout.String(), "Flags:")
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		var stderr bytes.Buffer
		err := help.Execute(t.Context(), []string{"nope"}, io.Discard, &stderr)
		assert.ErrorIs(t, err, ErrUnknownCommand)
		assert.Contains(t, stderr.String(), "Unknown command: nope")
	})

	t.Run("too many", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, help.Execute(t.Context(), []string{"a", "b"}, io.Discard, io.Discard), ErrUsage)
	})
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCommand("1.2.3")
	var stdout bytes.Buffer
	require.NoError(t, cmd.Execute(t.Context(), nil, &stdout, io.Discard))
	assert.Equal(t, "behave version 1.2.3\n", stdout.String())

	var stderr bytes.Buffer
	assert.ErrorIs(t, cmd.Execute(t.Context(), []string{"x"}, io.Discard, &stderr), ErrUsage)
	assert.Contains(t, stderr.String(), "unexpected arguments")
}

func TestTreesCommand(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	require.NoError(t, NewTreesCommand().Execute(t.Context(), nil, &stdout, io.Discard))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "countdown "))
	assert.True(t, strings.HasPrefix(lines[3], "interop "))

	assert.ErrorIs(t, NewTreesCommand().Execute(t.Context(), []string{"x"}, io.Discard, io.Discard), ErrUsage)
}

func TestConfigCommand_Show(t *testing.T) {
	clearEnv(t)

	cfg := config.NewConfig()
	cfg.SetGlobalOption("color", "never")
	cfg.SetCommandOption("run", "interval", "1s")
	cmd := NewConfigCommand(cfg, "")

	var stdout bytes.Buffer
	require.NoError(t, cmd.Execute(t.Context(), nil, &stdout, io.Discard))
	assert.Equal(t, `color never
log.file
log.level info
log.max-size-mb 10
log.max-files 5

[run]
interval 1s
max-ticks 0
trace false
unit 100ms
`, stdout.String())

	// the output is itself a valid config
	reloaded, err := config.LoadFromReader(&stdout)
	require.NoError(t, err)
	assert.False(t, reloaded.HasWarnings(), "%v", reloaded.Warnings)
}

func TestConfigCommand_Schema(t *testing.T) {
	t.Parallel()

	cmd := NewConfigCommand(config.NewConfig(), "")
	cmd.showSchema = true
	var stdout bytes.Buffer
	require.NoError(t, cmd.Execute(t.Context(), nil, &stdout, io.Discard))
	assert.Equal(t, config.DefaultSchema().FormatHelp(), stdout.String())

	assert.ErrorIs(t, cmd.Execute(t.Context(), []string{"x"}, io.Discard, io.Discard), ErrUsage)
}

func TestConfigCommand_Get(t *testing.T) {
	clearEnv(t)

	cfg := config.NewConfig()
	cfg.SetCommandOption("run", "trace", "yes")
	cmd := NewConfigCommand(cfg, "")

	for arg, want := range map[string]string{
		"run.trace":    "yes\n",
		"run.interval": "100ms\n",
		"log.level":    "info\n",
		"run.color":    "auto\n",
	} {
		var stdout bytes.Buffer
		require.NoError(t, cmd.Execute(t.Context(), []string{arg}, &stdout, io.Discard), arg)
		assert.Equal(t, want, stdout.String(), arg)
	}

	var stderr bytes.Buffer
	err := cmd.Execute(t.Context(), []string{"run.bogus"}, io.Discard, &stderr)
	assert.ErrorContains(t, err, "unknown configuration option: run.bogus")
	assert.Contains(t, stderr.String(), "run.bogus")
}

func TestConfigCommand_Set(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config")
	cfg := config.NewConfig()
	cmd := NewConfigCommand(cfg, path)

	var stdout bytes.Buffer
	require.NoError(t, cmd.Execute(t.Context(), []string{"run.interval", "250ms"}, &stdout, io.Discard))
	require.NoError(t, cmd.Execute(t.Context(), []string{"log.level", "debug"}, &stdout, io.Discard))
	assert.Contains(t, stdout.String(), "Set configuration: run.interval = 250ms\n")

	v, ok := cfg.GetCommandOption("run", "interval")
	assert.True(t, ok)
	assert.Equal(t, "250ms", v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log.level debug\n[run]\ninterval 250ms\n", string(data))

	var stderr bytes.Buffer
	err = cmd.Execute(t.Context(), []string{"run.max-ticks", "lots"}, io.Discard, &stderr)
	assert.ErrorContains(t, err, "invalid value for run.max-ticks")
	_, ok = cfg.GetCommandOption("run", "max-ticks")
	assert.False(t, ok, "rejected values are not stored")

	err = cmd.Execute(t.Context(), []string{"verbose", "true"}, io.Discard, io.Discard)
	assert.ErrorContains(t, err, "unknown configuration option")
}

func TestConfigCommand_Validate(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cmd := NewConfigCommand(cfg, "")
	var stdout bytes.Buffer
	require.NoError(t, cmd.Execute(t.Context(), []string{"validate"}, &stdout, io.Discard))
	assert.Equal(t, "Configuration is valid.\n", stdout.String())

	cfg.SetGlobalOption("nope", "1")
	stdout.Reset()
	require.NoError(t, cmd.Execute(t.Context(), []string{"validate"}, &stdout, io.Discard))
	assert.Contains(t, stdout.String(), "Configuration has 1 issue(s):\n  - unknown global option")
}
