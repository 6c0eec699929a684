package command

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joeycumines/behave/internal/config"
	"github.com/joeycumines/behave/internal/logging"
)

// logConfig holds resolved logging configuration for commands that tick
// trees.
type logConfig struct {
	level slog.Level
	file  *logging.RotatingFileWriter // nil if no file logging
}

// resolveLogConfig resolves the log level and file. An explicitly given flag
// wins; otherwise the value comes from the environment, then the [section] or
// global config, then the schema default. The caller must close the returned
// file, if any.
func resolveLogConfig(flagPath, flagLevel string, explicit map[string]bool, section string, cfg *config.Config) (logConfig, error) {
	schema := config.DefaultSchema()
	var lc logConfig

	levelStr := flagLevel
	if !explicit["log-level"] {
		levelStr = schema.Resolve(cfg, section, "log.level")
	}
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return lc, err
	}
	lc.level = level

	logPath := flagPath
	if !explicit["log-file"] {
		logPath = schema.Resolve(cfg, section, "log.file")
	}
	if logPath == "" {
		return lc, nil
	}

	maxSizeMB, err := schema.ResolveInt(cfg, section, "log.max-size-mb")
	if err != nil {
		return lc, err
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	maxFiles, err := schema.ResolveInt(cfg, section, "log.max-files")
	if err != nil {
		return lc, err
	}
	// zero backups is valid, the file is truncated on rotation
	if maxFiles < 0 {
		maxFiles = 5
	}

	w, err := logging.NewRotatingFileWriter(logPath, maxSizeMB, maxFiles)
	if err != nil {
		return lc, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}
	lc.file = w
	return lc, nil
}

// logger builds the logger for lc: JSON into the log file when there is one,
// text on stderr otherwise.
func (lc logConfig) logger(stderr io.Writer) *slog.Logger {
	opts := logging.Options{Level: lc.level, Stderr: stderr}
	if lc.file != nil {
		opts.File = lc.file
	}
	return logging.New(opts)
}

func (lc logConfig) Close() error {
	if lc.file == nil {
		return nil
	}
	return lc.file.Close()
}
