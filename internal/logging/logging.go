package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps debug, info, warn (or warning) and error, in any case, to
// a slog level. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
}

// Options configure New.
type Options struct {
	// Level is the minimum level emitted.
	Level slog.Level
	// File, when non-nil, receives JSON records instead of Stderr.
	File io.Writer
	// Stderr receives text records when File is nil.
	Stderr io.Writer
}

// New returns a logger writing JSON to opts.File when set, otherwise text to
// opts.Stderr. With neither, records are discarded.
func New(opts Options) *slog.Logger {
	ho := &slog.HandlerOptions{Level: opts.Level}
	switch {
	case opts.File != nil:
		return slog.New(slog.NewJSONHandler(opts.File, ho))
	case opts.Stderr != nil:
		return slog.New(slog.NewTextHandler(opts.Stderr, ho))
	default:
		return slog.New(slog.DiscardHandler)
	}
}
