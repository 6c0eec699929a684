// Package leaf provides behavior tree leaves that read and write a shared
// [blackboard.Blackboard]:
//
//   - [Condition] evaluates a compiled expr-lang boolean expression against
//     a snapshot of the blackboard.
//   - [Script] runs a JavaScript tick function on a private goja runtime.
//
// Both validate their source at construction, returning an error, and turn
// evaluation problems at tick time into [behave.Failure]. The most recent
// evaluation error is available from LastError, and is logged.
package leaf

import (
	"log/slog"
)

// Option configures a Condition or Script.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report evaluation errors. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func resolveOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
