package behave

import (
	"time"
)

// Wait is a timed leaf. Its first tick records the current time and returns
// Running, whatever the duration. Later ticks return Success once the
// duration has elapsed since that first tick, and Running until then.
//
// The start time is only cleared by Reset, so a Wait that has succeeded
// keeps succeeding.
type Wait struct {
	name     string
	duration time.Duration
	now      func() time.Time
	start    time.Time
	started  bool
}

var (
	_ Node     = (*Wait)(nil)
	_ Namer    = (*Wait)(nil)
	_ Resetter = (*Wait)(nil)
)

// WaitOption configures a Wait.
type WaitOption func(*Wait)

// WithClock replaces time.Now as the source of the current time. The clock
// should be monotonic; time.Now is, as long as the returned values haven't
// been stripped of their monotonic reading.
func WithClock(now func() time.Time) WaitOption {
	return func(w *Wait) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWait returns a Wait for duration d. It panics if d is negative.
func NewWait(d time.Duration, opts ...WaitOption) *Wait {
	return NewNamedWait("wait", d, opts...)
}

// NewNamedWait is NewWait with a custom display name prefix.
func NewNamedWait(name string, d time.Duration, opts ...WaitOption) *Wait {
	if d < 0 {
		panic("behave: wait " + name + ": negative duration " + d.String())
	}
	w := &Wait{
		name:     name,
		duration: d,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Tick implements Node.
func (w *Wait) Tick(depth int, trace *Trace) Status {
	trace.Record(depth, w)
	if !w.started {
		w.start = w.now()
		w.started = true
		return Running
	}
	if w.now().Sub(w.start) >= w.duration {
		return Success
	}
	return Running
}

// Duration returns the configured duration.
func (w *Wait) Duration() time.Duration {
	return w.duration
}

// Started returns true if the wait has been ticked since construction or
// the last Reset.
func (w *Wait) Started() bool {
	return w.started
}

// Remaining returns the time left, which is the full duration before the
// first tick, and never negative.
func (w *Wait) Remaining() time.Duration {
	if !w.started {
		return w.duration
	}
	return max(w.duration-w.now().Sub(w.start), 0)
}

// Name returns the prefix followed by the remaining time.
func (w *Wait) Name() string {
	return w.name + "(" + w.Remaining().String() + ")"
}

// Reset clears the start time.
func (w *Wait) Reset() {
	w.start = time.Time{}
	w.started = false
}
