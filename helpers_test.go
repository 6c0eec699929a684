package behave

import (
	"sync"
	"time"
)

// countingLeaf returns a fixed status and counts calls.
type countingLeaf struct {
	name     string
	status   Status
	ticks    int
	resets   int
	closes   int
	closeErr error
}

func newCounting(name string, status Status) *countingLeaf {
	return &countingLeaf{name: name, status: status}
}

func (l *countingLeaf) Tick(depth int, trace *Trace) Status {
	trace.Record(depth, l)
	l.ticks++
	return l.status
}

func (l *countingLeaf) Name() string { return l.name }

func (l *countingLeaf) Reset() { l.resets++ }

func (l *countingLeaf) Close() error {
	l.closes++
	return l.closeErr
}

// fakeClock is a manually advanced clock for Wait.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// traceOf is shorthand for building expected trace entries.
func traceOf(pairs ...any) []TraceEntry {
	entries := make([]TraceEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, TraceEntry{Depth: pairs[i].(int), Name: pairs[i+1].(string)})
	}
	return entries
}
