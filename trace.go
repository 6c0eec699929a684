package behave

import (
	"strconv"
	"strings"
)

// TraceEntry is a single node visit recorded during a tick.
type TraceEntry struct {
	Depth int
	Name  string
}

// Trace collects the nodes visited during a tick, in pre-order.
//
// A nil *Trace means tracing is disabled. All methods are safe to call on a
// nil receiver, and Record does no work in that case, so nodes may call it
// unconditionally.
//
// A Trace is not safe for concurrent use.
type Trace struct {
	entries []TraceEntry
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return new(Trace)
}

// Record appends an entry for node at depth. The node's name is only
// evaluated if t is non-nil.
func (t *Trace) Record(depth int, node Node) {
	if t == nil {
		return
	}
	t.entries = append(t.entries, TraceEntry{Depth: depth, Name: Name(node)})
}

// Entries returns the recorded entries. The slice is owned by the trace and
// is only valid until the next call to Reset.
func (t *Trace) Entries() []TraceEntry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Len returns the number of recorded entries.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Reset discards all entries, retaining the allocated capacity.
func (t *Trace) Reset() {
	if t == nil {
		return
	}
	clear(t.entries)
	t.entries = t.entries[:0]
}

// String renders one line per entry, indented by depth.
func (t *Trace) String() string {
	if t.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range t.entries {
		b.WriteString(strings.Repeat("  ", e.Depth))
		b.WriteString(strconv.Itoa(e.Depth))
		b.WriteString(": ")
		b.WriteString(e.Name)
		b.WriteByte('\n')
	}
	return b.String()
}
