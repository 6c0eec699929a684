// Package interop converts between behave nodes and go-behaviortree nodes,
// so trees from either library can be composed with the other, and behave
// trees can be driven by go-behaviortree's Ticker and Manager.
package interop

import (
	"log/slog"

	bt "github.com/joeycumines/go-behaviortree"
	"github.com/joeycumines/behave"
)

// StatusToBT maps a behave status to the go-behaviortree equivalent. Anything
// that isn't a valid status maps to bt.Failure.
func StatusToBT(s behave.Status) bt.Status {
	switch s {
	case behave.Success:
		return bt.Success
	case behave.Running:
		return bt.Running
	default:
		return bt.Failure
	}
}

// StatusFromBT maps a go-behaviortree status to the behave equivalent.
// Anything that isn't a valid status maps to behave.Failure.
func StatusFromBT(s bt.Status) behave.Status {
	switch s {
	case bt.Success:
		return behave.Success
	case bt.Running:
		return behave.Running
	default:
		return behave.Failure
	}
}

// ToBT returns a go-behaviortree leaf that ticks node at depth zero, without
// a trace. The returned node shares node's state.
func ToBT(node behave.Node) bt.Node {
	tick := func([]bt.Node) (bt.Status, error) {
		return StatusToBT(node.Tick(0, nil)), nil
	}
	return bt.New(tick)
}

// Leaf is a behave node backed by a go-behaviortree node.
//
// The wrapped node is opaque: its children don't appear in traces, and Reset
// can't reach into it. A tick error becomes behave.Failure; it is logged and
// kept until the next tick.
type Leaf struct {
	name   string
	node   bt.Node
	logger *slog.Logger
	err    error
}

var _ behave.Node = (*Leaf)(nil)

// FromBT wraps node. A nil logger means slog.Default().
func FromBT(name string, node bt.Node, logger *slog.Logger) *Leaf {
	if node == nil {
		panic("interop: " + name + ": nil node")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Leaf{name: name, node: node, logger: logger}
}

// Tick implements behave.Node.
func (l *Leaf) Tick(depth int, trace *behave.Trace) behave.Status {
	trace.Record(depth, l)
	status, err := l.node.Tick()
	l.err = err
	if err != nil {
		l.logger.Warn("[interop] go-behaviortree node error", "name", l.name, "error", err)
		return behave.Failure
	}
	return StatusFromBT(status)
}

// Name returns the display name.
func (l *Leaf) Name() string {
	return l.name
}

// Err returns the error from the most recent tick.
func (l *Leaf) Err() error {
	return l.err
}
