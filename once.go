package behave

import (
	"io"
)

// Once is a decorator that ticks its child until it returns a terminal
// status, then returns that status forever without ticking the child again.
// Reset clears the cached status.
//
// Once owns its child; Close closes it (if it implements io.Closer).
type Once struct {
	name   string
	child  Node
	status Status // zero until a terminal status is cached
	closed bool
}

var (
	_ Node      = (*Once)(nil)
	_ Namer     = (*Once)(nil)
	_ Resetter  = (*Once)(nil)
	_ io.Closer = (*Once)(nil)
)

// NewOnce wraps child. It panics if child is nil.
func NewOnce(child Node) *Once {
	return NewNamedOnce("once", child)
}

// NewNamedOnce is NewOnce with a custom display name prefix.
func NewNamedOnce(name string, child Node) *Once {
	if child == nil {
		panic("behave: once " + name + ": nil child")
	}
	return &Once{name: name, child: child}
}

// Tick implements Node.
func (o *Once) Tick(depth int, trace *Trace) Status {
	trace.Record(depth, o)
	if o.status != 0 {
		return o.status
	}
	status := o.child.Tick(depth+1, trace)
	if status.Terminal() {
		o.status = status
	}
	return status
}

// Result returns the cached status, and whether there is one.
func (o *Once) Result() (Status, bool) {
	return o.status, o.status != 0
}

// Child returns the wrapped node.
func (o *Once) Child() Node {
	return o.child
}

// Name returns the prefix followed by the cached status, or "pending".
func (o *Once) Name() string {
	if o.status == 0 {
		return o.name + "(pending)"
	}
	return o.name + "(" + o.status.String() + ")"
}

// Reset clears the cached status and resets the child.
func (o *Once) Reset() {
	o.status = 0
	Reset(o.child)
}

// Close closes the child, if it implements io.Closer. Only the first call
// has any effect.
func (o *Once) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	if v, ok := o.child.(io.Closer); ok {
		return v.Close()
	}
	return nil
}
