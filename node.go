package behave

// DefaultName is reported by [Name] for nodes that don't implement [Namer].
const DefaultName = "node"

// Node is the capability shared by every element of a tree.
//
// Tick advances the node by one step. The depth is the node's distance from
// the root of the current tick, and trace, if non-nil, should receive the
// node's entry (see [Trace.Record]) before any children are ticked, with
// children ticked at depth+1.
//
// Tick must be safe to call again after a terminal status was returned.
type Node interface {
	Tick(depth int, trace *Trace) Status
}

// Namer is implemented by nodes that provide a display name.
// Name must not mutate the node.
type Namer interface {
	Name() string
}

// Resetter is implemented by nodes with state that can be returned to its
// pre-first-tick condition.
type Resetter interface {
	Reset()
}

// Name returns the display name of n, or DefaultName.
func Name(n Node) string {
	if v, ok := n.(Namer); ok {
		return v.Name()
	}
	return DefaultName
}

// Reset resets n if it implements Resetter, otherwise it does nothing.
func Reset(n Node) {
	if v, ok := n.(Resetter); ok {
		v.Reset()
	}
}
