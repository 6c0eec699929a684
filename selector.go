package behave

// Selector is a priority selector (also known as a fallback). It ticks its
// children in order, returning the first Success or Running result. A
// Selector whose children all fail, or which has no children, fails.
type Selector struct {
	composite
}

var (
	_ Node     = (*Selector)(nil)
	_ Namer    = (*Selector)(nil)
	_ Resetter = (*Selector)(nil)
)

// NewSelector returns a Selector that owns children. Closing the selector
// closes them. It panics if any child is nil.
func NewSelector(name string, children ...Node) *Selector {
	return &Selector{composite: newComposite("selector", name, true, children)}
}

// BorrowSelector returns a Selector over children owned elsewhere. Closing
// the selector does not close them, and the children must remain usable for
// as long as the selector is ticked. It panics if any child is nil.
func BorrowSelector(name string, children ...Node) *Selector {
	return &Selector{composite: newComposite("selector", name, false, children)}
}

// Tick implements Node.
func (s *Selector) Tick(depth int, trace *Trace) Status {
	trace.Record(depth, s)
	for _, child := range s.children {
		switch child.Tick(depth+1, trace) {
		case Success:
			return Success
		case Running:
			return Running
		}
	}
	return Failure
}
