package behave

// Sequence ticks its children in order, returning the first Failure or
// Running result. A Sequence whose children all succeed, or which has no
// children, succeeds.
type Sequence struct {
	composite
}

var (
	_ Node     = (*Sequence)(nil)
	_ Namer    = (*Sequence)(nil)
	_ Resetter = (*Sequence)(nil)
)

// NewSequence returns a Sequence that owns children. Closing the sequence
// closes them. It panics if any child is nil.
func NewSequence(name string, children ...Node) *Sequence {
	return &Sequence{composite: newComposite("sequence", name, true, children)}
}

// BorrowSequence returns a Sequence over children owned elsewhere. Closing
// the sequence does not close them. It panics if any child is nil.
func BorrowSequence(name string, children ...Node) *Sequence {
	return &Sequence{composite: newComposite("sequence", name, false, children)}
}

// Tick implements Node.
func (s *Sequence) Tick(depth int, trace *Trace) Status {
	trace.Record(depth, s)
	for _, child := range s.children {
		switch child.Tick(depth+1, trace) {
		case Failure:
			return Failure
		case Running:
			return Running
		}
	}
	return Success
}
