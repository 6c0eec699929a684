package behave

import (
	"errors"
	"fmt"
	"io"
)

// composite holds the state shared by Selector and Sequence: a name and a
// fixed, ordered list of children, which may or may not be owned.
type composite struct {
	name     string
	children []Node
	owned    bool
	closed   bool
}

func newComposite(kind, name string, owned bool, children []Node) composite {
	for i, child := range children {
		if child == nil {
			panic(fmt.Sprintf("behave: %s %q: child %d is nil", kind, name, i))
		}
	}
	// copied so the caller's slice can't resize or reorder the children
	return composite{
		name:     name,
		children: append([]Node(nil), children...),
		owned:    owned,
	}
}

// Name returns the display name given at construction.
func (c *composite) Name() string {
	return c.name
}

// Children returns a copy of the child list, in tick order.
func (c *composite) Children() []Node {
	return append([]Node(nil), c.children...)
}

// Len returns the number of children.
func (c *composite) Len() int {
	return len(c.children)
}

// Owned returns true if the children are owned, i.e. released by Close.
func (c *composite) Owned() bool {
	return c.owned
}

// Reset resets every child, in order. Composites carry no state of their
// own, so this only matters for stateful descendants such as Wait and Once.
func (c *composite) Reset() {
	for _, child := range c.children {
		Reset(child)
	}
}

// Close releases owned children implementing io.Closer, in order, exactly
// once. Borrowed children are never closed. Subsequent calls return nil.
func (c *composite) Close() error {
	if !c.owned || c.closed {
		return nil
	}
	c.closed = true
	var errs []error
	for i, child := range c.children {
		if v, ok := child.(io.Closer); ok {
			if err := v.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %q child %d (%s): %w", c.name, i, Name(child), err))
			}
		}
	}
	return errors.Join(errs...)
}
