/*
Package behave implements a small behavior tree runtime.

A tree is evaluated one tick at a time. Each call to [Node.Tick] returns
[Success], [Failure] or [Running], and a Running result means the driver is
expected to tick the tree again later. Nothing here blocks, sleeps or spawns
goroutines: scheduling ticks is the caller's job.

# Nodes

Any type with a Tick method is a [Node]. Nodes may optionally implement
[Namer] (for diagnostics) and [Resetter] (to restart a subtree); use the
package level [Name] and [Reset] helpers rather than asserting directly.

The provided nodes are:

  - [Selector]: ticks children in order until one succeeds or runs
  - [Sequence]: ticks children in order until one fails or runs
  - [Once]: caches the first terminal result of its child
  - [Wait]: runs for a fixed duration, measured from its first tick
  - [AlwaysSuccess], [AlwaysFailure], [AlwaysRunning] and [Func] leaves

# Stateless Composites

Selector and Sequence keep no record of which child was running. Every tick
starts again from the first child, so earlier siblings are re-ticked while a
later sibling is Running. Nodes that must remember progress across ticks
(like Wait, which remembers its start time) keep that state themselves.

# Ownership

Composites come in two flavours that behave identically during ticks:

	tree := behave.NewSequence("root", a, b)    // owns a and b
	view := behave.BorrowSequence("view", a, b) // a and b belong to someone else

Closing an owning composite closes every child implementing io.Closer,
exactly once. Closing a borrowing composite never touches its children.

# Tracing

Tick takes an optional *[Trace]. When non-nil, every ticked node records a
(depth, name) entry before ticking its children, giving a pre-order walk of
the nodes that actually ran. A nil trace costs a single nil check per node.

	trace := behave.NewTrace()
	status := tree.Tick(0, trace)
	fmt.Print(trace)
*/
package behave
