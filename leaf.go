package behave

// AlwaysSuccess is a leaf that always succeeds.
type AlwaysSuccess struct{}

// AlwaysFailure is a leaf that always fails.
type AlwaysFailure struct{}

// AlwaysRunning is a leaf that never concludes.
type AlwaysRunning struct{}

var (
	_ Node = AlwaysSuccess{}
	_ Node = AlwaysFailure{}
	_ Node = AlwaysRunning{}
)

func (n AlwaysSuccess) Tick(depth int, trace *Trace) Status {
	trace.Record(depth, n)
	return Success
}

func (AlwaysSuccess) Name() string { return "success" }

func (n AlwaysFailure) Tick(depth int, trace *Trace) Status {
	trace.Record(depth, n)
	return Failure
}

func (AlwaysFailure) Name() string { return "failure" }

func (n AlwaysRunning) Tick(depth int, trace *Trace) Status {
	trace.Record(depth, n)
	return Running
}

func (AlwaysRunning) Name() string { return "running" }

// Func is a leaf backed by a function.
type Func struct {
	name  string
	tick  func() Status
	reset func()
}

var (
	_ Node     = (*Func)(nil)
	_ Resetter = (*Func)(nil)
)

// FuncOption configures a Func.
type FuncOption func(*Func)

// WithFuncReset sets a function to be called by Reset.
func WithFuncReset(fn func()) FuncOption {
	return func(f *Func) {
		f.reset = fn
	}
}

// NewFunc returns a leaf that calls tick on every tick. It panics if tick
// is nil.
func NewFunc(name string, tick func() Status, opts ...FuncOption) *Func {
	if tick == nil {
		panic("behave: func " + name + ": nil tick")
	}
	f := &Func{name: name, tick: tick}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Func) Tick(depth int, trace *Trace) Status {
	trace.Record(depth, f)
	return f.tick()
}

func (f *Func) Name() string {
	return f.name
}

func (f *Func) Reset() {
	if f.reset != nil {
		f.reset()
	}
}
