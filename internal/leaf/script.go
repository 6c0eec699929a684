package leaf

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dop251/goja"
	"github.com/joeycumines/behave"
	"github.com/joeycumines/behave/internal/blackboard"
)

// Status strings understood by Script, exposed to scripts as bt.success,
// bt.failure and bt.running.
const (
	JSStatusSuccess = "success"
	JSStatusFailure = "failure"
	JSStatusRunning = "running"
)

// Script is a leaf implemented in JavaScript.
//
// The source must define a global function named tick, returning one of the
// status strings. It may define a global reset function, called by Reset.
// Two globals are available to the script:
//
//	bb - the blackboard: get(key), set(key, value), has(key), delete(key), keys()
//	bt - status constants: bt.success, bt.failure, bt.running
//
// Each Script has its own goja runtime, so state kept in script globals
// survives across ticks. Like every node, a Script must not be ticked
// concurrently.
type Script struct {
	name    string
	runtime *goja.Runtime
	tick    goja.Callable
	reset   goja.Callable
	logger  *slog.Logger
	lastErr error
}

var (
	_ behave.Node     = (*Script)(nil)
	_ behave.Resetter = (*Script)(nil)
)

// NewScript evaluates source and resolves its tick and reset functions.
func NewScript(name, source string, bb *blackboard.Blackboard, opts ...Option) (*Script, error) {
	if bb == nil {
		return nil, errors.New("script: nil blackboard")
	}

	runtime := goja.New()
	if err := runtime.Set("bb", exposeBlackboard(runtime, bb)); err != nil {
		return nil, fmt.Errorf("script %q: %w", name, err)
	}
	status := runtime.NewObject()
	_ = status.Set("success", JSStatusSuccess)
	_ = status.Set("failure", JSStatusFailure)
	_ = status.Set("running", JSStatusRunning)
	if err := runtime.Set("bt", status); err != nil {
		return nil, fmt.Errorf("script %q: %w", name, err)
	}

	if _, err := runtime.RunScript(name, source); err != nil {
		return nil, fmt.Errorf("script %q: load: %w", name, err)
	}

	tick, ok := goja.AssertFunction(runtime.Get("tick"))
	if !ok {
		return nil, fmt.Errorf("script %q: tick is not a function", name)
	}
	var reset goja.Callable
	if v := runtime.Get("reset"); v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
		if reset, ok = goja.AssertFunction(v); !ok {
			return nil, fmt.Errorf("script %q: reset is not a function", name)
		}
	}

	o := resolveOptions(opts)
	return &Script{
		name:    name,
		runtime: runtime,
		tick:    tick,
		reset:   reset,
		logger:  o.logger,
	}, nil
}

// exposeBlackboard builds the bb object seen by scripts. The setters can't
// fail for these keys, which are valid identifiers.
func exposeBlackboard(runtime *goja.Runtime, bb *blackboard.Blackboard) *goja.Object {
	obj := runtime.NewObject()
	_ = obj.Set("get", bb.Get)
	_ = obj.Set("set", bb.Set)
	_ = obj.Set("has", bb.Has)
	_ = obj.Set("delete", bb.Delete)
	_ = obj.Set("keys", bb.Keys)
	return obj
}

// Tick implements behave.Node.
func (s *Script) Tick(depth int, trace *behave.Trace) behave.Status {
	trace.Record(depth, s)
	s.lastErr = nil

	value, err := s.call(s.tick)
	if err != nil {
		s.fail(err)
		return behave.Failure
	}

	switch str := value.String(); str {
	case JSStatusSuccess:
		return behave.Success
	case JSStatusFailure:
		return behave.Failure
	case JSStatusRunning:
		return behave.Running
	default:
		s.fail(fmt.Errorf("unexpected status %q", str))
		return behave.Failure
	}
}

// call invokes fn, converting exceptions and panics to errors.
func (s *Script) call(fn goja.Callable) (value goja.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	value, err = fn(goja.Undefined())
	if err == nil && value == nil {
		value = goja.Undefined()
	}
	return value, err
}

func (s *Script) fail(err error) {
	s.lastErr = fmt.Errorf("script %q: %w", s.name, err)
	s.logger.Warn("[leaf] script error", "name", s.name, "error", err)
}

// Name returns the display name.
func (s *Script) Name() string {
	return s.name
}

// Reset calls the script's reset function, if any.
func (s *Script) Reset() {
	if s.reset == nil {
		return
	}
	if _, err := s.call(s.reset); err != nil {
		s.fail(err)
	}
}

// LastError returns the error from the most recent tick or reset, if any.
func (s *Script) LastError() error {
	return s.lastErr
}
