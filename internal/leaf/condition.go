package leaf

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/joeycumines/behave"
	"github.com/joeycumines/behave/internal/blackboard"
)

// Condition is a leaf that succeeds if a boolean expression holds for the
// current blackboard contents, and fails otherwise.
//
// The expression sees every blackboard key as a variable. Keys that are not
// set evaluate to nil, so "enemy != nil && enemy.distance < 10" is safe to
// use before the enemy key exists.
type Condition struct {
	name       string
	expression string
	program    *vm.Program
	bb         *blackboard.Blackboard
	logger     *slog.Logger
	lastErr    error
}

var _ behave.Node = (*Condition)(nil)

// NewCondition compiles expression. An empty name defaults to the expression.
func NewCondition(name, expression string, bb *blackboard.Blackboard, opts ...Option) (*Condition, error) {
	if bb == nil {
		return nil, errors.New("condition: nil blackboard")
	}
	if expression == "" {
		return nil, errors.New("condition: empty expression")
	}
	program, err := expr.Compile(expression,
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("condition %q: compile: %w", expression, err)
	}
	if name == "" {
		name = expression
	}
	o := resolveOptions(opts)
	return &Condition{
		name:       name,
		expression: expression,
		program:    program,
		bb:         bb,
		logger:     o.logger,
	}, nil
}

// Tick implements behave.Node.
func (c *Condition) Tick(depth int, trace *behave.Trace) behave.Status {
	trace.Record(depth, c)
	c.lastErr = nil

	result, err := expr.Run(c.program, c.bb.Snapshot())
	if err != nil {
		c.lastErr = fmt.Errorf("condition %q: evaluate: %w", c.expression, err)
		c.logger.Warn("[leaf] condition evaluation error",
			"name", c.name,
			"expression", c.expression,
			"error", err)
		return behave.Failure
	}

	matched, ok := result.(bool)
	if !ok {
		c.lastErr = fmt.Errorf("condition %q: non-boolean result %T", c.expression, result)
		c.logger.Warn("[leaf] condition non-boolean result",
			"name", c.name,
			"expression", c.expression,
			"resultType", fmt.Sprintf("%T", result))
		return behave.Failure
	}
	if matched {
		return behave.Success
	}
	return behave.Failure
}

// Name returns the display name.
func (c *Condition) Name() string {
	return c.name
}

// Expression returns the source expression.
func (c *Condition) Expression() string {
	return c.expression
}

// LastError returns the error from the most recent tick, if it failed to
// evaluate.
func (c *Condition) LastError() error {
	return c.lastErr
}
