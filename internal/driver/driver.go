// Package driver ticks a behave tree on a fixed interval until it concludes.
//
// Ticks are scheduled by a go-behaviortree Ticker, so every tick of a run
// happens on the ticker's goroutine, one at a time. Observers are called on
// that goroutine too.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	bt "github.com/joeycumines/go-behaviortree"
	"github.com/joeycumines/behave"
	"github.com/joeycumines/behave/internal/interop"
)

// DefaultInterval is the tick interval used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// ErrTickLimit is returned by Run when the tree is still running after the
// configured maximum number of ticks.
var ErrTickLimit = errors.New("driver: tick limit reached")

// errRunComplete stops the ticker once the root concludes.
var errRunComplete = errors.New("driver: run complete")

// Report describes a single tick, passed to observers.
type Report struct {
	RunID   string
	Tick    int // starting at 1
	Status  behave.Status
	Elapsed time.Duration // since the run started
	// Trace holds the nodes visited during this tick, if tracing is enabled.
	// It is only valid for the duration of the observer call.
	Trace []behave.TraceEntry
}

// Result summarises a run.
type Result struct {
	RunID   string
	Status  behave.Status // the status returned by the last tick
	Ticks   int
	Elapsed time.Duration
}

// Option configures Run.
type Option func(*config)

type config struct {
	interval time.Duration
	maxTicks int
	trace    bool
	observer func(Report)
	logger   *slog.Logger
}

// WithInterval sets the time between ticks. Defaults to DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		c.interval = d
	}
}

// WithMaxTicks limits the number of ticks. Zero, the default, means no limit.
func WithMaxTicks(n int) Option {
	return func(c *config) {
		c.maxTicks = n
	}
}

// WithTrace enables collecting a trace for every tick.
func WithTrace(enabled bool) Option {
	return func(c *config) {
		c.trace = enabled
	}
}

// WithObserver registers a function called after every tick.
func WithObserver(fn func(Report)) Option {
	return func(c *config) {
		c.observer = fn
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Run ticks root every interval until it returns Success or Failure, the tick
// limit is reached (ErrTickLimit), or ctx is done (the context's error).
//
// The Result is valid in all cases. Run does not reset root, before or after.
func Run(ctx context.Context, root behave.Node, opts ...Option) (Result, error) {
	if root == nil {
		return Result{}, errors.New("driver: nil root")
	}
	c := config{interval: DefaultInterval}
	for _, opt := range opts {
		opt(&c)
	}
	if c.interval <= 0 {
		return Result{}, fmt.Errorf("driver: invalid interval %v", c.interval)
	}
	if c.maxTicks < 0 {
		return Result{}, fmt.Errorf("driver: invalid max ticks %d", c.maxTicks)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	result := Result{RunID: uuid.NewString()}
	logger := c.logger.With("runId", result.RunID, "root", behave.Name(root))

	var trace *behave.Trace
	if c.trace {
		trace = behave.NewTrace()
	}

	start := time.Now()
	node := bt.New(func([]bt.Node) (bt.Status, error) {
		trace.Reset()
		status := root.Tick(0, trace)
		result.Ticks++
		result.Status = status

		logger.Debug("[driver] tick", "tick", result.Ticks, "status", status.String(), "visited", trace.Len())
		if c.observer != nil {
			c.observer(Report{
				RunID:   result.RunID,
				Tick:    result.Ticks,
				Status:  status,
				Elapsed: time.Since(start),
				Trace:   trace.Entries(),
			})
		}

		if status.Terminal() {
			return interop.StatusToBT(status), errRunComplete
		}
		if c.maxTicks > 0 && result.Ticks >= c.maxTicks {
			return bt.Running, ErrTickLimit
		}
		return bt.Running, nil
	})

	logger.Info("[driver] run started", "interval", c.interval.String(), "maxTicks", c.maxTicks)
	ticker := bt.NewTicker(ctx, c.interval, node)
	<-ticker.Done()
	result.Elapsed = time.Since(start)

	err := ticker.Err()
	if errors.Is(err, errRunComplete) {
		err = nil
	}
	if err != nil {
		logger.Warn("[driver] run stopped", "ticks", result.Ticks, "status", result.Status.String(), "error", err)
		return result, err
	}
	logger.Info("[driver] run finished", "ticks", result.Ticks, "status", result.Status.String(), "elapsed", result.Elapsed.String())
	return result, nil
}
