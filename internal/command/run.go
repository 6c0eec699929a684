package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joeycumines/behave"
	"github.com/joeycumines/behave/internal/config"
	"github.com/joeycumines/behave/internal/demo"
	"github.com/joeycumines/behave/internal/driver"
	"golang.org/x/term"
)

var (
	// ErrTreeFailed is returned by run when the tree concludes with Failure.
	ErrTreeFailed = errors.New("tree failed")

	// ErrUnknownTree is returned by run for a tree name that doesn't exist.
	ErrUnknownTree = errors.New("unknown tree")
)

// configuration section read by the run command
const runSection = "run"

// RunCommand ticks a demo tree until it concludes.
type RunCommand struct {
	*BaseCommand
	config *config.Config
	flags  *flag.FlagSet

	interval time.Duration
	maxTicks int
	trace    bool
	unit     time.Duration
	color    string
	logFile  string
	logLevel string

	// isTerminal reports whether w is attached to a terminal.
	isTerminal func(w io.Writer) bool
}

// NewRunCommand creates a new run command reading defaults from cfg.
func NewRunCommand(cfg *config.Config) *RunCommand {
	return &RunCommand{
		BaseCommand: NewBaseCommand(
			"run",
			"Tick a built-in tree until it succeeds or fails",
			"run [options] <tree>",
		),
		config:     cfg,
		isTerminal: isTerminal,
	}
}

// SetupFlags configures the flags for the run command. Unset flags fall back
// to the environment, then the [run] config section.
func (c *RunCommand) SetupFlags(fs *flag.FlagSet) {
	c.flags = fs
	fs.DurationVar(&c.interval, "interval", driver.DefaultInterval, "Time between ticks")
	fs.IntVar(&c.maxTicks, "max-ticks", 0, "Stop after this many ticks (0 for no limit)")
	fs.BoolVar(&c.trace, "trace", false, "Print the nodes visited on every tick")
	fs.DurationVar(&c.unit, "unit", demo.DefaultUnit, "Base duration of waits in the tree")
	fs.StringVar(&c.color, "color", "auto", "Color output: auto, always, never")
	fs.StringVar(&c.logFile, "log-file", "", "Write JSON logs to this file, rotated by size")
	fs.StringVar(&c.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

type runOptions struct {
	interval time.Duration
	maxTicks int
	trace    bool
	unit     time.Duration
	styled   bool
}

func (c *RunCommand) resolve(explicit map[string]bool, stdout io.Writer) (runOptions, error) {
	schema := config.DefaultSchema()
	ro := runOptions{interval: c.interval, maxTicks: c.maxTicks, trace: c.trace, unit: c.unit}
	var err error
	if !explicit["interval"] {
		if ro.interval, err = schema.ResolveDuration(c.config, runSection, "interval"); err != nil {
			return ro, err
		}
	}
	if !explicit["max-ticks"] {
		if ro.maxTicks, err = schema.ResolveInt(c.config, runSection, "max-ticks"); err != nil {
			return ro, err
		}
	}
	if !explicit["trace"] {
		if ro.trace, err = schema.ResolveBool(c.config, runSection, "trace"); err != nil {
			return ro, err
		}
	}
	if !explicit["unit"] {
		if ro.unit, err = schema.ResolveDuration(c.config, runSection, "unit"); err != nil {
			return ro, err
		}
	}

	color := c.color
	if !explicit["color"] {
		color = schema.Resolve(c.config, runSection, "color")
	}
	switch color {
	case "always":
		ro.styled = true
	case "never":
	case "auto", "":
		ro.styled = os.Getenv("NO_COLOR") == "" && c.isTerminal(stdout)
	default:
		return ro, fmt.Errorf("invalid color mode %q: expected auto, always or never", color)
	}
	return ro, nil
}

// Execute builds the named tree and ticks it. It returns ErrTreeFailed if the
// tree fails, and driver.ErrTickLimit (after printing the summary) if the
// tick limit is reached first.
func (c *RunCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	if len(args) != 1 {
		return usageError(stderr, c, "expected exactly one tree name, got %d", len(args))
	}
	tree, ok := demo.Lookup(args[0])
	if !ok {
		_, _ = fmt.Fprintf(stderr, "Unknown tree: %s\nUse 'behave trees' to see available trees.\n", args[0])
		return fmt.Errorf("%w: %s", ErrUnknownTree, args[0])
	}

	explicit := flagsSet(c.flags)
	ro, err := c.resolve(explicit, stdout)
	if err != nil {
		return err
	}

	lc, err := resolveLogConfig(c.logFile, c.logLevel, explicit, runSection, c.config)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, lc.Close())
	}()
	logger := lc.logger(stderr)

	root, bb, err := tree.Build(demo.Options{Unit: ro.unit, Logger: logger})
	if err != nil {
		return err
	}
	if closer, ok := root.(io.Closer); ok {
		defer func() {
			err = errors.Join(err, closer.Close())
		}()
	}

	printer := driver.NewPrinter(stdout, ro.styled)
	runOpts := []driver.Option{
		driver.WithInterval(ro.interval),
		driver.WithMaxTicks(ro.maxTicks),
		driver.WithLogger(logger),
	}
	if ro.trace {
		runOpts = append(runOpts,
			driver.WithTrace(true),
			driver.WithObserver(func(r driver.Report) { _ = printer.Report(r) }))
	}

	result, runErr := driver.Run(ctx, root, runOpts...)
	if runErr != nil && !errors.Is(runErr, driver.ErrTickLimit) {
		return runErr
	}
	if err := printer.Result(result); err != nil {
		return err
	}
	if keys := bb.Keys(); len(keys) > 0 {
		_, _ = fmt.Fprintln(stdout, "blackboard:")
		for _, k := range keys {
			_, _ = fmt.Fprintf(stdout, "  %s: %v\n", k, bb.Get(k))
		}
	}

	switch {
	case runErr != nil:
		return runErr
	case result.Status == behave.Failure:
		return fmt.Errorf("%w: %s", ErrTreeFailed, tree.Name)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
