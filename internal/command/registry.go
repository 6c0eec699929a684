package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
)

var (
	// ErrUnknownCommand is returned for a command name nobody registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage marks invalid arguments. The usage has already been printed.
	ErrUsage = errors.New("invalid usage")
)

// Registry manages the collection of available commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd, replacing any command of the same name.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get returns a command by name.
func (r *Registry) Get(name string) (Command, error) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// List returns the sorted names of every registered command.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch runs the command named by args[0] with the remaining arguments.
// With no arguments, or -h/--help, it runs "help".
func (r *Registry) Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	name := "help"
	if len(args) > 0 && args[0] != "-h" && args[0] != "--help" {
		name, args = args[0], args[1:]
	} else {
		args = nil
	}

	cmd, err := r.Get(name)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", name)
		_, _ = fmt.Fprintln(stderr, "Use 'behave help' to see available commands.")
		return err
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: behave %s\n\n%s\n", cmd.Usage(), cmd.Description())
		if hasFlags(fs) {
			_, _ = fmt.Fprintln(stderr, "\nOptions:")
			fs.PrintDefaults()
		}
	}
	cmd.SetupFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrUsage, cmd.Name(), err)
	}
	return cmd.Execute(ctx, fs.Args(), stdout, stderr)
}

func hasFlags(fs *flag.FlagSet) bool {
	var n int
	fs.VisitAll(func(*flag.Flag) { n++ })
	return n > 0
}

// flagsSet returns the names of the flags given explicitly on the command
// line.
func flagsSet(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	if fs != nil {
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	}
	return set
}

// usageError prints the usage line of cmd and returns an ErrUsage.
func usageError(stderr io.Writer, cmd Command, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(stderr, "%s\nUsage: behave %s\n", msg, cmd.Usage())
	return fmt.Errorf("%w: %s: %s", ErrUsage, cmd.Name(), strings.TrimSpace(msg))
}
