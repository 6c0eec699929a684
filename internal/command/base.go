// Package command implements the behave command line: a registry of
// subcommands, each with its own flag set.
package command

import (
	"context"
	"flag"
	"io"
)

// Command is a subcommand of behave.
type Command interface {
	// Name returns the command name.
	Name() string

	// Description returns a short description of the command.
	Description() string

	// Usage returns the usage string for the command.
	Usage() string

	// SetupFlags registers the command's flags on fs, before parsing.
	SetupFlags(fs *flag.FlagSet)

	// Execute runs the command with the arguments left after flag parsing.
	// Long-running commands stop when ctx is done.
	Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

// BaseCommand implements the descriptive half of Command, for embedding.
type BaseCommand struct {
	name        string
	description string
	usage       string
}

// NewBaseCommand creates a new BaseCommand.
func NewBaseCommand(name, description, usage string) *BaseCommand {
	return &BaseCommand{
		name:        name,
		description: description,
		usage:       usage,
	}
}

func (c *BaseCommand) Name() string        { return c.name }
func (c *BaseCommand) Description() string { return c.description }
func (c *BaseCommand) Usage() string       { return c.usage }

// SetupFlags registers nothing.
func (c *BaseCommand) SetupFlags(*flag.FlagSet) {}
