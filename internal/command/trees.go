package command

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/joeycumines/behave/internal/demo"
)

// TreesCommand lists the built-in demo trees.
type TreesCommand struct {
	*BaseCommand
}

// NewTreesCommand creates a new trees command.
func NewTreesCommand() *TreesCommand {
	return &TreesCommand{
		BaseCommand: NewBaseCommand(
			"trees",
			"List the built-in trees",
			"trees",
		),
	}
}

// Execute lists every tree with its description.
func (c *TreesCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return usageError(stderr, c, "unexpected arguments: %v", args)
	}
	w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	for _, tree := range demo.All() {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", tree.Name, tree.Description)
	}
	return w.Flush()
}
