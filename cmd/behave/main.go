package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeycumines/behave/internal/command"
	"github.com/joeycumines/behave/internal/config"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: ignoring configuration: %v\n", err)
		cfg = config.NewConfig()
	}
	configPath, _ := config.GetConfigPath()

	registry := command.NewRegistry()
	registry.Register(command.NewHelpCommand(registry))
	registry.Register(command.NewVersionCommand(version))
	registry.Register(command.NewConfigCommand(cfg, configPath))
	registry.Register(command.NewTreesCommand())
	registry.Register(command.NewRunCommand(cfg))

	return registry.Dispatch(ctx, args, stdout, stderr)
}

// exitCode maps the error from run to a process exit status: 2 for usage
// errors, 1 for anything else. Failed trees don't print an error, the run
// summary already says so.
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, command.ErrUsage):
		return 2
	case errors.Is(err, command.ErrTreeFailed):
		return 1
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
