package command

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/joeycumines/behave/internal/config"
)

// HelpCommand displays help information for commands.
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates a new help command.
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(
			"help",
			"Display help information for commands",
			"help [command]",
		),
		registry: registry,
	}
}

// Execute displays general help, or help for the command named by args[0].
func (c *HelpCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 1 {
		return usageError(stderr, c, "too many arguments: %v", args)
	}

	if len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, "behave - tick behavior trees from your terminal")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Usage: behave <command> [options] [args...]")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Available commands:")
		w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
		for _, name := range c.registry.List() {
			if cmd, err := c.registry.Get(name); err == nil {
				_, _ = fmt.Fprintf(w, "  %s\t%s\n", name, cmd.Description())
			}
		}
		_ = w.Flush()
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Use 'behave help <command>' for more information about a specific command (includes flags).")
		return nil
	}

	cmd, err := c.registry.Get(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		return err
	}

	_, _ = fmt.Fprintf(stdout, "Command: %s\n", cmd.Name())
	_, _ = fmt.Fprintf(stdout, "Description: %s\n", cmd.Description())
	_, _ = fmt.Fprintf(stdout, "Usage: behave %s\n", cmd.Usage())

	// flags are discovered by registering them on a throwaway set
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	cmd.SetupFlags(fs)
	fs.PrintDefaults()
	if buf.Len() > 0 {
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Flags:")
		_, _ = fmt.Fprint(stdout, buf.String())
	}
	return nil
}

// VersionCommand displays version information.
type VersionCommand struct {
	*BaseCommand
	version string
}

// NewVersionCommand creates a new version command.
func NewVersionCommand(version string) *VersionCommand {
	return &VersionCommand{
		BaseCommand: NewBaseCommand(
			"version",
			"Display version information",
			"version",
		),
		version: version,
	}
}

// Execute displays version information.
func (c *VersionCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return usageError(stderr, c, "unexpected arguments: %v", args)
	}
	_, _ = fmt.Fprintf(stdout, "behave version %s\n", c.version)
	return nil
}

// ConfigCommand shows, validates and edits configuration.
type ConfigCommand struct {
	*BaseCommand
	config     *config.Config
	configPath string
	schema     *config.ConfigSchema
	showSchema bool
}

// NewConfigCommand creates a new config command. Values set through it are
// written to configPath; an empty path keeps changes in memory only.
func NewConfigCommand(cfg *config.Config, configPath string) *ConfigCommand {
	return &ConfigCommand{
		BaseCommand: NewBaseCommand(
			"config",
			"Show or change configuration settings",
			"config [--schema] [validate | <key> [value]]",
		),
		config:     cfg,
		configPath: configPath,
		schema:     config.DefaultSchema(),
	}
}

// SetupFlags configures the flags for the config command.
func (c *ConfigCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.showSchema, "schema", false, "Show every known option with its type, default and environment variable")
}

// Execute dispatches on the number of arguments: none prints the effective
// configuration, one gets a key, two set it. Section options are addressed
// as section.key, e.g. run.interval.
func (c *ConfigCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if c.showSchema {
		if len(args) > 0 {
			return usageError(stderr, c, "--schema takes no arguments")
		}
		_, _ = fmt.Fprint(stdout, c.schema.FormatHelp())
		return nil
	}

	switch len(args) {
	case 0:
		c.printEffective(stdout)
		return nil
	case 1:
		if args[0] == "validate" {
			return c.executeValidate(stdout)
		}
		section, key, err := c.splitKey(args[0])
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return err
		}
		_, _ = fmt.Fprintf(stdout, "%s\n", c.schema.Resolve(c.config, section, key))
		return nil
	case 2:
		return c.executeSet(args[0], args[1], stdout, stderr)
	default:
		return usageError(stderr, c, "too many arguments: %v", args)
	}
}

// splitKey maps "run.interval" to ("run", "interval") and "log.file" to
// ("", "log.file"): the prefix is a section only if the schema has one.
// Global keys may be addressed within a section, as in run.color.
func (c *ConfigCommand) splitKey(arg string) (section, key string, err error) {
	if prefix, rest, ok := strings.Cut(arg, "."); ok && slices.Contains(c.schema.Sections(), prefix) {
		section, key = prefix, rest
	} else {
		key = arg
	}
	if !c.schema.IsKnown(section, key) {
		return "", "", fmt.Errorf("unknown configuration option: %s", arg)
	}
	return section, key, nil
}

// printEffective writes every option's resolved value, in config file syntax.
func (c *ConfigCommand) printEffective(w io.Writer) {
	write := func(section string) {
		for _, opt := range c.schema.SectionOptions(section) {
			line := strings.TrimSpace(opt.Key + " " + c.schema.Resolve(c.config, section, opt.Key))
			_, _ = fmt.Fprintln(w, line)
		}
	}
	write("")
	for _, section := range c.schema.Sections() {
		_, _ = fmt.Fprintf(w, "\n[%s]\n", section)
		write(section)
	}
}

func (c *ConfigCommand) executeSet(arg, value string, stdout, stderr io.Writer) error {
	section, key, err := c.splitKey(arg)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return err
	}

	probe := config.NewConfig()
	setOption(probe, section, key, value)
	if issues := config.ValidateConfig(probe, c.schema); len(issues) > 0 {
		err := fmt.Errorf("invalid value for %s: %s", arg, issues[0])
		_, _ = fmt.Fprintln(stderr, err)
		return err
	}

	setOption(c.config, section, key, value)
	if c.configPath != "" {
		if err := config.SetKeyInFile(c.configPath, section, key, value); err != nil {
			return fmt.Errorf("failed to persist config: %w", err)
		}
	}
	_, _ = fmt.Fprintf(stdout, "Set configuration: %s = %s\n", arg, value)
	return nil
}

func (c *ConfigCommand) executeValidate(stdout io.Writer) error {
	issues := config.ValidateConfig(c.config, c.schema)
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(stdout, "Configuration is valid.")
		return nil
	}
	_, _ = fmt.Fprintf(stdout, "Configuration has %d issue(s):\n", len(issues))
	for _, issue := range issues {
		_, _ = fmt.Fprintf(stdout, "  - %s\n", issue)
	}
	return nil
}

func setOption(cfg *config.Config, section, key, value string) {
	if section == "" {
		cfg.SetGlobalOption(key, value)
	} else {
		cfg.SetCommandOption(section, key, value)
	}
}
