// Package commands provides the CLI command infrastructure for ccv.
package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nucleoia/ccv/internal/config"
)

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name (e.g., "sync", "render").
	Name() string
	// Description returns a short description for help text.
	Description() string
	// Setup configures command-specific flags.
	Setup(fs *flag.FlagSet)
	// Run executes the command with the given context and arguments.
	Run(ctx *Context, args []string) error
}

// Flags holds global CLI flags shared by every command.
type Flags struct {
	// ConfigPath is an explicit configuration file path; empty means the
	// default search order applies.
	ConfigPath string
	// JSONOutput indicates whether to output in JSON format.
	JSONOutput bool
	// Debug enables debug logging.
	Debug bool
}

// Context provides the execution context for commands.
type Context struct {
	// Flags contains the parsed global flags.
	Flags *Flags
	// Output is the writer for command output (default: os.Stdout).
	Output io.Writer
	// ErrOutput is the writer for error output (default: os.Stderr).
	ErrOutput io.Writer
}

// NewContext creates a new Context with the given flags.
func NewContext(flags *Flags) *Context {
	return &Context{
		Flags:     flags,
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
	}
}

// LoadConfig resolves and loads the configuration for the current run.
func (c *Context) LoadConfig() (*config.Config, error) {
	path := config.Find(c.Flags.ConfigPath)
	if path == "" {
		return nil, fmt.Errorf("%s not found\n\nTo set up configuration:\n  1. Create %s in the current directory or in ~/.ccv/\n  2. Set source.projects_path to your conversation logs directory\n\nExample:\n  source:\n    projects_path: ~/.claude/projects", config.FileName, config.FileName)
	}
	return config.Load(path)
}

// Registry holds all registered commands.
type Registry struct {
	commands map[string]Command
	order    []string
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd Command) {
	name := cmd.Name()
	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.commands[name] = cmd
}

// Get returns a command by name.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []Command {
	result := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.commands[name])
	}
	return result
}

// PrintHelp prints the help text for all commands.
func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "ccv - Code Chat Viewer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "    ccv <command> [flags] [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "COMMANDS:")
	for _, cmd := range r.Commands() {
		fmt.Fprintf(w, "    %-12s %s\n", cmd.Name(), cmd.Description())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "GLOBAL FLAGS:")
	fmt.Fprintln(w, "    --config       Path to config.yaml (default: ~/.ccv/config.yaml, then ./config.yaml)")
	fmt.Fprintln(w, "    --json         Output results in JSON format (default: human-readable)")
	fmt.Fprintln(w, "    --debug        Enable debug logging")
	fmt.Fprintln(w, "    --help, -h     Show help for command")
	fmt.Fprintln(w, "    --version, -v  Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "    # Convert everything, organize, and rebuild the dashboard")
	fmt.Fprintln(w, "    ccv sync --open")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    # Convert one log file")
	fmt.Fprintln(w, "    ccv render session.jsonl --open")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    # Re-run the Shorts/Archive passes only")
	fmt.Fprintln(w, "    ccv organize")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    # Rebuild the dashboard only")
	fmt.Fprintln(w, "    ccv dashboard --open")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use \"ccv <command> --help\" for detailed help on any command.")
}

// DefaultRegistry is the global command registry with all commands pre-registered.
var DefaultRegistry = NewRegistry()

// RegisterAll registers all CLI commands with the given registry.
func RegisterAll(r *Registry) {
	r.Register(&SyncCmd{})
	r.Register(&RenderCmd{})
	r.Register(&OrganizeCmd{})
	r.Register(&DashboardCmd{})
}

func init() {
	RegisterAll(DefaultRegistry)
}
