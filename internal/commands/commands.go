package commands

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
)

const prefix = "cmd"

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. name is the first token of the line (e.g. "count").
// fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
// fs output is discarded so usage text never reaches stderr; Execute returns parse errors instead.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	fs.SetOutput(io.Discard)
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Usage returns the usage line of a registered command.
func (r *Registry) Usage(name string) (string, bool) {
	cmd, ok := r.cmds[name]
	if !ok {
		return "", false
	}
	return cmd.Usage, true
}

// Parse tokenizes a console line by spaces. A leading "cmd" token is optional and dropped.
// ok is false for blank lines.
func Parse(line string) (args []string, ok bool) {
	args = strings.Fields(line)
	if len(args) > 0 && args[0] == prefix {
		args = args[1:]
	}
	if len(args) == 0 {
		return nil, false
	}
	return args, true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	// Flag values persist between calls on the same FlagSet.
	cmd.FlagSet.VisitAll(func(f *flag.Flag) { _ = f.Value.Set(f.DefValue) })
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w (usage: %s)", name, err, cmd.Usage)
	}
	return cmd.Run()
}

// ExecuteLine parses and runs a console line. Blank lines are ignored.
func (r *Registry) ExecuteLine(line string) error {
	args, ok := Parse(line)
	if !ok {
		return nil
	}
	return r.Execute(args)
}
