package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// Command declares one chainable subcommand: its flags and how to build the
// stage once they are parsed.
type Command interface {
	Name() string
	Synopsis() string
	Flags(fs *pflag.FlagSet)
	Build(pos []string, fs *pflag.FlagSet) (Stage, error)
}

// positional is implemented by commands that consume leading positional
// arguments before their flags, e.g. "every 10m".
type positional interface {
	Positionals() int
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]func() Command{}}
}

type Registry struct {
	factories map[string]func() Command
	names     []string
}

func (r *Registry) Register(name string, factory func() Command) {
	r.factories[name] = factory
	r.names = append(r.names, name)
}

// Names lists registered commands in registration order.
func (r *Registry) Names() []string {
	return r.names
}

// Usage renders a one-line summary per command.
func (r *Registry) Usage() string {
	names := append([]string(nil), r.names...)
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		cmd := r.factories[name]()
		fmt.Fprintf(&b, "  %-12s%s\n", name, cmd.Synopsis())
	}
	return b.String()
}

// CommandUsage renders the flag help for one command, or an error for an
// unknown name.
func (r *Registry) CommandUsage(name string) (string, error) {
	factory, ok := r.factories[name]
	if !ok {
		return "", fmt.Errorf("unknown command %q", name)
	}

	cmd := factory()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	cmd.Flags(fs)

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", name, cmd.Synopsis())
	if flags := fs.FlagUsages(); flags != "" {
		fmt.Fprintf(&b, "\nFlags:\n%s", flags)
	}
	return b.String(), nil
}

// Parse splits argv into stage groups. Each group starts with a command
// name; the command's flag set consumes the following flags and stops at the
// next non-flag token, which begins the next group.
func (r *Registry) Parse(args []string) ([]Stage, error) {
	var stages []Stage

	rest := args
	for len(rest) > 0 {
		name := rest[0]
		rest = rest[1:]

		factory, ok := r.factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown command %q, expected one of: %s", name, strings.Join(r.names, ", "))
		}
		cmd := factory()

		var pos []string
		if p, ok := cmd.(positional); ok {
			n := p.Positionals()
			if len(rest) < n {
				return nil, fmt.Errorf("%s: expected %d argument(s)", name, n)
			}
			pos, rest = rest[:n], rest[n:]
		}

		fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
		fs.SetInterspersed(false)
		cmd.Flags(fs)

		if err := fs.Parse(rest); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		rest = fs.Args()

		stage, err := cmd.Build(pos, fs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		stages = append(stages, stage)
	}

	return stages, nil
}
