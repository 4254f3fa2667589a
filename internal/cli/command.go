package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one taskscan subcommand. Commands take no positional
// arguments; everything is a flag.
type Command struct {
	Flags *flag.FlagSet

	// Usage starts with the command name, e.g. "ls [flags]".
	Usage string

	Short string
	Long  string // defaults to Short

	// GlobalFlags names the flags given before the command that change what
	// it does. Its help lists them after its own flags.
	GlobalFlags []string

	Exec func(ctx context.Context, o *IO) error
}

// Name returns the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the command's row in the top-level usage.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-22s %s", c.Usage, c.Short)
}

// PrintHelp writes "taskscan <cmd> --help" output to w.
func (c *Command) PrintHelp(w io.Writer, globals *flag.FlagSet) {
	fprintln(w, "Usage: taskscan", c.Usage)
	fprintln(w)

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	fprintln(w, desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		fprintln(w)
		fprintln(w, "Flags:")
		printFlags(w, c.Flags)
	}

	if globals == nil || len(c.GlobalFlags) == 0 {
		return
	}

	shown := flag.NewFlagSet(c.Name(), flag.ContinueOnError)

	for _, name := range c.GlobalFlags {
		if f := globals.Lookup(name); f != nil {
			shown.AddFlag(f)
		}
	}

	fprintln(w)
	fprintln(w, "Global flags (before the command):")
	printFlags(w, shown)
}

// Run parses args, runs Exec and flushes warnings. It maps the outcome to
// the process exit code: output write failures give [ExitWriteFailed], any
// other error or a warning gives [ExitFailure].
func (c *Command) Run(ctx context.Context, o *IO, globals *flag.FlagSet, args []string) int {
	c.Flags.SetOutput(io.Discard)

	err := c.Flags.Parse(args)

	switch {
	case errors.Is(err, flag.ErrHelp):
		c.PrintHelp(o.out, globals)

		return ExitOK
	case err != nil:
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o.errOut, globals)

		return ExitFailure
	case c.Flags.NArg() > 0:
		o.ErrPrintln("error: unexpected argument:", c.Flags.Arg(0))

		return ExitFailure
	}

	err = c.Exec(ctx, o)
	if err != nil {
		o.ErrPrintln("error:", err)
	}

	warned := o.Flush()

	switch {
	case errors.Is(err, ErrWriteBacklog), errors.Is(err, ErrWriteIndex):
		return ExitWriteFailed
	case err != nil, warned:
		return ExitFailure
	default:
		return ExitOK
	}
}

func printFlags(w io.Writer, set *flag.FlagSet) {
	set.SetOutput(w)
	set.PrintDefaults()
	set.SetOutput(io.Discard)
}
