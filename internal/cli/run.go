package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/taskscan/internal/config"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1 // projects root missing, no task files, usage or config error
	ExitWriteFailed = 2

	// ExitInvalidTaskFormat is reserved. Malformed lines are never an error.
	ExitInvalidTaskFormat = 3
)

const defaultCommand = "scan"

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. A signal received on it cancels the running command,
// which stops a scan before the next file.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	o := NewIO(out, errOut, useColor(out, env))

	globals := flag.NewFlagSet("taskscan", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(io.Discard)

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	output := globals.StringP("output", "o", "", "Write the backlog to `path` (default state/backlog.yaml)")
	projects := globals.StringP("projects", "p", "", "Scan projects below `dir` (default projects)")
	format := globals.StringP("format", "f", "", "Output `format`: yaml or json (default from output extension)")
	indexPath := globals.StringP("index", "i", "", "Also write a SQLite index of the backlog to `path`")
	verbose := globals.BoolP("verbose", "v", false, "Log scan progress to stderr")
	help := globals.BoolP("help", "h", false, "Show help")

	if len(args) > 0 {
		args = args[1:]
	}

	if err := globals.Parse(args); err != nil {
		o.ErrPrintln("error:", err)
		printUsage(errOut, globals)

		return ExitFailure
	}

	if *help {
		printUsage(out, globals)

		return ExitOK
	}

	for _, name := range []string{"output", "projects"} {
		if globals.Changed(name) && globals.Lookup(name).Value.String() == "" {
			o.ErrPrintln("error:", emptyFlagError(name))

			return ExitFailure
		}
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:     *workDir,
		ConfigPath:          *configPath,
		ProjectsDirOverride: *projects,
		OutputOverride:      *output,
		FormatOverride:      *format,
		IndexOverride:       *indexPath,
		Verbose:             *verbose,
		Env:                 env,
	})
	if err != nil {
		o.ErrPrintln("error:", err)

		return ExitFailure
	}

	logger := newLogger(errOut, cfg.Verbose)

	commands := []*Command{
		ScanCmd(&cfg, logger),
		LsCmd(&cfg),
		PrintConfigCmd(&cfg),
	}

	name := defaultCommand
	rest := globals.Args()

	if len(rest) > 0 {
		name, rest = rest[0], rest[1:]
	}

	var cmd *Command

	for _, c := range commands {
		if c.Name() == name {
			cmd = c

			break
		}
	}

	if cmd == nil {
		o.ErrPrintln("error: unknown command:", name)
		printUsage(errOut, globals)

		return ExitFailure
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case sig := <-sigCh:
				logger.Warn("received signal, stopping", "signal", sig)
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return cmd.Run(ctx, o, globals, rest)
}

func emptyFlagError(name string) error {
	if name == "output" {
		return config.ErrOutputEmpty
	}

	return config.ErrProjectsDirEmpty
}

// newLogger returns the run log. Without verbose it discards everything.
func newLogger(errOut io.Writer, verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard)
	}

	return log.NewWithOptions(errOut, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "taskscan",
	})
}

// useColor reports whether stdout is a terminal that accepts ANSI styling.
func useColor(out io.Writer, env map[string]string) bool {
	if _, ok := env["NO_COLOR"]; ok {
		return false
	}

	f, ok := out.(*os.File)

	return ok && f == os.Stdout && !color.NoColor
}

func printUsage(w io.Writer, globals *flag.FlagSet) {
	fprintln(w, "Usage: taskscan [flags] [command]")
	fprintln(w)
	fprintln(w, "Aggregate checklist items from projects/{org}/{repo}/{specs,.specify}/**/tasks.md")
	fprintln(w, "into a single backlog file.")
	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range []*Command{ScanCmd(nil, nil), LsCmd(nil), PrintConfigCmd(nil)} {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Flags:")

	printFlags(w, globals)

	fprintln(w)
	_, _ = fmt.Fprintf(w, "Without a command, %q runs.\n", defaultCommand)
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
