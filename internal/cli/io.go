package cli

import (
	"fmt"
	"io"
)

// IO handles command output. Warnings are collected during a command and
// printed to stderr once it finishes.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	color    bool
	warnings []string
}

// NewIO creates a new IO instance. color enables ANSI styling of stdout.
func NewIO(out, errOut io.Writer, color bool) *IO {
	return &IO{out: out, errOut: errOut, color: color}
}

// Warn records a warning. A command that warned exits with [ExitFailure].
//
// Output to stdout (via Println) still occurs - warnings don't suppress
// normal output.
func (o *IO) Warn(msg string) {
	o.warnings = append(o.warnings, msg)
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Flush prints recorded warnings to stderr and reports whether there were
// any.
func (o *IO) Flush() bool {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}

	return len(o.warnings) > 0
}
