package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
)

// SetColor forces colored output on or off regardless of terminal detection.
func SetColor(enabled bool) {
	color.NoColor = !enabled //nolint:reassign // library global
}

// Printer writes status lines for a command.
type Printer struct {
	out io.Writer
	err io.Writer
}

// NewPrinter returns a Printer writing successes to out and failures and
// warnings to errOut.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// Success prints a green status line to the standard stream.
func (p *Printer) Success(format string, args ...any) {
	successColor.Fprintf(p.out, format+"\n", args...)
}

// Failure prints a red status line to the error stream.
func (p *Printer) Failure(format string, args ...any) {
	failureColor.Fprintf(p.err, format+"\n", args...)
}

// Warn prints a yellow status line to the error stream.
func (p *Printer) Warn(format string, args ...any) {
	warnColor.Fprintf(p.err, format+"\n", args...)
}

// Plain prints an uncolored line to the standard stream.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Size renders a byte count for humans, e.g. "1.2 kB".
func Size(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
