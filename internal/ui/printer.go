// Package ui renders relcheck's human-readable status output: step
// banners and colored ok/warn/error lines. There is deliberately no
// structured or machine-readable output mode.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI escape sequences.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiCyan   = "\033[36m"
)

// Printer writes status lines to a single writer.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer for w. Color is enabled only when w is a
// terminal and NO_COLOR is unset.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, color: colorEnabled(w)}
}

// NewPlainPrinter creates a printer with color forced off; used in tests.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// colorEnabled implements the NO_COLOR convention plus a terminal check.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// paint wraps s in the given ANSI code when color is enabled.
func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

// Step prints a banner announcing a pipeline step.
func (p *Printer) Step(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(ansiBold+ansiCyan, "==> "+fmt.Sprintf(format, args...)))
}

// Ok prints a success line.
func (p *Printer) Ok(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(ansiGreen, "ok: ")+fmt.Sprintf(format, args...))
}

// Warn prints a non-fatal warning line.
func (p *Printer) Warn(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(ansiYellow, "warn: ")+fmt.Sprintf(format, args...))
}

// Error prints a fatal error line.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(ansiRed, "error: ")+fmt.Sprintf(format, args...))
}

// Plain prints an uncolored informational line.
func (p *Printer) Plain(format string, args ...interface{}) {
	fmt.Fprintln(p.w, fmt.Sprintf(format, args...))
}
