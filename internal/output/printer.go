// Package output formats terminal output for the tracker CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
)

// Printer writes user-facing messages. Colors are decided once at
// construction so every message renders consistently.
type Printer struct {
	out    io.Writer
	err    io.Writer
	colors bool
}

// NewPrinter creates a printer writing to the given streams.
func NewPrinter(out, err io.Writer, colors bool) *Printer {
	return &Printer{out: out, err: err, colors: colors}
}

// DefaultPrinter writes to stdout/stderr with colors resolved from the
// environment.
func DefaultPrinter() *Printer {
	return NewPrinter(os.Stdout, os.Stderr, ResolveColors())
}

// ResolveColors reports whether colored output should be used. NO_COLOR and
// dumb terminals disable it.
func ResolveColors() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// Out exposes the underlying stdout writer for table rendering.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Print writes a plain line.
func (p *Printer) Print(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success writes a confirmation line.
func (p *Printer) Success(format string, args ...interface{}) {
	if p.colors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

// Warning writes a warning line to stderr.
func (p *Printer) Warning(format string, args ...interface{}) {
	if p.colors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

// Error writes an error line to stderr.
func (p *Printer) Error(format string, args ...interface{}) {
	if p.colors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
}

// Bold returns text in bold when colors are enabled.
func (p *Printer) Bold(text string) string {
	if p.colors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

// Dim returns faint text when colors are enabled.
func (p *Printer) Dim(text string) string {
	if p.colors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

// RiskBadge colors a portfolio risk level.
func (p *Printer) RiskBadge(level string) string {
	if !p.colors {
		return level
	}
	switch level {
	case "Low":
		return color.GreenString(level)
	case "Medium":
		return color.YellowString(level)
	case "High":
		return color.RedString(level)
	default:
		return level
	}
}

// Money formats a dollar amount with two decimals.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Quantity formats a share count without trailing zeros.
func Quantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
