// Package output provides the stdout/stderr line protocol for selfbuild.
//
// Standard output carries "[INFO] ..." and "[CMD] ..." lines that tooling
// scrapes, so those are written without colour and with exactly one
// trailing newline. Colour is only used for diagnostics on standard error.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AndreyAkinshin/selfbuild/pkg/shquote"
)

// Line prefixes.
const (
	InfoPrefix  = "[INFO] "
	ErrorPrefix = "[ERROR] "
	WarnPrefix  = "[WARN] "
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
}

// New creates a new Writer on the process's standard streams.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(os.Stderr),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// Out returns the standard output writer.
func (w *Writer) Out() io.Writer {
	return w.out
}

// Err returns the standard error writer.
func (w *Writer) Err() io.Writer {
	return w.err
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info writes one "[INFO] ..." line to stdout. Unlike Println it reports
// write failures, since a missing line breaks the trace contract.
func (w *Writer) Info(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(w.out, InfoPrefix+format+"\n", args...)
	return err
}

// Command writes the "[CMD] ..." trace line for program and args to stdout.
func (w *Writer) Command(program string, args []string) error {
	return shquote.WriteCommand(w.out, program, args)
}

// Error prints a fatal diagnostic to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%s%s%s%s", red, ErrorPrefix, reset, msg)
	} else {
		w.Errorln("%s%s", ErrorPrefix, msg)
	}
}

// Warning prints a warning to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%s%s%s%s", yellow, WarnPrefix, reset, msg)
	} else {
		w.Errorln("%s%s", WarnPrefix, msg)
	}
}

// Table prints a simple table.
func (w *Writer) Table(headers []string, rows [][]string) {
	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Print header
	var headerParts []string
	for i, h := range headers {
		headerParts = append(headerParts, fmt.Sprintf("%-*s", widths[i], h))
	}
	w.Println("%s", strings.TrimRight(strings.Join(headerParts, "  "), " "))

	// Print separator
	var sepParts []string
	for _, width := range widths {
		sepParts = append(sepParts, strings.Repeat("-", width))
	}
	w.Println("%s", strings.Join(sepParts, "  "))

	// Print rows
	for _, row := range rows {
		var rowParts []string
		for i, cell := range row {
			if i < len(widths) {
				rowParts = append(rowParts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		w.Println("%s", strings.TrimRight(strings.Join(rowParts, "  "), " "))
	}
}

// isTerminal returns true if f is a terminal.
func isTerminal(f *os.File) bool {
	if fi, _ := f.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	yellow = "\033[33m"
)
