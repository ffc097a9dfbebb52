// Package output renders CLI results as tables, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable prints tables for listings and plain text for scalars.
	FormatTable Format = "table"
	// FormatJSON outputs data as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs data as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a string into a Format, returning an error if invalid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Printer writes results to out and diagnostics (warnings) to diag, so
// piping a decoded value never mixes in human-oriented notes.
type Printer struct {
	out    io.Writer
	diag   io.Writer
	format Format
	color  bool
}

// NewPrinter creates a Printer. A nil diag sends warnings to out.
func NewPrinter(out, diag io.Writer, format Format, color bool) *Printer {
	if diag == nil {
		diag = out
	}
	return &Printer{out: out, diag: diag, format: format, color: color}
}

// Format returns the printer's output format.
func (p *Printer) Format() Format {
	return p.format
}

// Writer returns the printer's output writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Print outputs data in the configured format.
//
// In table format, a TableRenderer is drawn as a table, strings and
// fmt.Stringer values are printed on one line, and anything else falls back
// to JSON.
func (p *Printer) Print(data any) error {
	switch p.format {
	case FormatTable:
		switch v := data.(type) {
		case TableRenderer:
			return PrintTable(p.out, v)
		case string:
			_, err := fmt.Fprintln(p.out, v)
			return err
		case fmt.Stringer:
			_, err := fmt.Fprintln(p.out, v.String())
			return err
		}
		return PrintJSON(p.out, data)
	case FormatJSON:
		return PrintJSON(p.out, data)
	case FormatYAML:
		return PrintYAML(p.out, data)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// Println prints a line to the output writer.
func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// Warnf prints a warning line to the diagnostic writer.
func (p *Printer) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.color {
		_, _ = fmt.Fprintf(p.diag, "\033[33mwarning:\033[0m %s\n", msg)
	} else {
		_, _ = fmt.Fprintf(p.diag, "warning: %s\n", msg)
	}
}
