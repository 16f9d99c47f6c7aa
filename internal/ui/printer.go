package ui

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Printer centralizes output formatting for commands: it picks between
// text, JSON, and YAML rendering and carries the ColorConfig used by
// the text path.
type Printer struct {
	format string
	Colors *ColorConfig
}

func NewPrinter(format string) Printer {
	return Printer{format: format, Colors: NewColorConfig()}
}

// Format reports the active output format ("text", "json", or "yaml").
func (p Printer) Format() string { return p.format }

// Structured renders v as JSON or YAML, per the printer's format, and
// reports whether it did so (false means the caller should fall back
// to its own text rendering).
func (p Printer) Structured(v any) bool {
	switch p.format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(v)
		return true
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		_ = enc.Encode(v)
		_ = enc.Close()
		return true
	default:
		return false
	}
}

// Textf prints formatted text to stdout (always the text path,
// regardless of --json/--yaml; used for prompts and diagnostics).
func (p Printer) Textf(format string, a ...any) { fmt.Printf(format, a...) }

// Debugf prints a diagnostic line to stderr when --debug/-d was passed
// or HAPLESS_DEBUG is set, and is a no-op otherwise. There is no logging library in this tree;
// debug output is gated the same way the old log viewer gated its own
// trace prints behind an env var.
func Debugf(format string, a ...any) {
	if !GetGlobal().Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "debug: "+format+"\n", a...)
}

// Success prints a success line with a themed prefix.
func (p Printer) Success(msg string) {
	fmt.Printf("%s %s\n", p.Colors.Apply(BrightGreen, "✓"), msg)
}

// Info prints an informational line.
func (p Printer) Info(msg string) {
	fmt.Println(p.Colors.Apply(BrightCyan, "ℹ"), msg)
}

// Warn prints a warning line.
func (p Printer) Warn(msg string) {
	fmt.Println(p.Colors.Apply(BrightYellow, "!"), msg)
}

// Error prints an error line.
func (p Printer) Error(msg string) {
	fmt.Println(p.Colors.Error("✗"), msg)
}

// Header prints a section header.
func (p Printer) Header(title string) {
	fmt.Println(p.Colors.Header(" " + title + " "))
}

// Separator prints a themed separator line of n characters.
func (p Printer) Separator(n int) { fmt.Println(p.Colors.Separator(n)) }

// Section prints a subsection header with a separator underneath.
func (p Printer) Section(title string) {
	fmt.Println()
	fmt.Println(p.Colors.SubHeader(title))
	fmt.Println(p.Colors.Separator(40))
}

// KeyValueLine prints a key-value pair, coloring the value by the named
// semantic role ("dim", "error", or "" for the default).
func (p Printer) KeyValueLine(key, value, role string) {
	var colored string
	switch role {
	case "dim":
		colored = p.Colors.Description(value)
	case "error":
		colored = p.Colors.Error(value)
	default:
		colored = p.Colors.Value(value)
	}
	fmt.Printf("%s %s\n", p.Colors.Label(key+":"), colored)
}
