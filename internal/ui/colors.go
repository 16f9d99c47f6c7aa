package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/hapless-cli/hapless/internal/hap"
)

// Color codes for terminal output
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Italic    = "\033[3m"
	Underline = "\033[4m"

	// Primary colors
	Black   = "\033[30m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	// Bright colors
	BrightBlack   = "\033[90m"
	BrightRed     = "\033[91m"
	BrightGreen   = "\033[92m"
	BrightYellow  = "\033[93m"
	BrightBlue    = "\033[94m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"
	BrightWhite   = "\033[97m"
)

// Theme defines the color scheme for different UI elements.
type Theme struct {
	Header      string
	SubHeader   string
	Label       string
	Value       string
	Command     string
	Flag        string
	Description string
	Separator   string
	Error       string

	// StatusColors maps each of the five closed hap states to a color,
	// so status/show/watch rendering never has to special-case a state.
	StatusColors map[hap.Status]string
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Header:      Bold + BrightCyan,
		SubHeader:   Bold + Cyan,
		Label:       Bold,
		Value:       "",
		Command:     BrightGreen,
		Flag:        BrightYellow,
		Description: BrightBlack,
		Separator:   BrightBlack,
		Error:       BrightRed,

		StatusColors: map[hap.Status]string{
			hap.Unbound: BrightBlack,
			hap.Running: BrightGreen,
			hap.Paused:  BrightYellow,
			hap.Success: BrightGreen,
			hap.Failed:  BrightRed,
		},
	}
}

// ColorConfig manages color output settings for a single invocation.
type ColorConfig struct {
	Enabled bool
	Theme   *Theme
}

// NewColorConfig builds a ColorConfig, disabling color when NO_COLOR is
// set, TERM is "dumb", or TERM is unset (the non-interactive default).
func NewColorConfig() *ColorConfig {
	noColor := os.Getenv("NO_COLOR") != ""
	term := os.Getenv("TERM")
	enabled := !noColor && term != "dumb" && term != ""

	return &ColorConfig{
		Enabled: enabled,
		Theme:   DefaultTheme(),
	}
}

// Apply applies a color to text if colors are enabled.
func (c *ColorConfig) Apply(color, text string) string {
	if !c.Enabled || color == "" {
		return text
	}
	return color + text + Reset
}

func (c *ColorConfig) Error(text string) string       { return c.Apply(c.Theme.Error, text) }
func (c *ColorConfig) Header(text string) string      { return c.Apply(c.Theme.Header, text) }
func (c *ColorConfig) SubHeader(text string) string   { return c.Apply(c.Theme.SubHeader, text) }
func (c *ColorConfig) Label(text string) string       { return c.Apply(c.Theme.Label, text) }
func (c *ColorConfig) Value(text string) string       { return c.Apply(c.Theme.Value, text) }
func (c *ColorConfig) Command(text string) string     { return c.Apply(c.Theme.Command, text) }
func (c *ColorConfig) Flag(text string) string        { return c.Apply(c.Theme.Flag, text) }
func (c *ColorConfig) Description(text string) string { return c.Apply(c.Theme.Description, text) }

// Status renders s using its theme color, e.g. "RUNNING" in green.
func (c *ColorConfig) Status(s hap.Status) string {
	return c.Apply(c.Theme.StatusColors[s], string(s))
}

// FormatKeyValue formats a key-value pair with proper colors.
func (c *ColorConfig) FormatKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", c.Label(key), c.Value(value))
}

// Separator returns a colored horizontal rule of the given width.
func (c *ColorConfig) Separator(width int) string {
	return c.Apply(c.Theme.Separator, strings.Repeat("─", width))
}
