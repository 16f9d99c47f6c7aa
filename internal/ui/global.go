package ui

// Config holds the invocation-wide settings derived from persistent CLI
// flags. It is set once by the root command's PersistentPreRun and read
// by every subcommand and by the packages below.
type Config struct {
	NoColor        bool
	NonInteractive bool
	JSON           bool
	YAML           bool
	Verbose        bool
	Quiet          bool
	Debug          bool
}

var globalConfig = Config{}

// InitGlobal sets the global Config. Call once at startup.
func InitGlobal(cfg Config) {
	globalConfig = cfg
}

// GetGlobal returns the current global Config.
func GetGlobal() Config {
	return globalConfig
}

// NewColorConfigFromGlobal builds a ColorConfig honoring both the
// environment (NO_COLOR, TERM) and the --no-color flag.
func NewColorConfigFromGlobal() *ColorConfig {
	cfg := GetGlobal()
	c := NewColorConfig()
	c.Enabled = c.Enabled && !cfg.NoColor
	return c
}

// NewPrinterFromGlobal builds a Printer using the global Config's output
// format (json/yaml/text, in that precedence order).
func NewPrinterFromGlobal() Printer {
	cfg := GetGlobal()
	format := "text"
	switch {
	case cfg.JSON:
		format = "json"
	case cfg.YAML:
		format = "yaml"
	}
	return Printer{format: format, Colors: NewColorConfigFromGlobal()}
}
