// Package config holds process-wide settings layered from environment
// variables: a plain struct of fields, a constructor for defaults, and
// a loader that applies env overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// Config holds the settings that govern a single hapless invocation.
type Config struct {
	StateDir        string        // HAPLESS_DIR
	Debug           bool          // HAPLESS_DEBUG
	FailfastTimeout time.Duration // HAPLESS_FAILFAST_TIMEOUT (seconds)
	NoFork          bool          // HAPLESS_NO_FORK
	RedirectStderr  bool          // HAPLESS_REDIRECT_STDERR (default for new haps)
	Shell           string        // SHELL
}

// Defaults returns the built-in defaults before any environment overrides.
func Defaults() Config {
	return Config{
		StateDir:        filepath.Join(os.TempDir(), "hapless"),
		Debug:           false,
		FailfastTimeout: 5 * time.Second,
		NoFork:          false,
		RedirectStderr:  false,
		Shell:           "/bin/sh",
	}
}

// Load returns Defaults() with every recognized environment variable
// applied on top.
func Load() Config {
	cfg := Defaults()
	if v := os.Getenv("HAPLESS_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("HAPLESS_DEBUG"); v != "" {
		cfg.Debug = parseBool(v)
	}
	if v := os.Getenv("HAPLESS_FAILFAST_TIMEOUT"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
			cfg.FailfastTimeout = time.Duration(secs * float64(time.Second))
		}
	}
	if v := os.Getenv("HAPLESS_NO_FORK"); v != "" {
		cfg.NoFork = parseBool(v)
	}
	if v := os.Getenv("HAPLESS_REDIRECT_STDERR"); v != "" {
		cfg.RedirectStderr = parseBool(v)
	}
	if v := os.Getenv("SHELL"); v != "" {
		cfg.Shell = v
	}
	return cfg
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

var warnNoTTYOnce sync.Once

// WarnIfNoColorUnsupported prints a one-time warning to stderr when the
// caller asked for colored output in a context that can't render it
// (e.g. --json combined with a forced color flag). A harmless, one-shot
// diagnostic, not an error.
func WarnIfNoColorUnsupported(jsonOutput, wantColor bool) {
	if jsonOutput && wantColor {
		warnNoTTYOnce.Do(func() {
			fmt.Fprintln(os.Stderr, "Warning: color output has no effect with --json; ignoring.")
		})
	}
}
