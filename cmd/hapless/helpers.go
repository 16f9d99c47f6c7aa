package main

import (
	"os"

	"golang.org/x/term"
)

// outputFile returns d.Output as an *os.File when possible, since a few
// APIs (the probe's spinner, the interactive log/watch views) need a
// real file descriptor for TTY detection; it falls back to os.Stdout
// when Output has been swapped for something else (e.g. in tests).
func outputFile(d *Deps) *os.File {
	if f, ok := d.Output.(*os.File); ok {
		return f
	}
	return os.Stdout
}

// isInteractive reports whether f and stdin are both attached to a
// terminal and the user hasn't asked for --non-interactive.
func isInteractive(f *os.File) bool {
	if flagNonInteractive {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
