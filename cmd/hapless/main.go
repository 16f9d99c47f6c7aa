package main

import "github.com/hapless-cli/hapless/internal/ui"

func main() {
	// Initialize terminal FIRST, before any charmbracelet-backed package
	// (internal/probe's spinner, internal/ui's watch/log view) runs, to
	// avoid OSC 11 background-color queries polluting stdout.
	ui.InitTerminal()

	Execute()
}
