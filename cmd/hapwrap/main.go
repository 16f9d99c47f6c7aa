// Command hapwrap is the detached session leader that binds a hap's
// command to an actual process. hapless itself never blocks on a
// launched command: it spawns hapwrap as a new session with stdio
// pointed at /dev/null, hands it a state directory and hap id, and
// returns. hapwrap re-reads the hap, execs the user's shell, waits for
// it, and records the result before exiting.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/hapless-cli/hapless/internal/hap"
	"github.com/hapless-cli/hapless/internal/launcher"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "hapwrap: usage: hapwrap <state-dir-path> <hap-id>")
		syscall.Exit(1)
	}

	path, id := os.Args[1], os.Args[2]
	h := hap.Open(id, filepath.Join(path, id))

	if status := h.Status(); status != hap.Unbound {
		fmt.Fprintf(os.Stderr, "hapwrap: hap %s is not UNBOUND (status=%s); refusing to bind\n", id, status)
		syscall.Exit(1)
	}

	shell := launcher.Shell(os.Getenv("SHELL"))
	if err := launcher.RunAndWait(h, shell); err != nil {
		fmt.Fprintf(os.Stderr, "hapwrap: %v\n", err)
		syscall.Exit(1)
	}

	// syscall.Exit, not os.Exit: skip deferred runtime finalizers since we
	// are a session leader with no further cleanup to perform.
	syscall.Exit(0)
}
