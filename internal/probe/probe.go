// Package probe implements the bounded fast-failure check performed
// right after a hap is launched: poll for a short, fixed window to see
// whether the command has already exited, rather than leaving the
// caller wondering whether "run" actually started anything.
package probe

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/hapless-cli/hapless/internal/hap"
)

// Outcome classifies what the probe observed within its window.
type Outcome string

const (
	Healthy      Outcome = "healthy"       // still running when the window closed
	QuickSuccess Outcome = "quick_success" // exited with rc 0 before the window closed
	QuickFailure Outcome = "quick_failure" // exited with a nonzero/signal rc before the window closed
)

// Result is what Run reports once the window closes or the hap exits.
type Result struct {
	Outcome Outcome
	RC      int    // valid only for QuickSuccess/QuickFailure
	Stderr  string // tail of stderr, populated only for QuickFailure
}

const pollInterval = 100 * time.Millisecond

// checker is the narrow slice of *hap.Hap the probe needs: just enough
// to observe termination and read the failure diagnostic. Keeping this
// as an interface (rather than depending on *hap.Hap directly) lets
// tests drive the poll loop with a fake.
type checker interface {
	ReturnCode() (int, bool)
	StderrPath() string
}

var _ checker = (*hap.Hap)(nil)

// Run polls h for up to timeout, reporting whether it survived the
// window. When out is a terminal, a spinner counts down the remaining
// time; otherwise Run polls silently.
func Run(h *hap.Hap, timeout time.Duration, out *os.File) Result {
	if isTTY(out) {
		return runWithSpinner(h, timeout, out)
	}
	return poll(h, timeout, nil)
}

func isTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// poll is the TTY-independent core: check every pollInterval whether
// rc_file has appeared, stopping early on success/failure.
func poll(h checker, timeout time.Duration, tick func(remaining time.Duration)) Result {
	deadline := time.Now().Add(timeout)
	for {
		if rc, ok := h.ReturnCode(); ok {
			return resultFor(h, rc)
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return Result{Outcome: Healthy}
		}
		if tick != nil {
			tick(remaining)
		}
		sleep := pollInterval
		if remaining < sleep {
			sleep = remaining
		}
		time.Sleep(sleep)
	}
}

func resultFor(h checker, rc int) Result {
	if rc == 0 {
		return Result{Outcome: QuickSuccess, RC: rc}
	}
	tail, _ := os.ReadFile(h.StderrPath())
	return Result{Outcome: QuickFailure, RC: rc, Stderr: string(tail)}
}
