package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/term"
)

// Watch repeatedly calls render and repaints the terminal only when its
// output actually changed, avoiding the flicker of a redraw-every-tick
// status view. It exits on ctx cancellation, Ctrl+C, or 'q' when stdin
// is a TTY; non-interactive callers should pass a ctx with a deadline
// or rely on external cancellation instead.
func Watch(ctx context.Context, out *os.File, interval time.Duration, render func() string) error {
	if interval <= 0 {
		interval = time.Second
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	if stdinTTY {
		if oldState, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
			defer term.Restore(int(os.Stdin.Fd()), oldState)
			keyCh := listenKeys(ctx)
			go func() {
				for key := range keyCh {
					if key == 3 || key == 'q' || key == 'Q' {
						cancel()
						return
					}
				}
			}()
		}
	}

	var lastHash uint64
	first := true
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		content := render()
		h := xxhash.Sum64String(content)
		if first || h != lastHash {
			lastHash = h
			first = false
			fmt.Fprint(out, "\x1b[2J\x1b[H")
			fmt.Fprint(out, content)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
