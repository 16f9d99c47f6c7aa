package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/nxadm/tail"
	"golang.org/x/term"
)

// LogViewOptions configures the interactive log viewer.
type LogViewOptions struct {
	LogPath  string // path to the hap's stdout.log or stderr.log
	HapName  string
	DetachKey byte // key that exits the viewer without touching the hap (default 'q')
	NoColor  bool
}

// RunLogView shows a hap's log with a sticky footer and in-process
// following via inotify/kqueue. Ctrl+C and DetachKey both just exit the
// viewer; neither one signals the hap, since watching logs should never
// have a side effect on the process being watched. Falls back to a
// plain tail -F/-f for non-TTY output or undersized terminals.
func RunLogView(ctx context.Context, opts LogViewOptions) error {
	if opts.DetachKey == 0 {
		opts.DetachKey = 'q'
	}

	stdin := int(os.Stdin.Fd())
	stdout := int(os.Stdout.Fd())
	if !term.IsTerminal(stdin) || !term.IsTerminal(stdout) {
		return tailFollow(ctx, opts.LogPath)
	}

	rows, cols, err := term.GetSize(stdout)
	if err != nil || rows < 5 || cols < 20 {
		return tailFollow(ctx, opts.LogPath)
	}

	oldState, err := term.MakeRaw(stdin)
	if err != nil {
		return tailFollow(ctx, opts.LogPath)
	}
	defer func() {
		term.Restore(stdin, oldState)
		fmt.Fprint(os.Stdout, "\x1b[?7h")
	}()
	fmt.Fprint(os.Stdout, "\x1b[?7l")

	fmt.Fprint(os.Stdout, "\r\n")
	fmt.Fprintf(os.Stdout, "watching logs for %s - press Ctrl+C or '%c' to detach\r\n", opts.HapName, opts.DetachKey)
	fmt.Fprint(os.Stdout, strings.Repeat("-", minInt(cols, 80))+"\r\n")
	fmt.Fprint(os.Stdout, "\r\n")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			cancel()
		}
	}()

	logErr := make(chan error, 1)
	go func() { logErr <- streamLog(ctx, opts.LogPath, os.Stdout) }()

	keyCh := listenKeys(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-logErr:
			return err
		case key := <-keyCh:
			if key == 3 || key == opts.DetachKey || key == byte(unicode.ToUpper(rune(opts.DetachKey))) {
				fmt.Fprint(os.Stdout, "\r\ndetaching\r\n")
				return nil
			}
		}
	}
}

func listenKeys(ctx context.Context) <-chan byte {
	keyCh := make(chan byte, 16)
	go func() {
		defer close(keyCh)
		buf := make([]byte, 1)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				return
			}
			keyCh <- buf[0]
		}
	}()
	return keyCh
}

// streamLog follows logPath with rotation support via inotify/kqueue.
func streamLog(ctx context.Context, logPath string, out io.Writer) error {
	for i := 0; i < 50; i++ {
		if _, err := os.Stat(logPath); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	t, err := tail.TailFile(logPath, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Poll:      false,
	})
	if err != nil {
		return fmt.Errorf("tail log: %w", err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line := <-t.Lines:
			if line == nil {
				return nil
			}
			if line.Err != nil {
				return line.Err
			}
			fmt.Fprintf(out, "%s\r\n", line.Text)
		}
	}
}

// tailFollow shells out to the host's tail for non-TTY output.
func tailFollow(ctx context.Context, logPath string) error {
	cmd := exec.CommandContext(ctx, "tail", "-F", logPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		cmd = exec.CommandContext(ctx, "tail", "-f", logPath)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
