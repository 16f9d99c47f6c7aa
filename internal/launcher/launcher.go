// Package launcher implements the detached-spawn protocol that binds a
// hap's command to a running process. Go cannot safely fork() a
// multi-threaded runtime, so binding always goes through exec plus a
// new session: a dedicated wrapper binary (cmd/hapwrap) is spawned as
// the session leader and does the actual bind-wait-record work, while
// the CLI process that invoked "run" returns immediately. The
// bind/wait/record steps themselves are implemented once, here, and
// reused by both hapwrap's main() and the Supervisor's blocking inline
// path used by tests.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/hapless-cli/hapless/internal/hap"
)

// Shell returns the shell binary to interpret a hap's command: the
// user's login shell if set, else a POSIX-compatible fallback.
func Shell(envShell string) string {
	if envShell != "" {
		return envShell
	}
	return "/bin/sh"
}

// Bind starts h's command under shell as a detached child: new session,
// stdout/stderr redirected to the hap's log files, PID written and
// verified live, environment persisted. It does not wait for
// termination — callers call Wait (or let the OS reap it independently
// for the spawn-based launcher, which exits after Wait itself).
//
// The PID is written BEFORE the liveness check: an observer must see
// pid_file exist even if the process happened to die in the narrow
// window between start and check.
func Bind(h *hap.Hap, shell string) (*exec.Cmd, error) {
	stdout, err := os.OpenFile(h.StdoutPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open stdout log: %w", err)
	}

	redirect := h.RedirectStderr()
	var stderr *os.File
	if redirect {
		stderr = stdout
	} else {
		stderr, err = os.OpenFile(h.StderrPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			_ = stdout.Close()
			return nil, fmt.Errorf("open stderr log: %w", err)
		}
	}

	cmd := exec.Command(shell, "-c", h.Cmd())
	cmd.Dir = h.Workdir()
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = os.Environ()
	// New session: detaches from the invoker's controlling terminal so the
	// child survives the invoker's exit.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	closeLogs := func() {
		_ = stdout.Close()
		if !redirect {
			_ = stderr.Close()
		}
	}

	if err := cmd.Start(); err != nil {
		closeLogs()
		return nil, fmt.Errorf("start command: %w", err)
	}

	pid := cmd.Process.Pid
	if err := h.SetPID(pid); err != nil {
		_ = cmd.Process.Kill()
		closeLogs()
		return nil, fmt.Errorf("write pid file: %w", err)
	}
	if !processAlive(pid) {
		closeLogs()
		return nil, fmt.Errorf("process %d vanished immediately after start", pid)
	}

	env := map[string]string{}
	for _, kv := range cmd.Env {
		if k, v, ok := cutEnv(kv); ok {
			env[k] = v
		}
	}
	_ = h.SetEnv(env)

	// Close our handles to the log files once the child has its own dup'd
	// descriptors; the child keeps writing through its own fds.
	go func() {
		time.Sleep(200 * time.Millisecond)
		closeLogs()
	}()

	return cmd, nil
}

// Wait blocks for cmd's termination and records h's return code,
// translating signal termination into a negative code.
func Wait(h *hap.Hap, cmd *exec.Cmd) error {
	err := cmd.Wait()
	rc := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				rc = -int(status.Signal())
			} else {
				rc = exitErr.ExitCode()
			}
		} else {
			rc = -1
		}
	}
	return h.SetReturnCode(rc)
}

// RunAndWait binds and waits inline, in the calling goroutine. Used by
// hapwrap's main() (running as the detached session leader) and by the
// Supervisor's blocking test path; never by the interactive CLI process
// itself, which must return before the child terminates.
func RunAndWait(h *hap.Hap, shell string) error {
	cmd, err := Bind(h, shell)
	if err != nil {
		return err
	}
	return Wait(h, cmd)
}

// SpawnDetached launches hapwrapPath as a new session leader bound to
// statedirPath/hapID, with stdio pointed at /dev/null, and returns
// immediately without waiting. This is the non-blocking path used by
// the interactive CLI: hapwrap itself performs the bind/wait/record
// work after this process has already returned to its caller.
func SpawnDetached(hapwrapPath, statedirPath, hapID string) error {
	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devnull.Close()

	cmd := exec.Command(hapwrapPath, statedirPath, hapID)
	cmd.Stdin = devnull
	cmd.Stdout = devnull
	cmd.Stderr = devnull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start hapwrap: %w", err)
	}
	// Detach: we don't wait for hapwrap, and releasing our handle lets this
	// process exit without leaving a zombie behind. hapwrap is a session
	// leader and reaps its own child via cmd.Wait() internally.
	return cmd.Process.Release()
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	return syscall.Kill(pid, 0) == nil
}

func cutEnv(kv string) (key, value string, ok bool) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:], true
		}
	}
	return "", "", false
}
