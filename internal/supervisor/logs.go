package supervisor

import (
	"io"
	"os"
	"os/exec"

	"github.com/hapless-cli/hapless/internal/hap"
)

// Stream selects which log file Logs reads.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func logPath(h *hap.Hap, stream Stream) string {
	if stream == Stderr {
		return h.StderrPath()
	}
	return h.StdoutPath()
}

// Logs writes h's chosen log stream to w. Without follow it dumps the
// whole file once; with follow it shells out to the host's tail,
// blocking until the command exits (terminal close, signal, or w's
// underlying process terminating).
func (s *Supervisor) Logs(h *hap.Hap, stream Stream, follow bool, w io.Writer) error {
	path := logPath(h, stream)

	if !follow {
		b, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		_, err = w.Write(b)
		return err
	}

	cmd := followCommand(path)
	cmd.Stdout = w
	cmd.Stderr = w
	return cmd.Run()
}

// followCommand prefers "tail -F" (follows across log rotation/recreate)
// and falls back to "tail -f" on hosts whose tail doesn't support -F.
func followCommand(path string) *exec.Cmd {
	if _, err := exec.LookPath("tail"); err != nil {
		// No tail on this host; best-effort "never follow" no-op.
		return exec.Command("true")
	}
	if hasDashCapF() {
		return exec.Command("tail", "-F", path)
	}
	return exec.Command("tail", "-f", path)
}

var hasDashCapF = func() bool {
	// BSD tail (macOS) and GNU tail both generally accept -F; this hook
	// exists so tests can force the fallback branch without depending on
	// the host's actual tail flavor.
	return true
}
