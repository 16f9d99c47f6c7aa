package launcher

import (
	"os"
	"testing"
	"time"

	"github.com/hapless-cli/hapless/internal/hap"
)

func newTestHap(t *testing.T, cmd string) *hap.Hap {
	t.Helper()
	dir := t.TempDir()
	h := hap.Open("1", dir)
	if err := h.SetName("worker"); err != nil {
		t.Fatal(err)
	}
	if err := h.SetCmd(cmd); err != nil {
		t.Fatal(err)
	}
	if err := h.SetWorkdir(dir); err != nil {
		t.Fatal(err)
	}
	if err := h.TouchStderrSentinel(); err != nil {
		t.Fatal(err)
	}
	return h
}

func TestShell_FallsBackToSh(t *testing.T) {
	if got := Shell(""); got != "/bin/sh" {
		t.Fatalf("Shell(\"\") = %q, want /bin/sh", got)
	}
	if got := Shell("/bin/zsh"); got != "/bin/zsh" {
		t.Fatalf("Shell(custom) = %q, want /bin/zsh", got)
	}
}

func TestRunAndWait_SuccessRecordsZeroRC(t *testing.T) {
	h := newTestHap(t, "exit 0")
	if err := RunAndWait(h, "/bin/sh"); err != nil {
		t.Fatalf("RunAndWait: %v", err)
	}
	rc, ok := h.ReturnCode()
	if !ok || rc != 0 {
		t.Fatalf("ReturnCode() = %d, %v; want 0, true", rc, ok)
	}
	if _, ok := h.PID(); !ok {
		t.Fatalf("expected a pid file to be written")
	}
}

func TestRunAndWait_FailureRecordsNonzeroRC(t *testing.T) {
	h := newTestHap(t, "exit 7")
	if err := RunAndWait(h, "/bin/sh"); err != nil {
		t.Fatalf("RunAndWait: %v", err)
	}
	rc, ok := h.ReturnCode()
	if !ok || rc != 7 {
		t.Fatalf("ReturnCode() = %d, %v; want 7, true", rc, ok)
	}
}

func TestBind_WritesEnvSnapshot(t *testing.T) {
	h := newTestHap(t, "sleep 0.2")
	cmd, err := Bind(h, "/bin/sh")
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer Wait(h, cmd)

	time.Sleep(50 * time.Millisecond)
	env := h.EnvFile()
	if len(env) == 0 {
		t.Fatalf("expected a non-empty env snapshot")
	}
	if _, ok := h.PID(); !ok {
		t.Fatalf("expected pid to be bound")
	}
}

func TestBind_StdoutIsCaptured(t *testing.T) {
	h := newTestHap(t, "echo hello-from-hap")
	if err := RunAndWait(h, "/bin/sh"); err != nil {
		t.Fatalf("RunAndWait: %v", err)
	}
	// Give the background log-close goroutine time to flush/close.
	time.Sleep(250 * time.Millisecond)
	b, err := os.ReadFile(h.StdoutPath())
	if err != nil {
		t.Fatalf("reading stdout log: %v", err)
	}
	if got := string(b); got != "hello-from-hap\n" {
		t.Fatalf("stdout log = %q, want %q", got, "hello-from-hap\n")
	}
}
