package supervisor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hapless-cli/hapless/internal/exitcodes"
	"github.com/hapless-cli/hapless/internal/hap"
	"github.com/hapless-cli/hapless/internal/statedir"
)

// fakeHapwrap writes a stand-in for the hapwrap binary that exits
// immediately without binding anything, so non-blocking Run() calls in
// these tests exercise SpawnDetached without needing a real build.
func fakeHapwrap(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hapwrap")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestSupervisor(t *testing.T) *Supervisor {
	t.Helper()
	sd, err := statedir.Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(sd, "/bin/sh", fakeHapwrap(t))
}

func TestCreate_EmptyCommandRejected(t *testing.T) {
	s := newTestSupervisor(t)
	_, err := s.Create("", CreateOptions{})
	var ec *exitcodes.ErrorWithCode
	if !errors.As(err, &ec) || ec.Code != exitcodes.GeneralError {
		t.Fatalf("Create(\"\") err = %v, want EmptyCommand", err)
	}
}

func TestCreate_DefaultsNameToID(t *testing.T) {
	s := newTestSupervisor(t)
	h, err := s.Create("true", CreateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if h.Name() != h.ID {
		t.Fatalf("Name() = %q, want %q (the id)", h.Name(), h.ID)
	}
}

func TestCreate_NameCollisionRejected(t *testing.T) {
	s := newTestSupervisor(t)
	if _, err := s.Create("true", CreateOptions{Name: "foo"}); err != nil {
		t.Fatal(err)
	}
	_, err := s.Create("true", CreateOptions{Name: "foo"})
	var ec *exitcodes.ErrorWithCode
	if !errors.As(err, &ec) {
		t.Fatalf("expected a collision error, got %v", err)
	}
}

func TestCreate_InvalidWorkdirRejected(t *testing.T) {
	s := newTestSupervisor(t)
	_, err := s.Create("true", CreateOptions{Workdir: "/does/not/exist"})
	if err == nil {
		t.Fatalf("expected InvalidWorkdir error")
	}
}

func TestRun_BlockingRecordsOutcome(t *testing.T) {
	s := newTestSupervisor(t)
	h, err := s.Create("exit 0", CreateOptions{Name: "ok"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(h, RunOptions{Blocking: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := h.Status(); got != hap.Success {
		t.Fatalf("Status() = %s, want SUCCESS", got)
	}
}

func TestRun_BlockingWithCheckReportsFastFailure(t *testing.T) {
	s := newTestSupervisor(t)
	h, err := s.Create("exit 1", CreateOptions{Name: "bad"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Run(h, RunOptions{Blocking: true, Check: true, Timeout: time.Second})
	var ec *exitcodes.ErrorWithCode
	if !errors.As(err, &ec) {
		t.Fatalf("expected a FastFailure error, got %v", err)
	}
}

func TestPauseResume_RequireMatchingStatus(t *testing.T) {
	s := newTestSupervisor(t)
	h, err := s.Create("sleep 5", CreateOptions{Name: "idle"})
	if err != nil {
		t.Fatal(err)
	}
	// Never bound: both should fail their precondition.
	if err := s.Pause(h); err == nil {
		t.Fatalf("Pause on unbound hap should fail")
	}
	if err := s.Resume(h); err == nil {
		t.Fatalf("Resume on unbound hap should fail")
	}
}

func TestRename_PreservesRestarts(t *testing.T) {
	s := newTestSupervisor(t)
	h, err := s.Create("true", CreateOptions{Name: "svc"})
	if err != nil {
		t.Fatal(err)
	}
	if err := h.SetName("svc@2"); err != nil {
		t.Fatal(err)
	}
	if err := s.Rename(h, "worker"); err != nil {
		t.Fatal(err)
	}
	if got := h.RawName(); got != "worker@2" {
		t.Fatalf("RawName() = %q, want worker@2", got)
	}
	if _, _, ok := s.SD.Lookup("svc"); ok {
		t.Fatalf("old base name should no longer resolve")
	}
}

func TestRename_CollisionRejected(t *testing.T) {
	s := newTestSupervisor(t)
	if _, err := s.Create("true", CreateOptions{Name: "a"}); err != nil {
		t.Fatal(err)
	}
	b, err := s.Create("true", CreateOptions{Name: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Rename(b, "a"); err == nil {
		t.Fatalf("expected a name collision error")
	}
}

func TestClean_OnlyRemovesSuccessAndOptionallyFailed(t *testing.T) {
	s := newTestSupervisor(t)
	success, _ := s.Create("exit 0", CreateOptions{Name: "ok"})
	failed, _ := s.Create("exit 1", CreateOptions{Name: "bad"})
	unbound, _ := s.Create("true", CreateOptions{Name: "fresh"})

	if _, err := s.Run(success, RunOptions{Blocking: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(failed, RunOptions{Blocking: true}); err != nil {
		var ec *exitcodes.ErrorWithCode
		if !errors.As(err, &ec) {
			t.Fatal(err)
		}
	}

	removed, err := s.Clean(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || removed[0].ID != success.ID {
		t.Fatalf("Clean(false) removed %v, want only the SUCCESS hap", removed)
	}
	if _, err := os.Stat(unbound.Path); err != nil {
		t.Fatalf("UNBOUND hap should survive clean: %v", err)
	}
	if _, err := os.Stat(failed.Path); err != nil {
		t.Fatalf("FAILED hap should survive clean(false): %v", err)
	}

	removed, err = s.Clean(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || removed[0].ID != failed.ID {
		t.Fatalf("Clean(true) removed %v, want only the FAILED hap", removed)
	}
}

func TestLogs_NoFollowDumpsWholeFile(t *testing.T) {
	s := newTestSupervisor(t)
	h, err := s.Create("echo hello", CreateOptions{Name: "echoer"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(h, RunOptions{Blocking: true}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(250 * time.Millisecond)

	var buf bytes.Buffer
	if err := s.Logs(h, Stdout, false, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello\n" {
		t.Fatalf("Logs output = %q, want %q", buf.String(), "hello\n")
	}
}

func TestRestart_PreservesIdentityAndWorkdir(t *testing.T) {
	s := newTestSupervisor(t)
	dir := t.TempDir()
	h, err := s.Create("exit 0", CreateOptions{Name: "svc", Workdir: dir})
	if err != nil {
		t.Fatal(err)
	}
	oldID := h.ID
	if _, err := s.Run(h, RunOptions{Blocking: true}); err != nil {
		t.Fatal(err)
	}

	next, err := s.Restart(h)
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != oldID {
		t.Fatalf("Restart changed id: %s -> %s", oldID, next.ID)
	}
	if next.Name() != "svc" {
		t.Fatalf("Restart changed base name: %s", next.Name())
	}
	if next.Restarts() != 1 {
		t.Fatalf("Restarts() = %d, want 1", next.Restarts())
	}
	if next.Workdir() != dir {
		t.Fatalf("Workdir() = %q, want %q", next.Workdir(), dir)
	}
}
