package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hapless-cli/hapless/internal/supervisor"
)

// withTempDeps points flagDir at a scratch directory for the rest of the
// test, restoring the previous value at cleanup, and returns Deps built
// against it.
func withTempDeps(t *testing.T) *Deps {
	t.Helper()
	origDir := flagDir
	flagDir = t.TempDir()
	t.Cleanup(func() { flagDir = origDir })

	d, err := newDeps()
	if err != nil {
		t.Fatalf("newDeps() error: %v", err)
	}
	return d
}

func TestNewDeps_UsesDirFlagOverride(t *testing.T) {
	d := withTempDeps(t)
	if d.SD.Path() != flagDir {
		t.Errorf("SD.Path() = %q, want %q", d.SD.Path(), flagDir)
	}
}

func TestExePathJoin(t *testing.T) {
	got := exePathJoin("/usr/local/bin/hapless", "hapwrap")
	want := "/usr/local/bin/hapwrap"
	if got != want {
		t.Errorf("exePathJoin() = %q, want %q", got, want)
	}
}

func TestExePathJoin_NoSlash(t *testing.T) {
	got := exePathJoin("hapless", "hapwrap")
	if got != "hapless/hapwrap" {
		t.Errorf("exePathJoin() = %q, want %q", got, "hapless/hapwrap")
	}
}

func TestResolveHap_NoSuchHap(t *testing.T) {
	d := withTempDeps(t)
	if _, err := d.resolveHap("nope"); err == nil {
		t.Fatal("expected an error resolving a nonexistent alias")
	}
}

func TestResolveHap_ByNameAndID(t *testing.T) {
	d := withTempDeps(t)
	h, err := d.Sup.Create("sleep 1", supervisor.CreateOptions{Name: "worker"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	byID, err := d.resolveHap(h.ID)
	if err != nil {
		t.Fatalf("resolveHap(id) error: %v", err)
	}
	if byID.ID != h.ID {
		t.Errorf("resolveHap(id).ID = %q, want %q", byID.ID, h.ID)
	}

	byName, err := d.resolveHap("worker")
	if err != nil {
		t.Fatalf("resolveHap(name) error: %v", err)
	}
	if byName.ID != h.ID {
		t.Errorf("resolveHap(name).ID = %q, want %q", byName.ID, h.ID)
	}
}

func TestAllHaps_ListsEveryCreatedHap(t *testing.T) {
	d := withTempDeps(t)
	if _, err := d.Sup.Create("sleep 1", supervisor.CreateOptions{Name: "one"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := d.Sup.Create("sleep 1", supervisor.CreateOptions{Name: "two"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	haps, err := d.allHaps()
	if err != nil {
		t.Fatalf("allHaps() error: %v", err)
	}
	if len(haps) != 2 {
		t.Fatalf("allHaps() returned %d haps, want 2", len(haps))
	}
}

func TestHapwrapPath_FallsBackToPATH(t *testing.T) {
	// Run from a directory where no hapwrap binary sits beside the test
	// binary, so the fallback branch ("hapwrap" bare) is exercised.
	got, err := hapwrapPath()
	if err != nil {
		t.Fatalf("hapwrapPath() error: %v", err)
	}
	if got == "" {
		t.Fatal("hapwrapPath() returned an empty path")
	}
}

func TestOutputFile_FallsBackToStdout(t *testing.T) {
	d := &Deps{Output: os.Stdout}
	if got := outputFile(d); got != os.Stdout {
		t.Errorf("outputFile() = %v, want os.Stdout", got)
	}
}

func TestOutputFile_NonFileWriterFallsBackToStdout(t *testing.T) {
	var buf nonFileWriter
	d := &Deps{Output: &buf}
	if got := outputFile(d); got != os.Stdout {
		t.Errorf("outputFile() = %v, want os.Stdout", got)
	}
}

type nonFileWriter struct{ b []byte }

func (w *nonFileWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}

func TestStateDirLayout_HapDirUnderRoot(t *testing.T) {
	d := withTempDeps(t)
	h, err := d.Sup.Create("sleep 1", supervisor.CreateOptions{Name: "x"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	want := filepath.Join(flagDir, h.ID)
	if d.SD.HapDir(h.ID) != want {
		t.Errorf("HapDir() = %q, want %q", d.SD.HapDir(h.ID), want)
	}
}
