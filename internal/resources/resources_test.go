package resources

import (
	"os"
	"os/exec"
	"testing"
)

func TestFor_InvalidPIDReturnsZeroUsage(t *testing.T) {
	u, err := For(0)
	if err != nil {
		t.Fatalf("For(0) error = %v", err)
	}
	if u != (Usage{}) {
		t.Fatalf("For(0) = %+v, want zero Usage", u)
	}
}

func TestFor_NonexistentPIDReturnsZeroUsage(t *testing.T) {
	// A pid far beyond any realistic process table entry.
	u, err := For(1 << 30)
	if err != nil {
		t.Fatalf("For(huge pid) error = %v", err)
	}
	if u.CPUPercent != 0 || u.RSSBytes != 0 {
		t.Fatalf("For(huge pid) = %+v, want zero Usage", u)
	}
}

func TestFor_LiveProcessReportsRSS(t *testing.T) {
	cmd := exec.Command("sleep", "2")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	u, err := For(cmd.Process.Pid)
	if err != nil {
		t.Fatalf("For(live pid) error = %v", err)
	}
	if u.RSSBytes == 0 {
		t.Fatalf("For(live pid) RSSBytes = 0, want nonzero")
	}
}

func TestForAll_SkipsNothingButReturnsPartial(t *testing.T) {
	out := ForAll([]int{0, os.Getpid()})
	if _, ok := out[os.Getpid()]; !ok {
		t.Fatalf("ForAll should include the current process's pid")
	}
}
