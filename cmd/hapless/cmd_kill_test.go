package main

import (
	"testing"

	"github.com/hapless-cli/hapless/internal/supervisor"
)

func TestKillCmd_RejectsNeitherAliasNorAll(t *testing.T) {
	cmd := newKillCmd()
	if err := cmd.RunE(cmd, nil); err == nil {
		t.Fatal("expected a usage error when neither a hap nor -a is given")
	}
}

func TestKillCmd_RejectsBothAliasAndAll(t *testing.T) {
	cmd := newKillCmd()
	if err := cmd.Flags().Set("all", "true"); err != nil {
		t.Fatalf("Set(all) error: %v", err)
	}
	if err := cmd.RunE(cmd, []string{"foo"}); err == nil {
		t.Fatal("expected a usage error when both a hap and -a are given")
	}
}

func TestKillCmd_AllIsNoOpForUnboundHap(t *testing.T) {
	origDir := flagDir
	flagDir = t.TempDir()
	t.Cleanup(func() { flagDir = origDir })

	d, err := newDeps()
	if err != nil {
		t.Fatalf("newDeps() error: %v", err)
	}
	if _, err := d.Sup.Create("sleep 1", supervisor.CreateOptions{Name: "a"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	cmd := newKillCmd()
	if err := cmd.Flags().Set("all", "true"); err != nil {
		t.Fatalf("Set(all) error: %v", err)
	}
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("kill -a on an unbound hap should be a no-op, got error: %v", err)
	}
}

func TestKillCmd_UnknownAliasReturnsError(t *testing.T) {
	origDir := flagDir
	flagDir = t.TempDir()
	t.Cleanup(func() { flagDir = origDir })

	cmd := newKillCmd()
	if err := cmd.RunE(cmd, []string{"nope"}); err == nil {
		t.Fatal("expected an error resolving a nonexistent alias")
	}
}
