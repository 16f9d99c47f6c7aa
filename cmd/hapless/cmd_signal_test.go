package main

import "testing"

func TestSignalCmd_RejectsNonNumericCode(t *testing.T) {
	cmd := newSignalCmd()
	if err := cmd.RunE(cmd, []string{"foo", "not-a-number"}); err == nil {
		t.Fatal("expected an error for a non-numeric signal code")
	}
}

func TestSignalCmd_RejectsOutOfRangeCode(t *testing.T) {
	cmd := newSignalCmd()
	if err := cmd.RunE(cmd, []string{"foo", "0"}); err == nil {
		t.Fatal("expected an error for signal code 0")
	}
	if err := cmd.RunE(cmd, []string{"foo", "65"}); err == nil {
		t.Fatal("expected an error for signal code 65")
	}
}

func TestSignalCmd_UnknownAliasReturnsErrorForValidCode(t *testing.T) {
	origDir := flagDir
	flagDir = t.TempDir()
	t.Cleanup(func() { flagDir = origDir })

	cmd := newSignalCmd()
	if err := cmd.RunE(cmd, []string{"nope", "9"}); err == nil {
		t.Fatal("expected an error resolving a nonexistent alias")
	}
}
