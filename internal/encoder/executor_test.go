package encoder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunSuccess(t *testing.T) {
	script := writeScript(t, "ffmpeg", "echo encoding\nexit 0\n")
	result, err := Run(context.Background(), script, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got exit %d", result.ExitCode)
	}
	if result.Output != "encoding" {
		t.Fatalf("unexpected output: %q", result.Output)
	}
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	script := writeScript(t, "ffmpeg", "echo broken >&2\nexit 3\n")
	result, err := Run(context.Background(), script, nil)
	if err != nil {
		t.Fatalf("non-zero exit must not return an error: %v", err)
	}
	if result.ExitCode != 3 {
		t.Fatalf("expected exit 3, got %d", result.ExitCode)
	}
	if result.Output != "broken" {
		t.Fatalf("expected captured stderr, got %q", result.Output)
	}
}

func TestRunMissingBinary(t *testing.T) {
	_, err := Run(context.Background(), filepath.Join(t.TempDir(), "absent"), nil)
	if err == nil {
		t.Fatal("expected start error for missing binary")
	}
}
