package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Fatalf("output %q does not mention target path", output)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, section := range []string{"[paths]", "[transcode]", "[logging]"} {
		if !strings.Contains(string(data), section) {
			t.Fatalf("sample config missing section %s", section)
		}
	}
}

func TestConfigInitRefusesExistingFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config")
	}

	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite should succeed: %v", err)
	}
}

func TestConfigShowRendersDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	output, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(output, "defaults shown") {
		t.Fatalf("expected defaults notice, got %q", output)
	}
	if !strings.Contains(output, "encoder = 'auto'") && !strings.Contains(output, `encoder = "auto"`) {
		t.Fatalf("rendered config missing encoder default: %q", output)
	}
}

func TestConvertRejectsInvalidJobs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := runCommand(t, "convert", "--jobs", "99"); err == nil {
		t.Fatal("expected validation error for jobs=99")
	}
}

func TestConvertRejectsUnknownEncoder(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := runCommand(t, "convert", "--encoder", "tpu"); err == nil {
		t.Fatal("expected validation error for unknown encoder")
	}
}
