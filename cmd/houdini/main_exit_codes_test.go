package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func buildHoudiniBinary(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	// wd is .../cmd/houdini
	root := filepath.Dir(filepath.Dir(wd))
	bin := filepath.Join(t.TempDir(), "houdini")
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/houdini")
	cmd.Dir = root
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build: %v\n%s", err, string(out))
	}
	return bin
}

func writeMinimalConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	contents := "version: 1\nsolver:\n  command: z3\n  args: [\"-in\"]\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestMain_NoArgsExitsNonZero(t *testing.T) {
	bin := buildHoudiniBinary(t)
	cmd := exec.Command(bin)
	if err := cmd.Run(); err == nil {
		t.Fatal("expected a non-zero exit with no arguments")
	}
}

func TestMain_Version(t *testing.T) {
	bin := buildHoudiniBinary(t)
	out, err := exec.Command(bin, "--version").CombinedOutput()
	if err != nil {
		t.Fatalf("--version: %v\n%s", err, out)
	}
}

func TestMain_ValidateSucceedsOnWellFormedConfig(t *testing.T) {
	bin := buildHoudiniBinary(t)
	cfg := writeMinimalConfig(t)
	out, err := exec.Command(bin, "validate", "--config", cfg).CombinedOutput()
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
}

func TestMain_ValidateFailsOnMissingCommand(t *testing.T) {
	bin := buildHoudiniBinary(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nsolver:\n  command: \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cmd := exec.Command(bin, "validate", "--config", path)
	if err := cmd.Run(); err == nil {
		t.Fatal("expected validate to fail on an empty solver.command")
	}
}

func TestMain_RunEndToEndWithDemoFixture(t *testing.T) {
	bin := buildHoudiniBinary(t)
	cfg := writeMinimalConfig(t)
	out, err := exec.Command(bin, "run", "--config", cfg).CombinedOutput()
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
}
