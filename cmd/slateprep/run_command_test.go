package main

import (
	"encoding/json"
	"os"
	"testing"

	"slateprep/internal/bootstrap"
)

func TestRunCommandHealthyEnvironment(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Python interpreter")
	requireContains(t, out, "Install core dependencies")
	requireContains(t, out, "Install slate dependencies")
	requireContains(t, out, "== Summary ==")
	requireContains(t, out, "-m resolve_mcp.server")
}

func TestRunCommandJSONReport(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("run --json: %v", err)
	}

	var report bootstrap.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("parse report JSON: %v\noutput: %s", err, out)
	}
	if report.Interpreter.Command != "python3" {
		t.Fatalf("expected python3 interpreter, got %q", report.Interpreter.Command)
	}
	if counts := report.Counts(); counts.Missing != 0 || counts.Failed != 0 {
		t.Fatalf("expected clean run, got counts %+v", counts)
	}
}

func TestRunCommandRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"run"}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "python3")
}

func TestRunCommandHistoryDisabledWritesNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.History.Enabled = false
	writeTestConfig(t, env.configPath, env.cfg)

	if _, _, err := runCLI(t, []string{"run"}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(env.cfg.History.Path); !os.IsNotExist(err) {
		t.Fatalf("expected no history database, stat err=%v", err)
	}
}

func TestRunCommandWrongDirectoryFails(t *testing.T) {
	env := setupCLITestEnv(t)

	// Rewrite the config to point at an empty project directory.
	env.cfg.Paths.ProjectDir = t.TempDir()
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err == nil {
		t.Fatal("expected run to fail outside a resolve-mcp checkout")
	}
	requireContains(t, err.Error(), "markers not found")
}
