package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("checking interpreter", String("command", "python3"))

	line := buf.String()
	if !strings.Contains(line, "INF checking interpreter") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "command=python3") {
		t.Fatalf("missing attr in console line: %q", line)
	}
}

func TestNewConsoleQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Warn("install failed", String("detail", "exit status 1"))
	if !strings.Contains(buf.String(), `detail="exit status 1"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Debug("probe", Bool("available", true))

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json log line: %v", err)
	}
	if decoded["msg"] != "probe" {
		t.Fatalf("unexpected msg field: %v", decoded["msg"])
	}
	if decoded["available"] != true {
		t.Fatalf("unexpected available field: %v", decoded["available"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("ignored", Error(nil))
}
