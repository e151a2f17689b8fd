package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if !filepath.IsAbs(cfg.Paths.LogDir) {
		t.Fatalf("expected absolute log dir, got %q", cfg.Paths.LogDir)
	}
	if !filepath.IsAbs(cfg.Paths.ProjectDir) {
		t.Fatalf("expected project dir to default to working directory, got %q", cfg.Paths.ProjectDir)
	}
}

func TestLoadParsesFile(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := `[paths]
project_dir = "` + filepath.Join(base, "project") + `"
log_dir = "` + filepath.Join(base, "logs") + `"

[python]
interpreter = "python3.11"

[install]
skip_native = true

[history]
enabled = true
path = "` + filepath.Join(base, "history.db") + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Python.Interpreter != "python3.11" {
		t.Fatalf("unexpected interpreter %q", cfg.Python.Interpreter)
	}
	if !cfg.Install.SkipNative {
		t.Fatal("expected skip_native true")
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	cfg, _, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Install.PipTimeoutSeconds != defaultPipTimeoutSeconds {
		t.Fatalf("expected default pip timeout, got %d", cfg.Install.PipTimeoutSeconds)
	}
}

func TestValidateRejectsBadLogFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestValidateRejectsHistoryWithoutPath(t *testing.T) {
	cfg := Default()
	cfg.History.Enabled = true
	cfg.History.Path = " "
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty history path")
	}
	if !strings.Contains(err.Error(), "history.path") {
		t.Fatalf("error should name the config key: %v", err)
	}
}

func TestValidateRejectsNonPositiveTimeouts(t *testing.T) {
	cfg := Default()
	cfg.Install.ProbeTimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero probe timeout")
	}
}

func TestTesseractBinaryDefault(t *testing.T) {
	cfg := Default()
	if got := cfg.TesseractBinary(); got != "tesseract" {
		t.Fatalf("unexpected default tesseract binary %q", got)
	}
	cfg.OCR.TesseractBinary = "/opt/tesseract/bin/tesseract"
	if got := cfg.TesseractBinary(); got != "/opt/tesseract/bin/tesseract" {
		t.Fatalf("override not honored: %q", got)
	}
}

func TestPipArgsIncludesIndexURL(t *testing.T) {
	cfg := Default()
	cfg.Python.PipArgs = []string{"--user"}
	cfg.Python.IndexURL = "https://pypi.example.com/simple"
	args := cfg.PipArgs()
	want := []string{"--user", "--index-url", "https://pypi.example.com/simple"}
	if len(args) != len(want) {
		t.Fatalf("expected %v, got %v", want, args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, args)
		}
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(target); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatal("sample config missing [paths] section")
	}
}
