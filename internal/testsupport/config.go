package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"slateprep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ProjectDir = filepath.Join(base, "project")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.History.Path = filepath.Join(base, "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithHistoryEnabled turns on the run journal for the test config.
func WithHistoryEnabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// WithProjectMarkers creates the resolve-mcp marker files under the test
// project directory so precondition checks pass.
func WithProjectMarkers() ConfigOption {
	return func(b *configBuilder) {
		WriteProjectMarkers(b.t, b.cfg.Paths.ProjectDir)
	}
}

// WriteProjectMarkers lays down setup.py, the src/resolve_mcp package
// directory, and the slate detection module under dir.
func WriteProjectMarkers(t testing.TB, dir string) {
	t.Helper()
	pkgDir := filepath.Join(dir, "src", "resolve_mcp")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatalf("mkdir project package: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "setup.py"), []byte("from setuptools import setup\n"), 0o644); err != nil {
		t.Fatalf("write setup.py: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "slate_detection.py"), []byte("# slate detection\n"), 0o644); err != nil {
		t.Fatalf("write slate_detection.py: %v", err)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
