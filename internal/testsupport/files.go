package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// StubBinaries writes stub executables for the provided names and prepends
// their directory to PATH for the duration of the test.
func StubBinaries(t testing.TB, names ...string) string {
	t.Helper()
	binDir := filepath.Join(t.TempDir(), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	for _, name := range names {
		// Version probes read the first output line, so every stub
		// reports one.
		script := []byte("#!/bin/sh\necho \"" + name + " 0.0-stub\"\nexit 0\n")
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
	return binDir
}
