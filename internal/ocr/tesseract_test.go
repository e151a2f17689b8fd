package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"slateprep/internal/hostenv"
	"slateprep/internal/testsupport"
)

func TestProbeReportsVersion(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	host.WithExecutable("tesseract")
	host.WithCommand("/fake/bin/tesseract --version", "tesseract 5.3.0\n leptonica-1.83.1\n", nil)

	status := Probe(context.Background(), host, "")
	if !status.Available {
		t.Fatalf("expected available, got %+v", status)
	}
	if status.Version != "tesseract 5.3.0" {
		t.Fatalf("unexpected version %q", status.Version)
	}
	if status.Path != "/fake/bin/tesseract" {
		t.Fatalf("unexpected path %q", status.Path)
	}
}

func TestProbeMissingBinary(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})

	status := Probe(context.Background(), host, "")
	if status.Available {
		t.Fatal("expected unavailable")
	}
	if len(status.Guidance) == 0 {
		t.Fatal("expected remediation guidance")
	}
	if len(host.RunCalls()) != 0 {
		t.Fatalf("no commands expected when binary missing, got %v", host.RunCalls())
	}
}

func TestProbeVersionQueryFailure(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	host.WithExecutable("tesseract")
	host.WithCommand("/fake/bin/tesseract --version", "cannot open shared library", errors.New("exit status 127"))

	status := Probe(context.Background(), host, "tesseract")
	if !status.Available {
		t.Fatal("binary on PATH should still count as available")
	}
	if !strings.Contains(status.Detail, "shared library") {
		t.Fatalf("detail should carry command output, got %q", status.Detail)
	}
}

func TestProbeHonorsOverride(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	host.WithExecutable("tesseract-custom")
	host.WithCommand("/fake/bin/tesseract-custom --version", "tesseract 5.4.1", nil)

	status := Probe(context.Background(), host, "tesseract-custom")
	if !status.Available || status.Version != "tesseract 5.4.1" {
		t.Fatalf("override not honored: %+v", status)
	}
}
