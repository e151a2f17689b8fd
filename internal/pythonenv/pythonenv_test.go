package pythonenv

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"slateprep/internal/hostenv"
	"slateprep/internal/manifest"
	"slateprep/internal/testsupport"
)

func TestDiscoverPreferenceOrder(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	host.WithExecutable("python3").WithExecutable("python")
	host.WithCommand("/fake/bin/python3 --version", "Python 3.11.2\n", nil)

	interp, err := Discover(context.Background(), host, "", 0)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if interp.Command != "python3" {
		t.Fatalf("expected python3 preferred, got %s", interp.Command)
	}
	if interp.Version != "Python 3.11.2" {
		t.Fatalf("unexpected version %q", interp.Version)
	}
}

func TestDiscoverFallsBackWhenProbeFails(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	host.WithExecutable("python3").WithExecutable("python")
	host.WithCommand("/fake/bin/python3 --version", "", errors.New("exit status 127"))
	host.WithCommand("/fake/bin/python --version", "Python 3.10.6", nil)

	interp, err := Discover(context.Background(), host, "", 0)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if interp.Command != "python" {
		t.Fatalf("expected fallback to python, got %s", interp.Command)
	}
}

// unresponsiveHost hangs any command matching stallOn until its context
// expires.
type unresponsiveHost struct {
	*testsupport.FakeHost
	stallOn string
}

func (h *unresponsiveHost) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if strings.Contains(name, h.stallOn) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return h.FakeHost.Run(ctx, name, args...)
}

func TestDiscoverHungCandidateDoesNotStarveRest(t *testing.T) {
	fake := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	fake.WithExecutable("python3").WithExecutable("python")
	fake.WithCommand("/fake/bin/python --version", "Python 3.10.6", nil)
	host := &unresponsiveHost{FakeHost: fake, stallOn: "python3"}

	interp, err := Discover(context.Background(), host, "", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if interp.Command != "python" {
		t.Fatalf("expected fallback past the hung candidate, got %s", interp.Command)
	}
}

func TestDiscoverNoneFound(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})

	_, err := Discover(context.Background(), host, "", 0)
	if !errors.Is(err, ErrNoInterpreter) {
		t.Fatalf("expected ErrNoInterpreter, got %v", err)
	}
	if !strings.Contains(err.Error(), "python3, python, py") {
		t.Fatalf("error should list the probe order: %v", err)
	}
}

func TestDiscoverOverrideOnly(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	host.WithExecutable("python3")
	host.WithCommand("/fake/bin/python3 --version", "Python 3.11.2", nil)

	_, err := Discover(context.Background(), host, "python3.12", 0)
	if !errors.Is(err, ErrNoInterpreter) {
		t.Fatalf("override must not fall back to discovery: %v", err)
	}
	if len(host.RunCalls()) != 0 {
		t.Fatalf("no probes expected for unresolvable override, got %v", host.RunCalls())
	}
}

func TestInstallRecordsFailureWithoutReturning(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	interp := Interpreter{Command: "python3", Path: "/fake/bin/python3"}
	specs := strings.Join(manifest.PipSpecs(manifest.ByGroup(manifest.GroupCore)), " ")
	host.WithCommand("/fake/bin/python3 -m pip install "+specs, "error: no network", errors.New("exit status 1"))

	result := NewRunner(host, interp, nil).Install(context.Background(), manifest.GroupCore)
	if !result.Failed() {
		t.Fatal("expected failed install result")
	}
	if result.Output != "error: no network" {
		t.Fatalf("unexpected output %q", result.Output)
	}
}

func TestInstallAppendsPipArgs(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	interp := Interpreter{Command: "python3", Path: "/fake/bin/python3"}

	NewRunner(host, interp, []string{"--user"}).Install(context.Background(), manifest.GroupSlate)

	calls := host.RunCalls()
	if len(calls) != 1 {
		t.Fatalf("expected a single pip invocation, got %v", calls)
	}
	if !strings.HasSuffix(calls[0], "--user") {
		t.Fatalf("pip args not appended: %q", calls[0])
	}
	if !strings.Contains(calls[0], "opencv-python>=4.8.0") {
		t.Fatalf("missing version constraint: %q", calls[0])
	}
}

func TestVerifyImportsIsolatesFailures(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	interp := Interpreter{Command: "python3", Path: "/fake/bin/python3"}
	host.WithCommand(
		"/fake/bin/python3 -c import cv2",
		"Traceback (most recent call last):\nModuleNotFoundError: No module named 'cv2'\n",
		errors.New("exit status 1"),
	)

	requirements := manifest.Declared()
	results := NewRunner(host, interp, nil).VerifyImports(context.Background(), requirements, 0)
	if len(results) != len(requirements) {
		t.Fatalf("expected %d results, got %d", len(requirements), len(results))
	}

	var failed int
	for _, res := range results {
		if res.Available {
			continue
		}
		failed++
		if res.Requirement.Module != "cv2" {
			t.Fatalf("unexpected failing module %s", res.Requirement.Module)
		}
		if !strings.Contains(res.Detail, "ModuleNotFoundError") {
			t.Fatalf("detail should carry the exception line, got %q", res.Detail)
		}
	}
	if failed != 1 {
		t.Fatalf("expected exactly one failure, got %d", failed)
	}
}

func TestVerifyImportsIdempotent(t *testing.T) {
	host := testsupport.NewFakeHost(hostenv.Identity{GOOS: "linux"})
	interp := Interpreter{Command: "python3", Path: "/fake/bin/python3"}
	runner := NewRunner(host, interp, nil)
	requirements := manifest.Declared()

	first := runner.VerifyImports(context.Background(), requirements, 0)
	second := runner.VerifyImports(context.Background(), requirements, 0)
	if len(first) != len(second) {
		t.Fatalf("result counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("result %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
