// Package testsupport provides shared test scaffolding: a scriptable fake
// host environment, temp-dir configs, and stub project trees.
package testsupport

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"slateprep/internal/hostenv"
)

// CommandResult scripts the outcome of one subprocess invocation on a
// FakeHost.
type CommandResult struct {
	Output string
	Err    error
}

// FakeHost is a scriptable hostenv.Host. Zero value: nothing on PATH, no
// files, zero-value OS identity.
type FakeHost struct {
	mu sync.Mutex

	// Executables maps names resolvable via LookPath to their paths.
	Executables map[string]string
	// Dirs maps existing paths to whether they are directories.
	Dirs map[string]bool
	// Commands maps "name arg1 arg2" to scripted results. Unscripted
	// commands succeed with empty output.
	Commands map[string]CommandResult
	// AccessErrors scripts Access failures per path. Absent paths are
	// accessible.
	AccessErrors map[string]error
	Identity     hostenv.Identity

	// Calls records every Run invocation in order.
	Calls []string
}

var _ hostenv.Host = (*FakeHost)(nil)

// NewFakeHost returns an empty fake host for the given OS identity.
func NewFakeHost(id hostenv.Identity) *FakeHost {
	return &FakeHost{
		Executables:  map[string]string{},
		Dirs:         map[string]bool{},
		Commands:     map[string]CommandResult{},
		AccessErrors: map[string]error{},
		Identity:     id,
	}
}

// WithExecutable registers an executable name, resolving to a fake path.
func (h *FakeHost) WithExecutable(name string) *FakeHost {
	h.Executables[name] = "/fake/bin/" + name
	return h
}

// WithFile registers a path that Stat reports as a regular file.
func (h *FakeHost) WithFile(path string) *FakeHost {
	h.Dirs[path] = false
	return h
}

// WithDir registers a path that Stat reports as a directory.
func (h *FakeHost) WithDir(path string) *FakeHost {
	h.Dirs[path] = true
	return h
}

// WithAccessError scripts an Access failure for the given path.
func (h *FakeHost) WithAccessError(path string, err error) *FakeHost {
	h.AccessErrors[path] = err
	return h
}

// WithCommand scripts the result of running the given command line.
func (h *FakeHost) WithCommand(commandLine, output string, err error) *FakeHost {
	h.Commands[commandLine] = CommandResult{Output: output, Err: err}
	return h
}

func (h *FakeHost) LookPath(name string) (string, error) {
	if path, ok := h.Executables[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

func (h *FakeHost) Stat(path string) (fs.FileInfo, error) {
	isDir, ok := h.Dirs[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return fakeFileInfo{name: path, dir: isDir}, nil
}

func (h *FakeHost) Access(path string) error {
	return h.AccessErrors[path]
}

func (h *FakeHost) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	h.mu.Lock()
	h.Calls = append(h.Calls, line)
	h.mu.Unlock()
	if result, ok := h.Commands[line]; ok {
		return []byte(result.Output), result.Err
	}
	return nil, nil
}

func (h *FakeHost) OS() hostenv.Identity {
	return h.Identity
}

// RunCalls returns a copy of the recorded Run invocations.
func (h *FakeHost) RunCalls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.Calls...)
}

type fakeFileInfo struct {
	name string
	dir  bool
}

func (f fakeFileInfo) Name() string { return f.name }
func (f fakeFileInfo) Size() int64  { return 0 }
func (f fakeFileInfo) Mode() fs.FileMode {
	if f.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.dir }
func (f fakeFileInfo) Sys() any           { return nil }
