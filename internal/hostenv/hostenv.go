package hostenv

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// Identity describes the host operating system.
type Identity struct {
	// GOOS is the Go runtime OS name ("linux", "darwin", "windows", ...).
	GOOS string
	// DistroID is the /etc/os-release ID value on Linux ("ubuntu",
	// "fedora", ...). Empty elsewhere.
	DistroID string
	// DistroLike lists the /etc/os-release ID_LIKE values ("debian",
	// "rhel fedora", ...) split on whitespace.
	DistroLike []string
}

// String renders the identity for log and report output.
func (id Identity) String() string {
	if id.DistroID == "" {
		return id.GOOS
	}
	return id.GOOS + "/" + id.DistroID
}

// Host exposes the ambient environment reads and subprocess execution the
// bootstrap checker performs.
type Host interface {
	// LookPath resolves an executable name against PATH.
	LookPath(name string) (string, error)
	// Stat probes a filesystem path.
	Stat(path string) (fs.FileInfo, error)
	// Access reports whether the current user can read, write, and
	// traverse the directory at path.
	Access(path string) error
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// OS reports the host operating system identity.
	OS() Identity
}

type systemHost struct {
	once     sync.Once
	identity Identity
}

// System returns the real host environment.
func System() Host {
	return &systemHost{}
}

func (h *systemHost) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (h *systemHost) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (h *systemHost) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

func (h *systemHost) OS() Identity {
	h.once.Do(func() {
		h.identity = Identity{GOOS: runtime.GOOS}
		if runtime.GOOS != "linux" {
			return
		}
		data, err := os.ReadFile(osReleasePath)
		if err != nil {
			return
		}
		id, like := parseOSRelease(string(data))
		h.identity.DistroID = id
		h.identity.DistroLike = like
	})
	return h.identity
}

const osReleasePath = "/etc/os-release"

// parseOSRelease extracts ID and ID_LIKE from os-release content.
func parseOSRelease(content string) (id string, like []string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		switch key {
		case "ID":
			id = strings.ToLower(value)
		case "ID_LIKE":
			for _, token := range strings.Fields(strings.ToLower(value)) {
				like = append(like, token)
			}
		}
	}
	return id, like
}
