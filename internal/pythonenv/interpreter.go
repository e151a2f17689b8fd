package pythonenv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slateprep/internal/hostenv"
)

// interpreterOrder is the fixed preference order for interpreter discovery.
var interpreterOrder = []string{"python3", "python", "py"}

// ErrNoInterpreter reports that no acceptable Python interpreter exists on
// PATH.
var ErrNoInterpreter = errors.New("no python interpreter found")

// Interpreter describes a discovered Python interpreter.
type Interpreter struct {
	// Command is the name the interpreter was discovered under.
	Command string `json:"command"`
	// Path is the resolved executable path.
	Path string `json:"path"`
	// Version is the reported version string ("Python 3.11.2").
	Version string `json:"version"`
}

// Discover probes for a Python interpreter. When override is non-empty only
// that command is considered; otherwise candidates are probed in fixed
// preference order. A candidate must resolve on PATH and answer --version.
// Each version probe runs under its own perProbe timeout (no bound when
// zero) so one hung candidate cannot starve the rest.
func Discover(ctx context.Context, host hostenv.Host, override string, perProbe time.Duration) (Interpreter, error) {
	candidates := interpreterOrder
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		candidates = []string{trimmed}
	}

	for _, candidate := range candidates {
		path, err := host.LookPath(candidate)
		if err != nil {
			continue
		}
		output, err := runBounded(ctx, host, perProbe, path, "--version")
		if err != nil {
			continue
		}
		return Interpreter{
			Command: candidate,
			Path:    path,
			Version: strings.TrimSpace(string(output)),
		}, nil
	}

	return Interpreter{}, fmt.Errorf("%w (tried %s); install Python 3.8 or newer and ensure it is on PATH", ErrNoInterpreter, strings.Join(candidates, ", "))
}
