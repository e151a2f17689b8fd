package pythonenv

import (
	"context"
	"time"

	"slateprep/internal/hostenv"
)

// Runner executes pip installs and import probes through a discovered
// interpreter.
type Runner struct {
	host        hostenv.Host
	interpreter Interpreter
	pipArgs     []string
}

// NewRunner builds a Runner. pipArgs are appended to every pip invocation.
func NewRunner(host hostenv.Host, interpreter Interpreter, pipArgs []string) *Runner {
	return &Runner{
		host:        host,
		interpreter: interpreter,
		pipArgs:     append([]string(nil), pipArgs...),
	}
}

// Interpreter returns the interpreter the runner executes.
func (r *Runner) Interpreter() Interpreter {
	return r.interpreter
}

// runBounded executes one subprocess under its own timeout. A zero timeout
// imposes no extra bound beyond the parent context.
func runBounded(ctx context.Context, host hostenv.Host, timeout time.Duration, name string, args ...string) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return host.Run(ctx, name, args...)
}
