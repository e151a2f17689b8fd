package pythonenv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"slateprep/internal/manifest"
)

// ImportStatus reports whether one declared module imports cleanly.
type ImportStatus struct {
	Requirement manifest.Requirement `json:"requirement"`
	Available   bool                 `json:"available"`
	Detail      string               `json:"detail,omitempty"`
}

// VerifyImports probes every requirement with an isolated "import <module>"
// run. One failing import never prevents checking the rest, and the result
// count always equals the requirement count. Each probe gets its own
// perProbe timeout (no bound when zero): a hung import burns only its own
// budget, not the remaining checks'.
func (r *Runner) VerifyImports(ctx context.Context, requirements []manifest.Requirement, perProbe time.Duration) []ImportStatus {
	results := make([]ImportStatus, 0, len(requirements))
	for _, req := range requirements {
		status := ImportStatus{Requirement: req}
		output, err := runBounded(ctx, r.host, perProbe, r.interpreter.Path, "-c", fmt.Sprintf("import %s", req.Module))
		if err != nil {
			status.Detail = importFailureDetail(string(output), err)
		} else {
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

// importFailureDetail condenses an import error to its last meaningful
// line, which for Python tracebacks carries the exception message.
func importFailureDetail(output string, err error) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line != "" {
			return line
		}
	}
	return err.Error()
}
