package pythonenv

import (
	"context"
	"strings"

	"slateprep/internal/manifest"
)

// InstallResult reports one pip install invocation for a requirement group.
type InstallResult struct {
	Group  manifest.Group `json:"group"`
	Output string         `json:"output,omitempty"`
	Err    error          `json:"-"`
}

// Failed reports whether the installation exited with an error.
func (r InstallResult) Failed() bool {
	return r.Err != nil
}

// Install runs pip for one requirement group. A non-zero pip exit is
// recorded on the result, not returned: callers proceed to verification so
// failures surface per package.
func (r *Runner) Install(ctx context.Context, group manifest.Group) InstallResult {
	requirements := manifest.ByGroup(group)
	args := []string{"-m", "pip", "install"}
	args = append(args, manifest.PipSpecs(requirements)...)
	args = append(args, r.pipArgs...)

	output, err := r.host.Run(ctx, r.interpreter.Path, args...)
	return InstallResult{
		Group:  group,
		Output: strings.TrimSpace(string(output)),
		Err:    err,
	}
}
