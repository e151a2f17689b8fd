package bootstrap

import (
	"time"

	"slateprep/internal/hostenv"
	"slateprep/internal/pythonenv"
)

// Kind classifies the outcome of one advisory check.
type Kind string

const (
	// KindOK means the check passed.
	KindOK Kind = "ok"
	// KindMissing means the checked dependency is absent.
	KindMissing Kind = "missing"
	// KindFailed means the check itself ran into an error (an installer
	// exiting non-zero, a version query failing).
	KindFailed Kind = "failed"
)

// Result is the recorded outcome of a single check or installation step.
type Result struct {
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	Detail   string   `json:"detail,omitempty"`
	Guidance []string `json:"guidance,omitempty"`
}

// Passed reports whether the result is an ok outcome.
func (r Result) Passed() bool {
	return r.Kind == KindOK
}

// Counts aggregates result kinds for the summary.
type Counts struct {
	OK      int `json:"ok"`
	Missing int `json:"missing"`
	Failed  int `json:"failed"`
}

// Report aggregates everything a bootstrap run observed.
type Report struct {
	OS          hostenv.Identity      `json:"os"`
	Interpreter pythonenv.Interpreter `json:"interpreter"`
	Results     []Result              `json:"results"`
	StartedAt   time.Time             `json:"started_at"`
	FinishedAt  time.Time             `json:"finished_at"`
}

// Counts tallies the recorded results by kind.
func (r *Report) Counts() Counts {
	var counts Counts
	for _, result := range r.Results {
		switch result.Kind {
		case KindOK:
			counts.OK++
		case KindMissing:
			counts.Missing++
		default:
			counts.Failed++
		}
	}
	return counts
}

// MissingNames lists the names of non-passing results in recorded order.
func (r *Report) MissingNames() []string {
	var names []string
	for _, result := range r.Results {
		if !result.Passed() {
			names = append(names, result.Name)
		}
	}
	return names
}

// NextSteps returns the operator instructions printed in every summary.
func (r *Report) NextSteps() []string {
	command := r.Interpreter.Command
	if command == "" {
		command = "python3"
	}
	return []string{
		"Start the resolve-mcp server with:",
		"  " + command + " -m resolve_mcp.server",
		"Re-run `slateprep verify` at any time to re-check the environment.",
	}
}

// Observer receives progress while the checker works through its steps.
// Implementations render to the console; tests record the stream.
type Observer interface {
	// Section announces the next group of checks.
	Section(title string)
	// Check reports one recorded result as soon as it is known.
	Check(result Result)
	// Info emits free-form advisory lines (manual install instructions).
	Info(lines ...string)
}

type nopObserver struct{}

func (nopObserver) Section(string) {}
func (nopObserver) Check(Result)   {}
func (nopObserver) Info(...string) {}
