package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"slateprep/internal/bootstrap"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	checkIndent  = "  "
	timeRounding = 10 * time.Millisecond
)

// consoleObserver streams check results to the terminal as they happen.
type consoleObserver struct {
	out      io.Writer
	colorize bool
}

func newConsoleObserver(out io.Writer) *consoleObserver {
	return &consoleObserver{out: out, colorize: shouldColorize(out)}
}

func (o *consoleObserver) Section(title string) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	if o.colorize {
		line = ansiBlue + line + ansiReset
	}
	fmt.Fprintln(o.out)
	fmt.Fprintln(o.out, line)
}

func (o *consoleObserver) Check(result bootstrap.Result) {
	mark := resultMark(result.Kind)
	if o.colorize {
		mark = resultColor(result.Kind) + mark + ansiReset
	}
	line := fmt.Sprintf("%s%s %s", checkIndent, mark, result.Name)
	if result.Detail != "" {
		line += " (" + result.Detail + ")"
	}
	fmt.Fprintln(o.out, line)
	for _, guidance := range result.Guidance {
		fmt.Fprintln(o.out, checkIndent+checkIndent+guidance)
	}
}

func (o *consoleObserver) Info(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(o.out, checkIndent+line)
	}
}

func resultMark(kind bootstrap.Kind) string {
	if kind == bootstrap.KindOK {
		return "✓"
	}
	return "✗"
}

func resultColor(kind bootstrap.Kind) string {
	switch kind {
	case bootstrap.KindOK:
		return ansiGreen
	case bootstrap.KindMissing:
		return ansiRed
	default:
		return ansiYellow
	}
}

func renderSummary(out io.Writer, report *bootstrap.Report) {
	colorize := shouldColorize(out)
	counts := report.Counts()

	header := "== Summary =="
	if colorize {
		header = ansiBlue + header + ansiReset
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, header)
	fmt.Fprintf(out, "%s%d ok, %d missing, %d failed (%s)\n",
		checkIndent, counts.OK, counts.Missing, counts.Failed,
		report.FinishedAt.Sub(report.StartedAt).Round(timeRounding))

	if missing := report.MissingNames(); len(missing) > 0 {
		line := "Needs attention: " + strings.Join(missing, ", ")
		if colorize {
			line = ansiYellow + line + ansiReset
		}
		fmt.Fprintln(out, checkIndent+line)
	}

	fmt.Fprintln(out)
	for _, step := range report.NextSteps() {
		fmt.Fprintln(out, step)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
