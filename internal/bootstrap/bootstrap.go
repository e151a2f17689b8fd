package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"slateprep/internal/config"
	"slateprep/internal/hostenv"
	"slateprep/internal/logging"
	"slateprep/internal/manifest"
	"slateprep/internal/ocr"
	"slateprep/internal/pkgmgr"
	"slateprep/internal/pythonenv"
)

// ErrWrongDirectory reports that the configured project directory is not a
// resolve-mcp checkout.
var ErrWrongDirectory = errors.New("resolve-mcp project markers not found")

// ErrAlreadyRunning reports that a concurrent bootstrap run holds the lock.
var ErrAlreadyRunning = errors.New("another bootstrap run is in progress")

const (
	markerSetup   = "setup.py"
	markerPackage = "src/resolve_mcp"
	auxiliaryFile = "src/resolve_mcp/slate_detection.py"
	ocrTool       = "tesseract"
)

// Checker runs the bootstrap sequence against one host environment.
type Checker struct {
	cfg      *config.Config
	host     hostenv.Host
	logger   *slog.Logger
	observer Observer
}

// New builds a Checker. A nil logger discards log output and a nil
// observer discards progress.
func New(cfg *config.Config, host hostenv.Host, logger *slog.Logger, observer Observer) *Checker {
	if logger == nil {
		logger = logging.NewNop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Checker{cfg: cfg, host: host, logger: logger, observer: observer}
}

// Run executes the full bootstrap: preconditions, dependency installation,
// native tool installation, and verification. The returned error is non-nil
// only for precondition failures; every other problem is recorded in the
// report. The report is returned even on precondition failure, holding
// whatever was checked before the abort.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	return c.run(ctx, true)
}

// Verify executes the verification steps only: no pip or package-manager
// command runs, and no run lock is taken. Preconditions still apply.
func (c *Checker) Verify(ctx context.Context) (*Report, error) {
	return c.run(ctx, false)
}

func (c *Checker) run(ctx context.Context, withInstall bool) (*Report, error) {
	report := &Report{
		OS:        c.host.OS(),
		StartedAt: time.Now().UTC(),
	}
	defer func() {
		report.FinishedAt = time.Now().UTC()
		counts := report.Counts()
		c.logger.Info("bootstrap finished",
			logging.Bool("install", withInstall),
			logging.Int("ok", counts.OK),
			logging.Int("missing", counts.Missing),
			logging.Int("failed", counts.Failed),
			logging.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)))
	}()

	interp, err := c.checkInterpreter(ctx, report)
	if err != nil {
		return report, err
	}
	report.Interpreter = interp

	if err := c.checkProjectMarkers(report); err != nil {
		return report, err
	}

	if withInstall {
		lock := flock.New(c.cfg.LockPath())
		acquired, err := lock.TryLock()
		if err != nil {
			return report, fmt.Errorf("acquire run lock %s: %w", c.cfg.LockPath(), err)
		}
		if !acquired {
			return report, fmt.Errorf("%w (lock %s held)", ErrAlreadyRunning, c.cfg.LockPath())
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	runner := pythonenv.NewRunner(c.host, interp, c.cfg.PipArgs())

	if withInstall {
		c.installPythonGroups(ctx, runner, report)
		c.installNativeTool(ctx, report)
	}

	c.verifyImports(ctx, runner, report)
	c.verifyOCR(ctx, report)
	c.checkAuxiliaryFile(report)

	return report, nil
}

func (c *Checker) checkInterpreter(ctx context.Context, report *Report) (pythonenv.Interpreter, error) {
	c.observer.Section("Python interpreter")

	interp, err := pythonenv.Discover(ctx, c.host, c.cfg.Python.Interpreter, c.probeTimeout())
	if err != nil {
		c.record(report, Result{
			Name:   "Python interpreter",
			Kind:   KindFailed,
			Detail: err.Error(),
		})
		return pythonenv.Interpreter{}, err
	}

	c.logger.Info("interpreter discovered",
		logging.String("command", interp.Command),
		logging.String("path", interp.Path),
		logging.String("version", interp.Version))
	c.record(report, Result{
		Name:   "Python interpreter",
		Kind:   KindOK,
		Detail: fmt.Sprintf("%s (%s)", interp.Version, interp.Path),
	})
	return interp, nil
}

func (c *Checker) checkProjectMarkers(report *Report) error {
	c.observer.Section("Project directory")
	projectDir := c.cfg.Paths.ProjectDir

	missing := make([]string, 0, 2)
	if info, err := c.host.Stat(filepath.Join(projectDir, markerSetup)); err != nil || info.IsDir() {
		missing = append(missing, markerSetup)
	}
	if info, err := c.host.Stat(filepath.Join(projectDir, markerPackage)); err != nil || !info.IsDir() {
		missing = append(missing, markerPackage)
	}

	if len(missing) > 0 {
		err := fmt.Errorf("%w in %s (missing %s); run slateprep from the resolve-mcp checkout or set paths.project_dir",
			ErrWrongDirectory, projectDir, strings.Join(missing, ", "))
		c.record(report, Result{
			Name:   "Project directory",
			Kind:   KindFailed,
			Detail: err.Error(),
		})
		return err
	}

	if err := c.host.Access(projectDir); err != nil {
		err = fmt.Errorf("project directory %s is not accessible: %w", projectDir, err)
		c.record(report, Result{
			Name:   "Project directory",
			Kind:   KindFailed,
			Detail: err.Error(),
		})
		return err
	}

	c.record(report, Result{
		Name:   "Project directory",
		Kind:   KindOK,
		Detail: projectDir,
	})
	return nil
}

func (c *Checker) installPythonGroups(ctx context.Context, runner *pythonenv.Runner, report *Report) {
	c.observer.Section("Installing Python dependencies")

	for _, group := range []manifest.Group{manifest.GroupCore, manifest.GroupSlate} {
		installCtx, cancel := c.installContext(ctx, c.cfg.Install.PipTimeoutSeconds)
		result := runner.Install(installCtx, group)
		cancel()

		name := fmt.Sprintf("Install %s dependencies", group)
		if result.Failed() {
			// Not fatal: verification below reports per-package state.
			c.logger.Warn("pip install failed",
				logging.String("group", string(group)),
				logging.Error(result.Err))
			c.record(report, Result{
				Name:     name,
				Kind:     KindFailed,
				Detail:   installFailureDetail(result),
				Guidance: []string{"Failures surface per package in the verification step below."},
			})
			continue
		}
		c.record(report, Result{Name: name, Kind: KindOK})
	}
}

func (c *Checker) installNativeTool(ctx context.Context, report *Report) {
	c.observer.Section("Native OCR tool")

	if c.cfg.Install.SkipNative {
		c.observer.Info("Skipping native OCR installation (install.skip_native).")
		return
	}

	installer, found := pkgmgr.Detect(c.host)
	if !found {
		instructions := pkgmgr.ManualInstructions(c.host.OS(), ocrTool)
		c.observer.Info(instructions...)
		c.record(report, Result{
			Name:     "Tesseract installation",
			Kind:     KindMissing,
			Detail:   fmt.Sprintf("no package manager found for %s", c.host.OS()),
			Guidance: instructions,
		})
		return
	}

	c.logger.Info("installing native OCR tool",
		logging.String("manager", installer.Name()),
		logging.String("tool", ocrTool))

	installCtx, cancel := c.installContext(ctx, c.cfg.Install.NativeTimeoutSeconds)
	output, err := installer.Install(installCtx, c.host, ocrTool)
	cancel()

	name := fmt.Sprintf("Tesseract installation (%s)", installer.Name())
	if err != nil {
		c.record(report, Result{
			Name:     name,
			Kind:     KindFailed,
			Detail:   commandFailureDetail(output, err),
			Guidance: []string{"Re-run the command with elevated privileges if it failed on permissions."},
		})
		return
	}
	c.record(report, Result{Name: name, Kind: KindOK})
}

func (c *Checker) verifyImports(ctx context.Context, runner *pythonenv.Runner, report *Report) {
	c.observer.Section("Verifying Python modules")

	requirements := manifest.Declared()
	for _, status := range runner.VerifyImports(ctx, requirements, c.probeTimeout()) {
		result := Result{
			Name:   fmt.Sprintf("%s (import %s)", status.Requirement.Name, status.Requirement.Module),
			Kind:   KindOK,
			Detail: "",
		}
		if !status.Available {
			result.Kind = KindMissing
			result.Detail = status.Detail
			result.Guidance = []string{
				fmt.Sprintf("Install with: %s -m pip install %q", report.Interpreter.Command, status.Requirement.PipSpec()),
			}
		}
		c.record(report, result)
	}
}

func (c *Checker) verifyOCR(ctx context.Context, report *Report) {
	c.observer.Section("Verifying OCR engine")

	probeCtx, cancel := c.probeContext(ctx)
	defer cancel()

	status := ocr.Probe(probeCtx, c.host, c.cfg.TesseractBinary())
	result := Result{Name: "Tesseract OCR"}
	switch {
	case status.Available && status.Version != "":
		result.Kind = KindOK
		result.Detail = status.Version
	case status.Available:
		result.Kind = KindFailed
		result.Detail = status.Detail
	default:
		result.Kind = KindMissing
		result.Detail = status.Detail
		result.Guidance = status.Guidance
	}
	c.record(report, result)
}

func (c *Checker) checkAuxiliaryFile(report *Report) {
	c.observer.Section("Slate detection module")

	path := filepath.Join(c.cfg.Paths.ProjectDir, filepath.FromSlash(auxiliaryFile))
	result := Result{Name: "Slate detection module"}
	if info, err := c.host.Stat(path); err != nil || info.IsDir() {
		result.Kind = KindMissing
		result.Detail = fmt.Sprintf("%s not found", auxiliaryFile)
		result.Guidance = []string{"Restore the file from the resolve-mcp repository; slate detection cannot load without it."}
	} else {
		result.Kind = KindOK
		result.Detail = path
	}
	c.record(report, result)
}

func (c *Checker) record(report *Report, result Result) {
	report.Results = append(report.Results, result)
	c.observer.Check(result)
}

func (c *Checker) probeTimeout() time.Duration {
	return time.Duration(c.cfg.Install.ProbeTimeoutSeconds) * time.Second
}

func (c *Checker) probeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.probeTimeout())
}

func (c *Checker) installContext(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

func installFailureDetail(result pythonenv.InstallResult) string {
	detail := result.Err.Error()
	if tail := lastLine(result.Output); tail != "" {
		detail = fmt.Sprintf("%s: %s", detail, tail)
	}
	return detail
}

func commandFailureDetail(output []byte, err error) string {
	if tail := lastLine(string(output)); tail != "" {
		return fmt.Sprintf("%s: %s", err.Error(), tail)
	}
	return err.Error()
}

func lastLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
