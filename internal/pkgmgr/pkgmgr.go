// Package pkgmgr selects a native package manager for installing OS-level
// tools. Candidates are probed in a fixed preference order determined by
// the host OS identity; when none is present the caller falls back to
// printing manual installation instructions.
package pkgmgr

import (
	"context"
	"fmt"

	"slateprep/internal/hostenv"
)

// Installer installs a native package through one host package manager.
type Installer interface {
	// Name identifies the package manager ("apt-get", "brew", ...).
	Name() string
	// InstallArgs returns the full argv for installing the tool named by
	// its manager-neutral name. The first element is the resolved binary.
	InstallArgs(tool string) []string
	// Install executes the installation and returns combined output.
	Install(ctx context.Context, host hostenv.Host, tool string) ([]byte, error)
}

type manager struct {
	name     string
	path     string
	argv     func(path, pkg string) []string
	packages map[string]string
}

func (m *manager) Name() string { return m.name }

func (m *manager) InstallArgs(tool string) []string {
	pkg := tool
	if mapped, ok := m.packages[tool]; ok {
		pkg = mapped
	}
	return m.argv(m.path, pkg)
}

func (m *manager) Install(ctx context.Context, host hostenv.Host, tool string) ([]byte, error) {
	args := m.InstallArgs(tool)
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: empty install command", m.name)
	}
	return host.Run(ctx, args[0], args[1:]...)
}

type candidate struct {
	name     string
	argv     func(path, pkg string) []string
	packages map[string]string
}

func installArgv(subcommand string, flags ...string) func(path, pkg string) []string {
	return func(path, pkg string) []string {
		args := append([]string{path, subcommand}, flags...)
		return append(args, pkg)
	}
}

var (
	aptCandidate = candidate{
		name:     "apt-get",
		argv:     installArgv("install", "-y"),
		packages: map[string]string{"tesseract": "tesseract-ocr"},
	}
	aptAltCandidate = candidate{
		name:     "apt",
		argv:     installArgv("install", "-y"),
		packages: map[string]string{"tesseract": "tesseract-ocr"},
	}
	dnfCandidate = candidate{
		name: "dnf",
		argv: installArgv("install", "-y"),
	}
	yumCandidate = candidate{
		name: "yum",
		argv: installArgv("install", "-y"),
	}
	pacmanCandidate = candidate{
		name: "pacman",
		argv: installArgv("-S", "--noconfirm"),
	}
	brewCandidate = candidate{
		name: "brew",
		argv: installArgv("install"),
	}
	portCandidate = candidate{
		name: "port",
		argv: installArgv("install"),
	}
	wingetCandidate = candidate{
		name:     "winget",
		argv:     installArgv("install", "-e", "--id"),
		packages: map[string]string{"tesseract": "UB-Mannheim.TesseractOCR"},
	}
	chocoCandidate = candidate{
		name: "choco",
		argv: installArgv("install", "-y"),
	}
)

// candidatesFor returns the probe order for the host OS identity. Linux
// distro families narrow the order; an unrecognized distro probes every
// Linux manager.
func candidatesFor(id hostenv.Identity) []candidate {
	switch id.GOOS {
	case "linux":
		switch family(id) {
		case "debian":
			return []candidate{aptCandidate, aptAltCandidate}
		case "fedora":
			return []candidate{dnfCandidate, yumCandidate}
		case "arch":
			return []candidate{pacmanCandidate}
		default:
			return []candidate{aptCandidate, aptAltCandidate, dnfCandidate, yumCandidate, pacmanCandidate}
		}
	case "darwin":
		return []candidate{brewCandidate, portCandidate}
	case "windows":
		return []candidate{wingetCandidate, chocoCandidate}
	default:
		return nil
	}
}

// family classifies a Linux identity by its ID and ID_LIKE values.
func family(id hostenv.Identity) string {
	matches := func(value string) string {
		switch value {
		case "debian", "ubuntu", "raspbian", "linuxmint", "pop":
			return "debian"
		case "fedora", "rhel", "centos", "rocky", "almalinux":
			return "fedora"
		case "arch", "manjaro", "endeavouros":
			return "arch"
		}
		return ""
	}
	if fam := matches(id.DistroID); fam != "" {
		return fam
	}
	for _, like := range id.DistroLike {
		if fam := matches(like); fam != "" {
			return fam
		}
	}
	return ""
}

// Detect probes the candidate package managers for the host OS in
// preference order and returns the first one present. The boolean is false
// when no manager is available; callers then use ManualInstructions.
func Detect(host hostenv.Host) (Installer, bool) {
	for _, cand := range candidatesFor(host.OS()) {
		path, err := host.LookPath(cand.name)
		if err != nil {
			continue
		}
		return &manager{
			name:     cand.name,
			path:     path,
			argv:     cand.argv,
			packages: cand.packages,
		}, true
	}
	return nil, false
}
