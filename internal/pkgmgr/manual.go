package pkgmgr

import (
	"fmt"

	"slateprep/internal/hostenv"
)

// ManualInstructions returns per-OS installation guidance for a tool when
// no package manager is available on the host.
func ManualInstructions(id hostenv.Identity, tool string) []string {
	aptPkg := tool
	if mapped, ok := aptCandidate.packages[tool]; ok {
		aptPkg = mapped
	}
	switch id.GOOS {
	case "linux":
		return []string{
			fmt.Sprintf("Install %s with your distribution's package manager,", tool),
			fmt.Sprintf("e.g. `sudo apt-get install -y %s` on Debian/Ubuntu", aptPkg),
			fmt.Sprintf("or `sudo dnf install -y %s` on Fedora/RHEL.", tool),
		}
	case "darwin":
		return []string{
			"Install Homebrew from https://brew.sh, then run",
			fmt.Sprintf("`brew install %s`.", tool),
		}
	case "windows":
		return []string{
			fmt.Sprintf("Install %s from the UB Mannheim builds:", tool),
			"https://github.com/UB-Mannheim/tesseract/wiki",
			"and add the install directory to PATH.",
		}
	default:
		return []string{
			fmt.Sprintf("Install %s manually and ensure it is on PATH.", tool),
		}
	}
}
