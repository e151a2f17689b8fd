// Package ocr probes for the Tesseract OCR engine the slate-detection
// feature shells out to.
package ocr

import (
	"context"
	"strings"

	"slateprep/internal/hostenv"
)

// Status reports the availability of the OCR binary.
type Status struct {
	// Binary is the executable name or path that was probed.
	Binary string `json:"binary"`
	// Path is the resolved location when available.
	Path      string `json:"path,omitempty"`
	Available bool   `json:"available"`
	// Version is the first line of --version output ("tesseract 5.3.0").
	Version  string   `json:"version,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Guidance []string `json:"guidance,omitempty"`
}

// Probe checks whether the OCR binary is on PATH and queries its version.
// The binary argument may be empty; "tesseract" is then probed.
func Probe(ctx context.Context, host hostenv.Host, binary string) Status {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "tesseract"
	}
	status := Status{Binary: binary}

	path, err := host.LookPath(binary)
	if err != nil {
		status.Detail = "binary not found on PATH"
		status.Guidance = append(status.Guidance, "Install Tesseract OCR and expose it on PATH")
		return status
	}
	status.Path = path
	status.Available = true

	output, err := host.Run(ctx, path, "--version")
	if err != nil {
		status.Detail = "--version query failed: " + strings.TrimSpace(string(output))
		return status
	}
	status.Version = firstLine(string(output))
	return status
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(line)
}
