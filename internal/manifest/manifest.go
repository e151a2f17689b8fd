// Package manifest declares the Python dependencies the resolve-mcp server
// requires, split into the core server set and the slate-detection feature
// set. The list is parsed once from an embedded requirements file and never
// mutated.
package manifest

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed requirements.txt
var rawManifest string

// Group identifies which feature set a requirement belongs to.
type Group string

const (
	// GroupCore covers the MCP server itself.
	GroupCore Group = "core"
	// GroupSlate covers the slate-detection feature (OCR, image handling).
	GroupSlate Group = "slate"
)

// Requirement is a single declared Python dependency.
type Requirement struct {
	// Name is the pip distribution name ("opencv-python").
	Name string `json:"name"`
	// MinVersion is the inclusive lower version bound, empty when
	// unconstrained.
	MinVersion string `json:"min_version,omitempty"`
	// Module is the Python import name ("cv2"), which often differs from
	// the distribution name.
	Module string `json:"module"`
	// Group places the requirement in the core or slate set.
	Group Group `json:"group"`
}

// PipSpec renders the requirement as a pip install argument.
func (r Requirement) PipSpec() string {
	if r.MinVersion == "" {
		return r.Name
	}
	return fmt.Sprintf("%s>=%s", r.Name, r.MinVersion)
}

// Parse reads a requirements listing. Lines declare "[group]" headers or
// "name >= version ; import=module" entries; blank lines and # comments are
// skipped.
func Parse(src string) ([]Requirement, error) {
	var (
		requirements []Requirement
		group        Group
	)
	for lineNo, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := strings.TrimSpace(line[1 : len(line)-1])
			switch Group(name) {
			case GroupCore, GroupSlate:
				group = Group(name)
			default:
				return nil, fmt.Errorf("manifest line %d: unknown group %q", lineNo+1, name)
			}
			continue
		}
		if group == "" {
			return nil, fmt.Errorf("manifest line %d: entry before any group header", lineNo+1)
		}
		req, err := parseEntry(line, group)
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", lineNo+1, err)
		}
		requirements = append(requirements, req)
	}
	if len(requirements) == 0 {
		return nil, fmt.Errorf("manifest declares no requirements")
	}
	return requirements, nil
}

func parseEntry(line string, group Group) (Requirement, error) {
	spec, attrs, _ := strings.Cut(line, ";")
	req := Requirement{Group: group}

	spec = strings.TrimSpace(spec)
	if name, version, found := strings.Cut(spec, ">="); found {
		req.Name = strings.TrimSpace(name)
		req.MinVersion = strings.TrimSpace(version)
	} else {
		req.Name = spec
	}
	if req.Name == "" {
		return Requirement{}, fmt.Errorf("missing package name")
	}

	req.Module = req.Name
	for _, attr := range strings.Split(attrs, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(attr), "=")
		if !found {
			continue
		}
		if strings.TrimSpace(key) == "import" {
			req.Module = strings.TrimSpace(value)
		}
	}
	if req.Module == "" {
		return Requirement{}, fmt.Errorf("missing import name for %s", req.Name)
	}
	return req, nil
}

var declared = sync.OnceValue(func() []Requirement {
	requirements, err := Parse(rawManifest)
	if err != nil {
		// The embedded manifest ships with the binary; a parse failure is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded manifest: %v", err))
	}
	return requirements
})

// Declared returns the full ordered requirement list.
func Declared() []Requirement {
	return append([]Requirement(nil), declared()...)
}

// ByGroup returns the declared requirements belonging to the given group,
// in declaration order.
func ByGroup(group Group) []Requirement {
	var out []Requirement
	for _, req := range declared() {
		if req.Group == group {
			out = append(out, req)
		}
	}
	return out
}

// PipSpecs renders the pip install arguments for a requirement list.
func PipSpecs(requirements []Requirement) []string {
	specs := make([]string, 0, len(requirements))
	for _, req := range requirements {
		specs = append(specs, req.PipSpec())
	}
	return specs
}
