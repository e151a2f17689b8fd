package main

import (
	"encoding/json"
	"testing"

	"slateprep/internal/manifest"
)

func TestManifestCommandTable(t *testing.T) {
	out, _, err := runCLI(t, []string{"manifest"}, "")
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	requireContains(t, out, "opencv-python")
	requireContains(t, out, "pytesseract")
	requireContains(t, out, "cv2")
	requireContains(t, out, "core")
	requireContains(t, out, "slate")
}

func TestManifestCommandJSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"manifest", "--json"}, "")
	if err != nil {
		t.Fatalf("manifest --json: %v", err)
	}

	var requirements []manifest.Requirement
	if err := json.Unmarshal([]byte(out), &requirements); err != nil {
		t.Fatalf("parse manifest JSON: %v", err)
	}
	if len(requirements) != len(manifest.Declared()) {
		t.Fatalf("expected %d requirements, got %d", len(manifest.Declared()), len(requirements))
	}
}
