package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// ProjectDir is the resolve-mcp checkout the bootstrap run operates
	// on. Empty means the current working directory.
	ProjectDir string `toml:"project_dir"`
	LogDir     string `toml:"log_dir"`
}

// Python contains interpreter and pip configuration.
type Python struct {
	// Interpreter overrides interpreter discovery when set. It may be a
	// bare command name or an absolute path.
	Interpreter string `toml:"interpreter"`
	// PipArgs are appended to every pip install invocation.
	PipArgs []string `toml:"pip_args"`
	// IndexURL selects an alternate package index when set.
	IndexURL string `toml:"index_url"`
}

// OCR contains native OCR tool configuration.
type OCR struct {
	// TesseractBinary overrides the tesseract executable name.
	TesseractBinary string `toml:"tesseract_binary"`
}

// Install contains timing and skip controls for installation steps.
type Install struct {
	SkipNative           bool `toml:"skip_native"`
	ProbeTimeoutSeconds  int  `toml:"probe_timeout_seconds"`
	PipTimeoutSeconds    int  `toml:"pip_timeout_seconds"`
	NativeTimeoutSeconds int  `toml:"native_timeout_seconds"`
}

// History contains configuration for the bootstrap run journal.
type History struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: ~/.local/share/slateprep/history.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration document.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Python  Python  `toml:"python"`
	OCR     OCR     `toml:"ocr"`
	Install Install `toml:"install"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/slateprep/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is
// the resolved path and the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("slateprep.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Paths.ProjectDir) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		c.Paths.ProjectDir = wd
	}
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"paths.project_dir", &c.Paths.ProjectDir},
		{"paths.log_dir", &c.Paths.LogDir},
		{"history.path", &c.History.Path},
	} {
		if strings.TrimSpace(*field.value) == "" {
			continue
		}
		expanded, err := expandPath(*field.value)
		if err != nil {
			return fmt.Errorf("expand %s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

// EnsureDirectories creates the directories a bootstrap run writes to.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) != "" {
		dir := filepath.Dir(c.History.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}
	return nil
}

// TesseractBinary returns the tesseract executable name.
func (c *Config) TesseractBinary() string {
	if strings.TrimSpace(c.OCR.TesseractBinary) != "" {
		return strings.TrimSpace(c.OCR.TesseractBinary)
	}
	return "tesseract"
}

// LockPath returns the location of the bootstrap run lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "slateprep.lock")
}

// PipArgs returns the extra arguments appended to pip install invocations,
// including the configured index URL.
func (c *Config) PipArgs() []string {
	args := append([]string(nil), c.Python.PipArgs...)
	if strings.TrimSpace(c.Python.IndexURL) != "" {
		args = append(args, "--index-url", strings.TrimSpace(c.Python.IndexURL))
	}
	return args
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
