// File: pkg/rename/config.go
package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultPlaceholder is the template name shipped in the project skeleton.
const DefaultPlaceholder = "AspAdvancedApp"

// DefaultConfigFile is looked up in the root directory when no config path is given.
const DefaultConfigFile = ".tplrename.yaml"

// Arguments holds the configuration options for a rename run.
type Arguments struct {
	Root           string   // Directory whose contents are renamed.
	OldString      string   // Placeholder to replace.
	NewString      string   // Replacement, used verbatim.
	IgnoreFile     string   // Name of the ignore file inside Root.
	IgnorePatterns []string // Additional ignore patterns provided via command-line arguments.
	ExcludePaths   []string // Files never renamed or rewritten; the running executable is always added.
	DryRun         bool     // If true, log planned operations without touching the filesystem.
	SkipBinary     bool     // If true, binary files are renamed but their content is left alone.
}

// FileConfig is the optional YAML config file kept next to the template.
type FileConfig struct {
	Placeholder string   `yaml:"placeholder"`
	IgnoreFile  string   `yaml:"ignoreFile"`
	Ignore      []string `yaml:"ignore"`
	SkipBinary  *bool    `yaml:"skipBinary"`
}

// LoadFileConfig reads a YAML config file. A missing file returns a nil
// config and no error.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply fills the fields of args that were not set explicitly.
// Ignore patterns from the file are prepended to the ones already present.
func (c *FileConfig) Apply(args *Arguments) {
	if c == nil {
		return
	}
	if args.OldString == "" {
		args.OldString = c.Placeholder
	}
	if args.IgnoreFile == "" {
		args.IgnoreFile = c.IgnoreFile
	}
	if len(c.Ignore) > 0 {
		args.IgnorePatterns = append(append([]string{}, c.Ignore...), args.IgnorePatterns...)
	}
	if c.SkipBinary != nil && !args.SkipBinary {
		args.SkipBinary = *c.SkipBinary
	}
}

// Validate checks that args describe a runnable rename and resolves Root to
// an absolute path.
func (a *Arguments) Validate() error {
	if a.OldString == "" {
		return errors.New("placeholder string must not be empty")
	}
	if a.Root == "" {
		return errors.New("root directory must be set")
	}

	abs, err := filepath.Abs(a.Root)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", abs)
	}
	a.Root = abs

	if exe, err := ExecutablePath(); err == nil && !slices.Contains(a.ExcludePaths, exe) {
		a.ExcludePaths = append(a.ExcludePaths, exe)
	}
	return nil
}

// ExecutablePath returns the running executable with symlinks resolved.
func ExecutablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// DefaultRoot returns the directory holding the running executable.
func DefaultRoot() (string, error) {
	exe, err := ExecutablePath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
