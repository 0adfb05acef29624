package config

import (
	"bytes"
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

// Paths contains the source media and archive roots.
type Paths struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// Scan controls how the source media is enumerated.
type Scan struct {
	Recurse      bool   `toml:"recurse"`
	SourceMarker string `toml:"source_marker"`
}

// Organize controls grouping, naming, and filtering of the archive tree.
type Organize struct {
	GroupStrategy  GroupStrategy  `toml:"group_strategy"`
	NamingStrategy NamingStrategy `toml:"naming_strategy"`
	NewFilename    string         `toml:"new_filename"`
	IncludeScope   bool           `toml:"include_scope"`
	ScopeName      string         `toml:"scope_name"`
	Ignore         []string       `toml:"ignore"`
}

// Copy controls how planned files are written.
type Copy struct {
	ScanOnly      bool `toml:"scan_only"`
	Verify        bool `toml:"verify"`
	PreserveTimes bool `toml:"preserve_times"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
	Quiet  bool   `toml:"quiet"`
}

// Config encapsulates every setting a run needs.
//
// Configuration sections:
//   - Paths: source media root and archive root
//   - Scan: recursion and source path marker
//   - Organize: grouping, naming, scope segment, and ignore policy
//   - Copy: scan-only mode, verification, timestamp preservation
//   - Logging: log format, level, optional file, and quiet mode
type Config struct {
	Paths    Paths    `toml:"paths"`
	Scan     Scan     `toml:"scan"`
	Organize Organize `toml:"organize"`
	Copy     Copy     `toml:"copy"`
	Logging  Logging  `toml:"logging"`

	policy IgnorePolicy
}

// Override mutates a decoded configuration before normalization. The CLI uses
// overrides to apply flags on top of the file.
type Override func(*Config)

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates and parses a configuration file, applies overrides, then
// normalizes and validates the result. It returns the config, the resolved
// file path, and whether that file existed.
func Load(path string, overrides ...Override) (*Config, string, bool, error) {
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
			return nil, "", false, configError("parse config", err.Error())
		}
	}

	for _, override := range overrides {
		if override != nil {
			override(&cfg)
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

// IgnorePolicy returns the parsed ignore capabilities.
func (c *Config) IgnorePolicy() IgnorePolicy {
	return c.policy
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
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

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
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
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
