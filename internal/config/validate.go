package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"astrocopy/internal/stage"
)

// Validate ensures the configuration is usable. It does not require the
// source and target paths; see ValidatePaths.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// ValidatePaths ensures both roots are set and distinct. It is checked before
// a run starts; `config show` skips it.
func (c *Config) ValidatePaths() error {
	if strings.TrimSpace(c.Paths.Source) == "" {
		return configError("paths.source", "must be set")
	}
	if strings.TrimSpace(c.Paths.Target) == "" {
		return configError("paths.target", "must be set")
	}
	if filepath.Clean(c.Paths.Source) == filepath.Clean(c.Paths.Target) {
		return configError("paths.target", "must differ from paths.source")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if !c.Organize.GroupStrategy.valid() {
		return configError("organize.group_strategy", fmt.Sprintf("unsupported value %q (expected one of %s)", c.Organize.GroupStrategy, joinNames(GroupStrategies)))
	}
	if !c.Organize.NamingStrategy.valid() {
		return configError("organize.naming_strategy", fmt.Sprintf("unsupported value %q (expected one of %s)", c.Organize.NamingStrategy, joinNames(NamingStrategies)))
	}
	if c.Organize.NamingStrategy == NameByNew && c.Organize.NewFilename == "" {
		return configError("organize.new_filename", "must be set when organize.naming_strategy is \"new\"")
	}
	if c.Organize.NamingStrategy != NameByNew && c.Organize.NewFilename != "" {
		return configError("organize.new_filename", "is only valid when organize.naming_strategy is \"new\"")
	}
	if strings.ContainsAny(c.Organize.NewFilename, `/\`) {
		return configError("organize.new_filename", "must not contain path separators")
	}
	if strings.ContainsAny(c.Organize.ScopeName, `/\`) {
		return configError("organize.scope_name", "must not contain path separators")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return configError("logging.format", fmt.Sprintf("unsupported value %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return configError("logging.level", fmt.Sprintf("unsupported value %q", c.Logging.Level))
	}
	return nil
}

func configError(key, message string) error {
	return stage.Wrap(stage.ErrConfiguration, "config", key, message, nil)
}
