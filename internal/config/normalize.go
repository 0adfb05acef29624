package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOrganize(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.Source, err = expandPath(strings.TrimSpace(c.Paths.Source)); err != nil {
		return fmt.Errorf("paths.source: %w", err)
	}
	if c.Paths.Target, err = expandPath(strings.TrimSpace(c.Paths.Target)); err != nil {
		return fmt.Errorf("paths.target: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.SourceMarker = strings.ToLower(strings.TrimSpace(c.Scan.SourceMarker))
}

func (c *Config) normalizeOrganize() error {
	c.Organize.GroupStrategy = GroupStrategy(canonicalToken(string(c.Organize.GroupStrategy)))
	if c.Organize.GroupStrategy == "" {
		c.Organize.GroupStrategy = defaultGroupStrategy
	}
	c.Organize.NamingStrategy = NamingStrategy(canonicalToken(string(c.Organize.NamingStrategy)))
	if c.Organize.NamingStrategy == "" {
		c.Organize.NamingStrategy = defaultNamingStrategy
	}
	c.Organize.NewFilename = strings.TrimSpace(c.Organize.NewFilename)
	c.Organize.ScopeName = strings.TrimSpace(c.Organize.ScopeName)
	if c.Organize.ScopeName == "" {
		c.Organize.ScopeName = defaultScopeName
	}

	policy, err := ParseIgnorePolicy(c.Organize.Ignore)
	if err != nil {
		return err
	}
	c.policy = policy
	c.Organize.Ignore = policy.Tokens()
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		if expanded, err := expandPath(c.Logging.File); err == nil {
			c.Logging.File = expanded
		}
	}
}
