package main

import (
	"strings"

	"astrocopy/internal/config"
)

type commandContext struct {
	configFlag *string
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) loadConfig(overrides ...config.Override) (*config.Config, string, bool, error) {
	return config.Load(c.configPath(), overrides...)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
