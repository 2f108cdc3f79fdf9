package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSidecar(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSidecar() error {
	if strings.ContainsAny(c.Sidecar.Filename, `/\`) {
		return fmt.Errorf("sidecar.filename must be a bare filename, got %q", c.Sidecar.Filename)
	}
	for _, glob := range c.Sidecar.ExcludeGlobs {
		if !doublestar.ValidatePattern(glob) {
			return fmt.Errorf("sidecar.exclude_globs: invalid pattern %q", glob)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
