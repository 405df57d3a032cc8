package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibraries(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibraries() error {
	if err := validateAbsent("libraries.old_absent", c.Libraries.OldAbsent); err != nil {
		return err
	}
	if err := validateAbsent("libraries.new_absent", c.Libraries.NewAbsent); err != nil {
		return err
	}
	return nil
}

func validateAbsent(field, value string) error {
	switch value {
	case AbsentNull, AbsentEmpty:
		return nil
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", field, AbsentNull, AbsentEmpty, value)
	}
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
