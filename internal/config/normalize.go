package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLibraries(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.StateDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		c.Paths.BackupDir = filepath.Join(c.Paths.StateDir, "backups")
	}
	if c.Paths.BackupDir, err = expandPath(strings.TrimSpace(c.Paths.BackupDir)); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	return nil
}

// normalizeLibraries canonicalizes the absent-title conventions. Library paths
// are left as entered: they go through library.ResolvePath, which understands
// drag-and-drop escaping and bundle directories.
func (c *Config) normalizeLibraries() error {
	c.Libraries.OldPath = strings.TrimSpace(c.Libraries.OldPath)
	c.Libraries.NewPath = strings.TrimSpace(c.Libraries.NewPath)
	c.Libraries.OldAbsent = normalizeAbsent(c.Libraries.OldAbsent, AbsentEmpty)
	c.Libraries.NewAbsent = normalizeAbsent(c.Libraries.NewAbsent, AbsentNull)
	return nil
}

func normalizeAbsent(value, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return fallback
	case "null", "nil", "none":
		return AbsentNull
	case "empty", "empty_string", "''":
		return AbsentEmpty
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
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
}
