package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override values from the config file.
const (
	EnvOldLibrary = "PHOTOTITLES_OLD_LIBRARY"
	EnvNewLibrary = "PHOTOTITLES_NEW_LIBRARY"
	EnvStateDir   = "PHOTOTITLES_STATE_DIR"
	EnvLogLevel   = "PHOTOTITLES_LOG_LEVEL"
	EnvVerbose    = "PHOTOTITLES_VERBOSE"
)

const envLocalName = ".env.local"

// loadEnvFile populates the process environment from a dotenv file. Variables
// already set in the environment win over the file.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if value := strings.TrimSpace(os.Getenv(EnvOldLibrary)); value != "" {
		c.Libraries.OldPath = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvNewLibrary)); value != "" {
		c.Libraries.NewPath = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvStateDir)); value != "" {
		c.Paths.StateDir = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvLogLevel)); value != "" {
		c.Logging.Level = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvVerbose)); value != "" {
		if verbose, err := strconv.ParseBool(value); err == nil {
			c.Migration.Verbose = verbose
		}
	}
}

// findEnvLocal searches for .env.local starting from the working directory and
// walking up parent directories. It stops at the user's home directory.
func findEnvLocal() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		if _, statErr := os.Stat(envLocalName); statErr == nil {
			return envLocalName
		}
		return ""
	}

	home = filepath.Clean(home)
	dir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(dir, envLocalName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		if dir == home {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
