package testsupport

import (
	"path/filepath"
	"testing"

	"phototitles/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "state", "logs")
	cfgVal.Paths.BackupDir = filepath.Join(base, "state", "backups")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLibraries sets the old and new library paths on the test config.
func WithLibraries(oldPath, newPath string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Libraries.OldPath = oldPath
		b.cfg.Libraries.NewPath = newPath
	}
}

// WithBackup enables library backups before each run.
func WithBackup() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Migration.Backup = true
	}
}

// WithVerbose enables per-record trace output.
func WithVerbose() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Migration.Verbose = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
