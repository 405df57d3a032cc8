package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phototitles/internal/config"
	"phototitles/internal/library"
	"phototitles/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	oldBundle  string
	newBundle  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, name := range []string{config.EnvOldLibrary, config.EnvNewLibrary, config.EnvStateDir, config.EnvLogLevel, config.EnvVerbose} {
		t.Setenv(name, "")
	}
	cfg := testsupport.NewConfig(t)

	configPath := filepath.Join(homeDir, ".config", "phototitles", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	oldBundle := testsupport.WriteLibraryBundle(t, filepath.Join(base, "iPhoto Library"),
		testsupport.Titled("u1", "IMG_0001.JPG", "Beach"),
		testsupport.EmptyTitle("u2", "IMG_0002.JPG"),
	)
	newBundle := testsupport.WriteLibraryBundle(t, filepath.Join(base, "Photos Library.photoslibrary"),
		testsupport.NullTitle("u1", "IMG_0001.JPG"),
		testsupport.NullTitle("u2", "IMG_0002.JPG"),
	)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		oldBundle:  oldBundle,
		newBundle:  newBundle,
	}
}

func (e *cliTestEnv) newDatabase() string {
	return filepath.Join(e.newBundle, library.DatabaseSubpath)
}

func runCLI(t *testing.T, args []string, stdin, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nstate_dir = %q\nlog_dir = %q\nbackup_dir = %q\n\n[logging]\nlevel = %q\n",
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		cfg.Paths.BackupDir,
		"error",
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
