package main

import (
	"os"
	"strings"
	"testing"

	"phototitles/internal/testsupport"
)

func TestMigrateInteractiveSave(t *testing.T) {
	env := setupCLITestEnv(t)

	stdin := strings.Join([]string{
		"y",
		env.oldBundle,
		strings.ReplaceAll(env.newBundle, " ", `\ `),
		"y",
		"y",
		"y",
	}, "\n") + "\n"

	out, _, err := runCLI(t, []string{"migrate"}, stdin, env.configPath)
	if err != nil {
		t.Fatalf("migrate: %v\n%s", err, out)
	}
	requireContains(t, out, "Drag the OLD library here")
	requireContains(t, out, "== OLD library ==")
	requireContains(t, out, "1 titles were copied")
	requireContains(t, out, "1 titles were set in the new library")
	requireContains(t, out, "Changes were saved")

	got := testsupport.ReadTitles(t, env.newDatabase())
	if got["u1"] != testsupport.Title("Beach") || got["u2"] != testsupport.Title("IMG_0002") {
		t.Fatalf("titles = %+v", got)
	}
}

func TestMigrateDiscardFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	before := testsupport.ReadFile(t, env.newDatabase())

	out, _, err := runCLI(t, []string{
		"migrate", "--yes", "--discard", "--verbose",
		"--old", env.oldBundle,
		"--new", env.newBundle,
	}, "", env.configPath)
	if err != nil {
		t.Fatalf("migrate: %v\n%s", err, out)
	}
	requireContains(t, out, "All changes were discarded.")
	requireContains(t, out, "UUID")
	testsupport.RequireUnchanged(t, env.newDatabase(), before)
}

func TestMigrateDeclinedIntroduction(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"migrate"}, "n\n", env.configPath)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	requireContains(t, out, "Nothing was changed.")
}

func TestMigrateRepromptsThenFailsAtEndOfInput(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"migrate"}, "y\n/definitely/not/here\n", env.configPath)
	if err == nil {
		t.Fatal("expected error when input ends before a library is found")
	}
	requireContains(t, out, "No library was found at that location. Please try again.")
}

func TestMigrateBackup(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"migrate", "--yes", "--backup",
		"--old", env.oldBundle,
		"--new", env.newBundle,
	}, "", env.configPath)
	if err != nil {
		t.Fatalf("migrate: %v\n%s", err, out)
	}
	requireContains(t, out, "Backups: "+env.cfg.Paths.BackupDir)
	entries, err := os.ReadDir(env.cfg.Paths.BackupDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("backup dir entries = %v, err = %v", entries, err)
	}
}
