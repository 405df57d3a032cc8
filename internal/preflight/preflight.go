package preflight

import (
	"path/filepath"

	"phototitles/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check for a run reading oldPath and writing newPath.
func RunAll(cfg *config.Config, oldPath, newPath string) []Result {
	var results []Result

	if cfg != nil {
		results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
		if cfg.Migration.Backup {
			results = append(results, CheckDirectoryAccess("Backup directory", cfg.Paths.BackupDir))
		}
	}

	results = append(results, CheckLibraryFile("Old library", oldPath, false))
	results = append(results, CheckLibraryFile("New library", newPath, true))

	// SQLite writes its rollback journal next to the database.
	results = append(results, CheckDirectoryAccess("New library directory", filepath.Dir(newPath)))

	return results
}

// FirstFailure returns the first result that did not pass.
func FirstFailure(results []Result) (Result, bool) {
	for _, result := range results {
		if !result.Passed {
			return result, true
		}
	}
	return Result{}, false
}
