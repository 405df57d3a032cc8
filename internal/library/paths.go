package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DatabaseSubpath is the database location inside a library package.
var DatabaseSubpath = filepath.Join("Database", "apdb", "Library.apdb")

const databaseExt = ".apdb"

// ResolvePath turns user input into a database file path. It accepts either
// the database file or the library package containing it, as typed or as
// dragged into a terminal: surrounding quotes are stripped, backslash-escaped
// spaces are unescaped, and a leading ~ is expanded.
func ResolvePath(input string) (string, error) {
	cleaned := cleanInput(input)
	if cleaned == "" {
		return "", fmt.Errorf("%w: empty path", ErrStoreUnavailable)
	}
	if !strings.EqualFold(filepath.Ext(cleaned), databaseExt) {
		cleaned = filepath.Join(cleaned, DatabaseSubpath)
	}
	info, err := os.Stat(cleaned)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrStoreUnavailable, cleaned)
	}
	return filepath.Clean(cleaned), nil
}

func cleanInput(input string) string {
	value := strings.TrimSpace(input)
	for len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			value = strings.TrimSpace(value[1 : len(value)-1])
			continue
		}
		break
	}
	value = strings.ReplaceAll(value, `\ `, " ")
	if value == "~" || strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	value = strings.TrimRight(value, string(filepath.Separator))
	return value
}
