package testsupport

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"phototitles/internal/library"
)

// Row is one RKVersion record written by WriteLibrary.
type Row struct {
	UUID     string
	FileName string
	Name     sql.NullString
}

// Titled returns a row whose title is set to title.
func Titled(uuid, fileName, title string) Row {
	return Row{UUID: uuid, FileName: fileName, Name: sql.NullString{String: title, Valid: true}}
}

// NullTitle returns a row with a NULL title, as Photos stores it.
func NullTitle(uuid, fileName string) Row {
	return Row{UUID: uuid, FileName: fileName}
}

// EmptyTitle returns a row with an empty-string title, as iPhoto stores it.
func EmptyTitle(uuid, fileName string) Row {
	return Titled(uuid, fileName, "")
}

const versionSchema = `CREATE TABLE RKVersion (
	modelId INTEGER PRIMARY KEY AUTOINCREMENT,
	uuid VARCHAR,
	name VARCHAR,
	fileName VARCHAR,
	isMaster INTEGER DEFAULT 1
)`

// WriteLibrary creates a library database at path holding rows and returns path.
func WriteLibrary(t testing.TB, path string, rows ...Row) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(versionSchema); err != nil {
		t.Fatalf("create schema in %s: %v", path, err)
	}
	for _, row := range rows {
		if _, err := db.Exec(`INSERT INTO RKVersion (uuid, name, fileName) VALUES (?, ?, ?)`, row.UUID, row.Name, row.FileName); err != nil {
			t.Fatalf("insert %s into %s: %v", row.UUID, path, err)
		}
	}
	return path
}

// WriteLibraryBundle creates a library package under dir with the database
// at its standard location and returns the package directory.
func WriteLibraryBundle(t testing.TB, dir string, rows ...Row) string {
	t.Helper()

	WriteLibrary(t, filepath.Join(dir, library.DatabaseSubpath), rows...)
	return dir
}

// ReadTitles returns every title in the database keyed by uuid, bypassing
// the library package.
func ReadTitles(t testing.TB, path string) map[string]sql.NullString {
	t.Helper()

	dsn := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: "mode=ro"}
	db, err := sql.Open("sqlite", dsn.String())
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT uuid, name FROM RKVersion`)
	if err != nil {
		t.Fatalf("query %s: %v", path, err)
	}
	defer rows.Close()

	titles := make(map[string]sql.NullString)
	for rows.Next() {
		var (
			uuid string
			name sql.NullString
		)
		if err := rows.Scan(&uuid, &name); err != nil {
			t.Fatalf("scan %s: %v", path, err)
		}
		titles[uuid] = name
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate %s: %v", path, err)
	}
	return titles
}

// MustOpenLibrary opens a library.Store for tests and registers cleanup.
func MustOpenLibrary(t testing.TB, path string, readOnly bool) *library.Store {
	t.Helper()

	store, err := library.Open(context.Background(), path, library.Options{ReadOnly: readOnly})
	if err != nil {
		t.Fatalf("open library %s: %v", path, err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// Title is a convenience for building expected ReadTitles values.
func Title(value string) sql.NullString {
	return sql.NullString{String: value, Valid: true}
}

// AppendInWAL switches the database at path to WAL mode and inserts rows
// through a connection that stays open until the test ends, so the rows live
// only in the -wal sidecar. It fails the test if no -wal file results.
func AppendInWAL(t testing.TB, path string, rows ...Row) {
	t.Helper()

	query := url.Values{}
	query.Add("_pragma", "journal_mode(WAL)")
	query.Add("_pragma", "wal_autocheckpoint(0)")
	dsn := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: query.Encode()}
	db, err := sql.Open("sqlite", dsn.String())
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	for _, row := range rows {
		if _, err := db.Exec(`INSERT INTO RKVersion (uuid, name, fileName) VALUES (?, ?, ?)`, row.UUID, row.Name, row.FileName); err != nil {
			t.Fatalf("insert %s into %s: %v", row.UUID, path, err)
		}
	}

	info, err := os.Stat(path + "-wal")
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty -wal beside %s: %v", path, err)
	}
}
