package library_test

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func writeForeignDatabase(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE RKMaster (modelId INTEGER PRIMARY KEY, imagePath VARCHAR)`); err != nil {
		t.Fatal(err)
	}
}
