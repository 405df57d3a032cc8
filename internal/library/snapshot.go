package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// Snapshot writes a consistent single-file copy of the library database at
// src to dst and returns the number of versions the copy holds. The copy is
// produced by SQLite, so committed pages still sitting in a -wal sidecar are
// included. src is opened read-only; dst must not exist.
func Snapshot(ctx context.Context, src, dst string) (int, error) {
	if _, err := os.Stat(dst); err == nil {
		return 0, fmt.Errorf("snapshot %s: %s already exists", src, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("snapshot %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create snapshot directory: %w", err)
	}

	source, err := sql.Open("sqlite", snapshotDSN(src))
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %v", ErrStoreUnavailable, src, err)
	}
	defer source.Close()
	source.SetMaxOpenConns(1)

	if _, err := source.ExecContext(ctx, `VACUUM INTO ?`, dst); err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("snapshot %s: %w", src, err)
	}

	count, err := verifySnapshot(ctx, dst)
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("snapshot %s: %w", src, err)
	}
	return count, nil
}

// verifySnapshot runs quick_check on the copy, confirms it still carries the
// version schema, and counts its versions.
func verifySnapshot(ctx context.Context, path string) (int, error) {
	db, err := sql.Open("sqlite", snapshotDSN(path))
	if err != nil {
		return 0, err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	var check string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check`).Scan(&check); err != nil {
		return 0, fmt.Errorf("quick_check: %w", err)
	}
	if check != "ok" {
		return 0, fmt.Errorf("quick_check: %s", check)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := verifySchema(ctx, tx); err != nil {
		return 0, err
	}
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+versionTable).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", versionTable, err)
	}
	return count, nil
}

// snapshotDSN opens read-only. Unlike buildDSN it leaves query_only unset
// because VACUUM INTO writes its output file.
func snapshotDSN(path string) string {
	query := url.Values{}
	query.Set("mode", "ro")
	query.Add("_pragma", "busy_timeout(5000)")
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: query.Encode()}
	return u.String()
}
