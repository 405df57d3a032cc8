package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"phototitles/internal/logging"
)

// Options controls how a library is opened.
type Options struct {
	// ReadOnly opens the database with mode=ro and query_only so no statement
	// can modify it.
	ReadOnly bool
	Logger   *slog.Logger
}

// Store is a transactional connection to one library database.
type Store struct {
	db       *sql.DB
	tx       *sql.Tx
	path     string
	readOnly bool
	logger   *slog.Logger
}

// Open connects to the library database at path and begins a transaction.
// It fails with ErrStoreUnavailable when the file is missing, is not a SQLite
// database, or does not carry the RKVersion schema.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrStoreUnavailable)
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %q: %v", ErrStoreUnavailable, path, err)
	}
	info, err := os.Stat(absolute)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrStoreUnavailable, absolute)
	}

	db, err := sql.Open("sqlite", buildDSN(absolute, opts.ReadOnly))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStoreUnavailable, absolute, err)
	}
	// One connection keeps every statement inside the run transaction.
	db.SetMaxOpenConns(1)

	store := &Store{
		db:       db,
		path:     absolute,
		readOnly: opts.ReadOnly,
		logger:   logging.NewComponentLogger(opts.Logger, "library").With(logging.String(logging.FieldLibrary, absolute)),
	}

	if err := store.begin(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, absolute, err)
	}
	if err := verifySchema(ctx, store.tx); err != nil {
		_ = store.tx.Rollback()
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, absolute, err)
	}

	store.logger.Debug("library opened", logging.Bool("read_only", opts.ReadOnly))
	return store, nil
}

// buildDSN returns a file: URI for the modernc driver. mode=ro/rw never
// creates a missing database; only connection-scoped pragmas are set.
func buildDSN(path string, readOnly bool) string {
	query := url.Values{}
	query.Add("_pragma", "busy_timeout(5000)")
	if readOnly {
		query.Set("mode", "ro")
		query.Add("_pragma", "query_only(1)")
	} else {
		query.Set("mode", "rw")
		query.Set("_txlock", "immediate")
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: query.Encode()}
	return u.String()
}

// begin starts the store transaction. Its lifetime is bounded by Commit,
// Rollback, or Close rather than by a caller's context.
func (s *Store) begin() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.tx = tx
	return nil
}

func (s *Store) current() (*sql.Tx, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	if s.tx == nil {
		if err := s.begin(); err != nil {
			return nil, err
		}
	}
	return s.tx, nil
}

// Path returns the absolute database file path.
func (s *Store) Path() string {
	return s.path
}

// ReadOnly reports whether the store rejects writes.
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// Commit makes every update since the last Commit or Rollback durable. The
// next operation on the store starts a new transaction.
func (s *Store) Commit() error {
	tx, err := s.current()
	if err != nil {
		return err
	}
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", s.path, err)
	}
	s.logger.Info("library changes committed")
	return nil
}

// Rollback discards every update since the last Commit or Rollback. The store
// stays usable; the next operation starts a new transaction.
func (s *Store) Rollback() error {
	tx, err := s.current()
	if err != nil {
		return err
	}
	s.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback %s: %w", s.path, err)
	}
	s.logger.Info("library changes discarded")
	return nil
}

// Close discards uncommitted updates and closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
