package library

import (
	"context"
	"fmt"
	"iter"

	"phototitles/internal/logging"
)

// Count returns the number of versions matching the filter.
func (s *Store) Count(ctx context.Context, filter TitleFilter, convention AbsentConvention) (int, error) {
	tx, err := s.current()
	if err != nil {
		return 0, err
	}
	predicate, err := filter.predicate(convention)
	if err != nil {
		return 0, err
	}
	var count int
	query := `SELECT COUNT(*) FROM ` + versionTable + ` WHERE ` + predicate
	if err := tx.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s versions: %w", filter, err)
	}
	return count, nil
}

// Versions yields the versions matching the filter in the database's natural
// order. The cursor stays open until the loop finishes or breaks; callers must
// not update the same store while iterating.
func (s *Store) Versions(ctx context.Context, filter TitleFilter, convention AbsentConvention) iter.Seq2[Version, error] {
	return func(yield func(Version, error) bool) {
		tx, err := s.current()
		if err != nil {
			yield(Version{}, err)
			return
		}
		predicate, err := filter.predicate(convention)
		if err != nil {
			yield(Version{}, err)
			return
		}

		rows, err := tx.QueryContext(ctx, `SELECT `+versionColumns+` FROM `+versionTable+` WHERE `+predicate)
		if err != nil {
			yield(Version{}, fmt.Errorf("query %s versions: %w", filter, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			version, err := scanVersion(rows)
			if err != nil {
				yield(Version{}, fmt.Errorf("scan version: %w", err))
				return
			}
			if !yield(version, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Version{}, fmt.Errorf("iterate %s versions: %w", filter, err))
		}
	}
}

// Lookup returns the version with the given uuid. The boolean is false when
// no version matches. More than one match fails with ErrDataIntegrity.
func (s *Store) Lookup(ctx context.Context, uuid string) (Version, bool, error) {
	tx, err := s.current()
	if err != nil {
		return Version{}, false, err
	}
	rows, err := tx.QueryContext(ctx, `SELECT `+versionColumns+` FROM `+versionTable+` WHERE uuid = ? LIMIT 2`, uuid)
	if err != nil {
		return Version{}, false, fmt.Errorf("lookup %s: %w", uuid, err)
	}
	defer rows.Close()

	var (
		found   Version
		matches int
	)
	for rows.Next() {
		version, err := scanVersion(rows)
		if err != nil {
			return Version{}, false, fmt.Errorf("scan %s: %w", uuid, err)
		}
		found = version
		matches++
	}
	if err := rows.Err(); err != nil {
		return Version{}, false, fmt.Errorf("lookup %s: %w", uuid, err)
	}

	switch matches {
	case 0:
		return Version{}, false, nil
	case 1:
		return found, true, nil
	default:
		return Version{}, false, fmt.Errorf("%w: uuid %s matches more than one version in %s", ErrDataIntegrity, uuid, s.path)
	}
}

// SetTitle sets the title of the version with the given uuid and returns the
// number of rows changed. The change stays pending until Commit.
func (s *Store) SetTitle(ctx context.Context, uuid, title string) (int64, error) {
	if s != nil && s.readOnly {
		return 0, ErrReadOnly
	}
	tx, err := s.current()
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `UPDATE `+versionTable+` SET name = ? WHERE uuid = ?`, title, uuid)
	if err != nil {
		return 0, fmt.Errorf("set title for %s: %w", uuid, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set title for %s: %w", uuid, err)
	}
	s.logger.Debug("title set", logging.String("uuid", uuid), logging.Int64("rows_affected", affected))
	if affected > 1 {
		return affected, fmt.Errorf("%w: update of uuid %s touched %d versions", ErrDataIntegrity, uuid, affected)
	}
	return affected, nil
}
