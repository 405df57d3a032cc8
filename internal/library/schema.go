package library

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// versionTable is the photo version table shared by iPhoto and Photos libraries.
const versionTable = "RKVersion"

const versionColumns = "name, uuid, fileName"

var requiredColumns = []string{"name", "uuid", "filename"}

// verifySchema checks that RKVersion exists with the columns this package reads.
func verifySchema(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT name FROM pragma_table_info('`+versionTable+`')`)
	if err != nil {
		return fmt.Errorf("read %s schema: %w", versionTable, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var column string
		if err := rows.Scan(&column); err != nil {
			return fmt.Errorf("scan %s column: %w", versionTable, err)
		}
		present[strings.ToLower(column)] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read %s schema: %w", versionTable, err)
	}

	if len(present) == 0 {
		return fmt.Errorf("table %s not found", versionTable)
	}
	var missing []string
	for _, column := range requiredColumns {
		if !present[column] {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s lacks columns %s", versionTable, strings.Join(missing, ", "))
	}
	return nil
}

func scanVersion(scanner interface{ Scan(dest ...any) error }) (Version, error) {
	var (
		name     sql.NullString
		uuid     sql.NullString
		fileName sql.NullString
	)
	if err := scanner.Scan(&name, &uuid, &fileName); err != nil {
		return Version{}, err
	}
	return Version{
		UUID:     uuid.String,
		Title:    name.String,
		HasTitle: name.Valid,
		FileName: fileName.String,
	}, nil
}
