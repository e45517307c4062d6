package schema

import (
	"context"
	"database/sql"
	"fmt"
)

// introspectSQL lists user table columns in declaration order.
const introspectSQL = `
SELECT table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema NOT IN ('information_schema', 'pg_catalog')
ORDER BY table_name, ordinal_position`

// Introspect builds a Descriptor by querying information_schema on the
// open connection. The result is the session's schema for its lifetime.
func Introspect(ctx context.Context, db *sql.DB) (*Descriptor, error) {
	rows, err := db.QueryContext(ctx, introspectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query information_schema: %w", err)
	}
	defer rows.Close()

	descriptor := &Descriptor{Tables: make(map[string]Table)}

	for rows.Next() {
		var tableName, columnName, dataType string
		if err := rows.Scan(&tableName, &columnName, &dataType); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}

		table := descriptor.Tables[tableName]
		table.Name = tableName
		table.Columns = append(table.Columns, Column{Name: columnName, Type: dataType})
		descriptor.Tables[tableName] = table
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read column metadata: %w", err)
	}

	if len(descriptor.Tables) == 0 {
		return nil, fmt.Errorf("no tables found in database")
	}

	return descriptor, nil
}
