package schema

import (
	"database/sql"
	"fmt"

	"db-sync/internal/dialect"
)

// LiveTables returns the table names currently present in the given database,
// in the order the server reports them. Any failure here is fatal to the run:
// no side effects have been performed yet.
func LiveTables(db *sql.DB, d dialect.Dialect, database string) ([]string, error) {
	rows, err := db.Query(d.ListTablesQuery(), d.SchemaArg(database))
	if err != nil {
		return nil, fmt.Errorf("failed to query live tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}
