// Package scratch materializes the file-defined schema into an ephemeral
// database so the external diff tool can compare it against the live one
// using identical structural semantics.
package scratch

import (
	"database/sql"
	"fmt"
	"log"

	"db-sync/internal/dialect"
	"db-sync/internal/schema"
)

// LoadResult reports one definition's load into the scratch database.
type LoadResult struct {
	Table string
	Err   error
}

// Rebuild drops the scratch database if it exists and recreates it empty.
// Failure here is fatal: without a scratch database nothing can be diffed.
func Rebuild(admin *sql.DB, d dialect.Dialect, name string) error {
	if _, err := admin.Exec(d.DropDatabase(name)); err != nil {
		return fmt.Errorf("failed to drop scratch database %s: %w", name, err)
	}
	if _, err := admin.Exec(d.CreateDatabase(name)); err != nil {
		return fmt.Errorf("failed to create scratch database %s: %w", name, err)
	}
	return nil
}

// Load executes every definition's sanitized SQL against the scratch
// database, one at a time, in file order. A failing definition is logged and
// marked not sourced; the batch continues.
func Load(db *sql.DB, defs []schema.Definition) []LoadResult {
	results := make([]LoadResult, 0, len(defs))
	for _, def := range defs {
		_, err := db.Exec(def.SQL)
		if err != nil {
			log.Printf("Warning: failed to source %s into scratch: %v (continuing...)", def.Path, err)
		}
		results = append(results, LoadResult{Table: def.Table, Err: err})
	}
	return results
}

// Drop removes the scratch database after a run.
func Drop(admin *sql.DB, d dialect.Dialect, name string) error {
	if _, err := admin.Exec(d.DropDatabase(name)); err != nil {
		return fmt.Errorf("failed to drop scratch database %s: %w", name, err)
	}
	return nil
}

// Failed counts the definitions that could not be sourced.
func Failed(results []LoadResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
