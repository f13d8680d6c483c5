package schema

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FileSuffix is the recognized extension for table definition files.
const FileSuffix = ".sql"

// ListDefinitions reads every .sql file in dir into a Definition, deriving
// the table name from the filename stem. Subdirectories and files with other
// extensions are skipped with a log line. An empty result is an error:
// there is nothing to push.
func ListDefinitions(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory %s: %w", dir, err)
	}

	var defs []Definition
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileSuffix) {
			log.Printf("Skipping %s (not a %s file)", entry.Name(), FileSuffix)
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		defs = append(defs, Definition{
			Table: strings.TrimSuffix(entry.Name(), FileSuffix),
			Path:  path,
			SQL:   StripDumpDirectives(string(raw)),
		})
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("no %s files found in %s: nothing to push", FileSuffix, dir)
	}
	return defs, nil
}
