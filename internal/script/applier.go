package script

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
)

// Write persists the assembled push script to path, overwriting any previous
// export. The file is written whether or not the script is executed, so a
// failed run can still be inspected and replayed by hand.
func Write(path, body string) error {
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to write push script to %s: %w", path, err)
	}
	return nil
}

// Apply executes the whole script as one multi-statement batch against the
// live connection. A dry run skips execution entirely. The script is never
// partially executed from here: the driver sends it as a single batch.
func Apply(db *sql.DB, body string, dryRun bool) error {
	if dryRun {
		log.Println("[SIMULATION] Dry-Run Mode Active: script not executed.")
		return nil
	}
	if strings.TrimSpace(body) == "" {
		log.Println("Push script is empty, nothing to execute.")
		return nil
	}
	if _, err := db.Exec(body); err != nil {
		return fmt.Errorf("failed to execute push script: %w", err)
	}
	return nil
}
