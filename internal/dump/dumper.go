// Package dump exports live table definitions for the pull direction.
package dump

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"db-sync/internal/dialect"
	"db-sync/internal/schema"
)

// Dumper shells out to an external schema-dump tool (mysqldump, pg_dump, or
// the tools.dump config template) once per table and sanitizes the output.
type Dumper struct {
	Dialect  dialect.Dialect
	Conn     dialect.ConnInfo
	Database string
	Template string
}

// Table returns the sanitized schema definition of one live table.
func (d *Dumper) Table(table string) (string, error) {
	var command dialect.Command
	if d.Template != "" {
		command = dialect.ExpandTemplate(d.Template, d.Conn, map[string]string{
			"db":    d.Database,
			"table": table,
		})
	} else {
		var err error
		command, err = d.Dialect.DumpCommand(d.Conn, d.Database, table)
		if err != nil {
			return "", err
		}
	}

	cmd := exec.Command(command.Name, command.Args...)
	cmd.Env = append(os.Environ(), command.Env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed for %s: %v (stderr: %s)",
			command.Name, table, err, strings.TrimSpace(stderr.String()))
	}
	return schema.StripDumpDirectives(stdout.String()), nil
}
