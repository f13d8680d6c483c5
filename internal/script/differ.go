package script

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"db-sync/internal/dialect"
)

// Differ computes the structural diff for one table present in both the
// scratch and the live database. It returns a ready-to-execute ALTER script
// on success; an empty string means no structural difference.
type Differ interface {
	Diff(table string) (string, error)
}

// ExecDiffer shells out to an external diff tool once per table, capturing
// its standard output. The dialect provides the default invocation; Template
// (the tools.diff config value) overrides it when set.
type ExecDiffer struct {
	Dialect   dialect.Dialect
	Conn      dialect.ConnInfo
	LiveDB    string
	ScratchDB string
	Template  string
}

func (e *ExecDiffer) Diff(table string) (string, error) {
	var command dialect.Command
	if e.Template != "" {
		command = dialect.ExpandTemplate(e.Template, e.Conn, map[string]string{
			"db1":   e.LiveDB,
			"db2":   e.ScratchDB,
			"table": table,
		})
	} else {
		var err error
		command, err = e.Dialect.DiffCommand(e.Conn, e.LiveDB, e.ScratchDB, table)
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
		// Diff tools conventionally exit non-zero when differences exist,
		// so a non-zero exit with output on stdout is still a usable diff.
		if _, exited := err.(*exec.ExitError); !exited || stdout.Len() == 0 {
			return "", fmt.Errorf("%s failed for %s: %v (stderr: %s)",
				command.Name, table, err, strings.TrimSpace(stderr.String()))
		}
	}
	return stdout.String(), nil
}
