package dialect

import (
	"fmt"
	"strings"
)

// ExpandTemplate renders a tools.diff / tools.dump command template into an
// executable Command. The template is split on whitespace after placeholder
// substitution, so values containing spaces are not supported.
//
// Recognized placeholders: {host} {port} {user} {password} plus whatever the
// caller supplies in extra (e.g. {db}, {db1}, {db2}, {table}).
func ExpandTemplate(tmpl string, conn ConnInfo, extra map[string]string) Command {
	pairs := []string{
		"{host}", conn.Host,
		"{port}", fmt.Sprintf("%d", conn.Port),
		"{user}", conn.User,
		"{password}", conn.Password,
	}
	for k, v := range extra {
		pairs = append(pairs, "{"+k+"}", v)
	}
	fields := strings.Fields(strings.NewReplacer(pairs...).Replace(tmpl))
	if len(fields) == 0 {
		return Command{}
	}
	return Command{Name: fields[0], Args: fields[1:]}
}
