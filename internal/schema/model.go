package schema

// Definition is one file-backed table definition: the logical table name
// (filename stem), the file it came from, and its sanitized SQL contents.
type Definition struct {
	Table string
	Path  string
	SQL   string
}

// TableNames returns the table names of defs in file order.
func TableNames(defs []Definition) []string {
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Table)
	}
	return names
}
