package dialect

// ConnInfo carries the connection coordinates shared by the live database,
// the scratch database and the external diff/dump tools.
type ConnInfo struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Command is an external tool invocation: the executable name, its
// arguments, and any extra environment entries (e.g. PGPASSWORD).
type Command struct {
	Name string
	Args []string
	Env  []string
}

// Dialect abstracts database-specific operations.
type Dialect interface {
	Name() string

	// Connection
	DSN(conn ConnInfo, database string) string
	AdminDatabase() string // database to connect to for DROP/CREATE DATABASE

	// Metadata Queries (Schema Introspection)
	ListTablesQuery() string
	SchemaArg(database string) string // bind value for ListTablesQuery

	// DDL Generation
	QuoteIdent(name string) string
	CreateDatabase(name string) string
	DropDatabase(name string) string
	DropTableIfExists(name string) string

	// External Collaborators
	DiffCommand(conn ConnInfo, liveDB, scratchDB, table string) (Command, error)
	DumpCommand(conn ConnInfo, database, table string) (Command, error)
}
