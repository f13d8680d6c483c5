package dialect

import (
	"fmt"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(conn ConnInfo, database string) string {
	if database == "" {
		database = d.AdminDatabase()
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		conn.User, conn.Password, conn.Host, conn.Port, database)
}

func (d *PostgresDialect) AdminDatabase() string {
	// Postgres always needs a database to connect to; the maintenance
	// database is the conventional place to run DROP/CREATE DATABASE from.
	return "postgres"
}

func (d *PostgresDialect) ListTablesQuery() string {
	// use $1 placeholder
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = $1 AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *PostgresDialect) SchemaArg(database string) string {
	return "public"
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return `"` + name + `"`
}

func (d *PostgresDialect) CreateDatabase(name string) string {
	return "CREATE DATABASE " + d.QuoteIdent(name)
}

func (d *PostgresDialect) DropDatabase(name string) string {
	return "DROP DATABASE IF EXISTS " + d.QuoteIdent(name)
}

func (d *PostgresDialect) DropTableIfExists(name string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", d.QuoteIdent(name))
}

func (d *PostgresDialect) DiffCommand(conn ConnInfo, liveDB, scratchDB, table string) (Command, error) {
	// No diff tool ships with postgres; the user must configure one
	// (e.g. migra) via tools.diff.
	return Command{}, fmt.Errorf("no default structural diff tool for postgres: set tools.diff in the config file")
}

func (d *PostgresDialect) DumpCommand(conn ConnInfo, database, table string) (Command, error) {
	return Command{
		Name: "pg_dump",
		Args: []string{
			"--schema-only",
			"--no-owner",
			"--table=" + table,
			"-h", conn.Host,
			"-p", fmt.Sprintf("%d", conn.Port),
			"-U", conn.User,
			database,
		},
		Env: []string{"PGPASSWORD=" + conn.Password},
	}, nil
}
