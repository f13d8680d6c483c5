package dialect

import (
	"fmt"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string {
	return "sqlserver"
}

func (d *MSSQLDialect) DSN(conn ConnInfo, database string) string {
	if database == "" {
		database = d.AdminDatabase()
	}
	return fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s",
		conn.User, conn.Password, conn.Host, conn.Port, database)
}

func (d *MSSQLDialect) AdminDatabase() string {
	return "master"
}

func (d *MSSQLDialect) ListTablesQuery() string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_CATALOG = @p1 AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MSSQLDialect) SchemaArg(database string) string {
	return database
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return "[" + name + "]"
}

func (d *MSSQLDialect) CreateDatabase(name string) string {
	return "CREATE DATABASE " + d.QuoteIdent(name)
}

func (d *MSSQLDialect) DropDatabase(name string) string {
	return "DROP DATABASE IF EXISTS " + d.QuoteIdent(name)
}

func (d *MSSQLDialect) DropTableIfExists(name string) string {
	// IF EXISTS requires SQL Server 2016+.
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", d.QuoteIdent(name))
}

func (d *MSSQLDialect) DiffCommand(conn ConnInfo, liveDB, scratchDB, table string) (Command, error) {
	return Command{}, fmt.Errorf("no default structural diff tool for sqlserver: set tools.diff in the config file")
}

func (d *MSSQLDialect) DumpCommand(conn ConnInfo, database, table string) (Command, error) {
	return Command{}, fmt.Errorf("no default schema dump tool for sqlserver: set tools.dump in the config file")
}
