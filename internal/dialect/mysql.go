package dialect

import (
	"fmt"
)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string {
	return "mysql"
}

func (d *MysqlDialect) DSN(conn ConnInfo, database string) string {
	// multiStatements lets the assembled push script run as one batch.
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?multiStatements=true",
		conn.User, conn.Password, conn.Host, conn.Port, database)
}

func (d *MysqlDialect) AdminDatabase() string {
	// MySQL allows connecting with no default database selected.
	return ""
}

func (d *MysqlDialect) ListTablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MysqlDialect) SchemaArg(database string) string {
	return database
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return "`" + name + "`"
}

func (d *MysqlDialect) CreateDatabase(name string) string {
	return "CREATE DATABASE " + d.QuoteIdent(name)
}

func (d *MysqlDialect) DropDatabase(name string) string {
	return "DROP DATABASE IF EXISTS " + d.QuoteIdent(name)
}

func (d *MysqlDialect) DropTableIfExists(name string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", d.QuoteIdent(name))
}

func (d *MysqlDialect) DiffCommand(conn ConnInfo, liveDB, scratchDB, table string) (Command, error) {
	server := fmt.Sprintf("%s:%s@%s:%d", conn.User, conn.Password, conn.Host, conn.Port)
	return Command{
		Name: "mysqldiff",
		Args: []string{
			"--server1=" + server,
			"--server2=" + server,
			"--difftype=sql",
			"--changes-for=server1",
			"--quiet",
			fmt.Sprintf("%s.%s:%s.%s", liveDB, table, scratchDB, table),
		},
	}, nil
}

func (d *MysqlDialect) DumpCommand(conn ConnInfo, database, table string) (Command, error) {
	return Command{
		Name: "mysqldump",
		Args: []string{
			"--no-data",
			"--skip-comments",
			"--skip-add-drop-table",
			"-h", conn.Host,
			"-P", fmt.Sprintf("%d", conn.Port),
			"-u", conn.User,
			"-p" + conn.Password,
			database,
			table,
		},
	}, nil
}
