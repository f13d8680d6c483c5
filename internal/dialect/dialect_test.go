package dialect_test

import (
	"strings"
	"testing"

	"db-sync/internal/dialect"
)

func TestGetDialect(t *testing.T) {
	cases := map[string]string{
		"mysql":     "mysql",
		"postgres":  "postgres",
		"sqlserver": "sqlserver",
		"mssql":     "sqlserver",
		"":          "mysql", // default
	}
	for driver, want := range cases {
		if got := dialect.GetDialect(driver).Name(); got != want {
			t.Errorf("GetDialect(%q).Name() = %q, want %q", driver, got, want)
		}
	}
}

func TestMysqlDSN(t *testing.T) {
	d := dialect.GetDialect("mysql")
	conn := dialect.ConnInfo{Host: "db.local", Port: 3307, User: "root", Password: "secret"}

	dsn := d.DSN(conn, "shop")
	if dsn != "root:secret@tcp(db.local:3307)/shop?multiStatements=true" {
		t.Errorf("unexpected DSN: %s", dsn)
	}
	if !strings.Contains(dsn, "multiStatements=true") {
		t.Error("push script needs multiStatements enabled")
	}
}

func TestPostgresDSN_AdminFallback(t *testing.T) {
	d := dialect.GetDialect("postgres")
	conn := dialect.ConnInfo{Host: "db.local", Port: 5432, User: "pg", Password: "pw"}

	if dsn := d.DSN(conn, ""); dsn != "postgres://pg:pw@db.local:5432/postgres?sslmode=disable" {
		t.Errorf("unexpected admin DSN: %s", dsn)
	}
}

func TestDropTableIfExists(t *testing.T) {
	cases := map[string]string{
		"mysql":     "DROP TABLE IF EXISTS `legacy`;",
		"postgres":  `DROP TABLE IF EXISTS "legacy";`,
		"sqlserver": "DROP TABLE IF EXISTS [legacy];",
	}
	for driver, want := range cases {
		if got := dialect.GetDialect(driver).DropTableIfExists("legacy"); got != want {
			t.Errorf("%s: got %q, want %q", driver, got, want)
		}
	}
}

func TestMysqlDiffCommand(t *testing.T) {
	d := dialect.GetDialect("mysql")
	conn := dialect.ConnInfo{Host: "db.local", Port: 3306, User: "root", Password: "pw"}

	cmd, err := d.DiffCommand(conn, "shop", "db_sync_scratch", "orders")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "mysqldiff" {
		t.Errorf("unexpected tool: %s", cmd.Name)
	}
	joined := strings.Join(cmd.Args, " ")
	if !strings.Contains(joined, "shop.orders:db_sync_scratch.orders") {
		t.Errorf("table pair missing from args: %v", cmd.Args)
	}
	if !strings.Contains(joined, "root:pw@db.local:3306") {
		t.Errorf("server credentials missing from args: %v", cmd.Args)
	}
}

func TestPostgresDiffCommand_RequiresConfig(t *testing.T) {
	d := dialect.GetDialect("postgres")
	if _, err := d.DiffCommand(dialect.ConnInfo{}, "a", "b", "t"); err == nil {
		t.Error("postgres has no default diff tool; expected an error")
	}
}

func TestExpandTemplate(t *testing.T) {
	conn := dialect.ConnInfo{Host: "db.local", Port: 5432, User: "pg", Password: "pw"}
	cmd := dialect.ExpandTemplate(
		"migra --user {user} postgresql:///{db1} postgresql:///{db2}",
		conn,
		map[string]string{"db1": "live", "db2": "scratch"},
	)

	if cmd.Name != "migra" {
		t.Errorf("unexpected tool: %s", cmd.Name)
	}
	want := []string{"--user", "pg", "postgresql:///live", "postgresql:///scratch"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("args = %v, want %v", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}
}

func TestExpandTemplate_Empty(t *testing.T) {
	if cmd := dialect.ExpandTemplate("", dialect.ConnInfo{}, nil); cmd.Name != "" {
		t.Errorf("empty template should produce an empty command, got %+v", cmd)
	}
}
