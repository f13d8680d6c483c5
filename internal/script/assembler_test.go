package script_test

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"db-sync/internal/dialect"
	"db-sync/internal/reconcile"
	"db-sync/internal/schema"
	"db-sync/internal/script"
)

type differFunc func(table string) (string, error)

func (f differFunc) Diff(table string) (string, error) { return f(table) }

func TestAssemble_Order(t *testing.T) {
	// Files {a.sql, b.sql}, live {b, c}: expect CREATE a, diff b, DROP c.
	defs := []schema.Definition{
		{Table: "a", SQL: "CREATE TABLE a (id INT);"},
		{Table: "b", SQL: "CREATE TABLE b (id INT);"},
	}
	rec := reconcile.Tables([]string{"a", "b"}, []string{"b", "c"})
	d := dialect.GetDialect("mysql")

	differ := differFunc(func(table string) (string, error) {
		return fmt.Sprintf("ALTER TABLE `%s` ADD COLUMN x INT;", table), nil
	})

	body, stats := script.Assemble(d, rec, defs, differ, 1, nil)
	want := "CREATE TABLE a (id INT);\n" +
		"ALTER TABLE `b` ADD COLUMN x INT;\n" +
		"DROP TABLE IF EXISTS `c`;\n"
	if body != want {
		t.Errorf("script = %q, want %q", body, want)
	}
	if stats.Created != 1 || stats.Altered != 1 || stats.Dropped != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestAssemble_EndToEndScenario(t *testing.T) {
	// users.sql and orders.sql on disk; orders and legacy live.
	defs := []schema.Definition{
		{Table: "users", SQL: "CREATE TABLE users (id INT, PRIMARY KEY (id));"},
		{Table: "orders", SQL: "CREATE TABLE orders (id INT);"},
	}
	rec := reconcile.Tables([]string{"users", "orders"}, []string{"orders", "legacy"})
	d := dialect.GetDialect("mysql")

	// No structural difference for orders.
	differ := differFunc(func(table string) (string, error) { return "", nil })

	body, stats := script.Assemble(d, rec, defs, differ, 1, nil)
	want := "CREATE TABLE users (id INT, PRIMARY KEY (id));\n" +
		"\n" +
		"DROP TABLE IF EXISTS `legacy`;\n"
	if body != want {
		t.Errorf("script = %q, want %q", body, want)
	}
	if stats.Created != 1 || stats.Dropped != 1 || stats.Unchanged != 1 || stats.Altered != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestAssemble_EmptyDiffStillEmitsNewline(t *testing.T) {
	defs := []schema.Definition{{Table: "b", SQL: "CREATE TABLE b (id INT);"}}
	rec := reconcile.Tables([]string{"b"}, []string{"b"})
	d := dialect.GetDialect("mysql")
	differ := differFunc(func(table string) (string, error) { return "", nil })

	body, stats := script.Assemble(d, rec, defs, differ, 1, nil)
	if body != "\n" {
		t.Errorf("script = %q, want a single blank line", body)
	}
	if stats.Unchanged != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestAssemble_DiffFailureDegradesToNoOp(t *testing.T) {
	defs := []schema.Definition{
		{Table: "a", SQL: "CREATE TABLE a (id INT);"},
		{Table: "b", SQL: "CREATE TABLE b (id INT);"},
	}
	rec := reconcile.Tables([]string{"a", "b"}, []string{"b"})
	d := dialect.GetDialect("mysql")
	differ := differFunc(func(table string) (string, error) {
		return "", errors.New("mysqldiff exploded")
	})

	body, stats := script.Assemble(d, rec, defs, differ, 1, nil)
	want := "CREATE TABLE a (id INT);\n\n"
	if body != want {
		t.Errorf("script = %q, want %q", body, want)
	}
	if stats.DiffFailures != 1 {
		t.Errorf("DiffFailures = %d, want 1", stats.DiffFailures)
	}
	if strings.Contains(body, "exploded") {
		t.Error("error text must not leak into the script")
	}
}

func TestAssemble_ConcurrentDiffsKeepCanonicalOrder(t *testing.T) {
	var files []string
	var defs []schema.Definition
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("t%d", i)
		files = append(files, name)
		defs = append(defs, schema.Definition{Table: name, SQL: "CREATE TABLE " + name + " (id INT);"})
	}
	rec := reconcile.Tables(files, files)
	d := dialect.GetDialect("mysql")

	// Later tables finish first; the script must still follow merged order.
	differ := differFunc(func(table string) (string, error) {
		var i int
		fmt.Sscanf(table, "t%d", &i)
		time.Sleep(time.Duration(5-i) * 10 * time.Millisecond)
		return "-- " + table + ";", nil
	})

	var progressed atomic.Int32
	body, stats := script.Assemble(d, rec, defs, differ, 4, func() { progressed.Add(1) })
	want := "-- t0;\n-- t1;\n-- t2;\n-- t3;\n-- t4;\n-- t5;\n"
	if body != want {
		t.Errorf("script = %q, want %q", body, want)
	}
	if stats.Altered != 6 {
		t.Errorf("Altered = %d, want 6", stats.Altered)
	}
	if progressed.Load() != 6 {
		t.Errorf("progress callback fired %d times, want 6", progressed.Load())
	}
}
