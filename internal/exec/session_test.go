package exec_test

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/minirel/minirel/internal/exec"
	"github.com/minirel/minirel/internal/storage"
)

func newEngine(t *testing.T) *storage.Engine {
	t.Helper()
	dir := t.TempDir()
	e, err := storage.NewEngine(filepath.Join(dir, "test.db"), 4096)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func run(t *testing.T, e *storage.Engine, sql string) *exec.Result {
	t.Helper()
	res, err := exec.Run(e, sql)
	if err != nil {
		t.Fatalf("run %q: %v", sql, err)
	}
	return res
}

func TestCreateInsertAndSelectWithFilter(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT NOT NULL, age INT);")
	run(t, e, "INSERT INTO users VALUES (1, 'alice', 30);")
	run(t, e, "INSERT INTO users VALUES (2, 'bob', 25);")

	res := run(t, e, "SELECT * FROM users WHERE age > 26;")
	if len(res.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(res.Rows))
	}
	name, _ := res.Rows[0].Get("name")
	if name != "alice" {
		t.Errorf("got name %v, want alice", name)
	}
}

func TestUpdateThenVerify(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT);")
	run(t, e, "INSERT INTO users VALUES (1, 'alice');")

	run(t, e, "UPDATE users SET name = 'allie' WHERE id = 1;")

	res := run(t, e, "SELECT * FROM users WHERE id = 1;")
	name, _ := res.Rows[0].Get("name")
	if name != "allie" {
		t.Errorf("got name %v, want allie", name)
	}
}

func TestDuplicatePrimaryKeyReturnsConstraintViolation(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT);")
	run(t, e, "INSERT INTO users VALUES (1, 'alice');")

	_, err := exec.Run(e, "INSERT INTO users VALUES (1, 'mallory');")
	if err == nil {
		t.Fatal("expected a primary key violation")
	}
	if _, ok := err.(*storage.ConstraintViolation); !ok {
		t.Errorf("expected *storage.ConstraintViolation, got %T", err)
	}
}

func TestNullInNotNullColumnReturnsConstraintViolation(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT NOT NULL);")

	_, err := exec.Run(e, "INSERT INTO users VALUES (1, NULL);")
	if err == nil {
		t.Fatal("expected a NOT NULL violation")
	}
	if _, ok := err.(*storage.ConstraintViolation); !ok {
		t.Errorf("expected *storage.ConstraintViolation, got %T", err)
	}
}

func TestInnerJoinLeftWinsOnKeyCollision(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT);")
	run(t, e, "CREATE TABLE orders (id INT PRIMARY KEY, user_id INT, name TEXT);")
	run(t, e, "INSERT INTO users VALUES (1, 'alice');")
	run(t, e, "INSERT INTO orders VALUES (100, 1, 'widget');")

	res := run(t, e, "SELECT * FROM orders o INNER JOIN users u ON o.user_id = u.id;")
	if len(res.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(res.Rows))
	}
	// Both tables have a "name" column; the left (orders) side must win.
	name, _ := res.Rows[0].Get("name")
	if name != "widget" {
		t.Errorf("got name %v, want widget (left side should win the collision)", name)
	}
}

func TestGroupByCount(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE sales (id INT PRIMARY KEY, region TEXT);")
	run(t, e, "INSERT INTO sales VALUES (1, 'east');")
	run(t, e, "INSERT INTO sales VALUES (2, 'east');")
	run(t, e, "INSERT INTO sales VALUES (3, 'west');")

	res := run(t, e, "SELECT region, COUNT(*) FROM sales GROUP BY region;")
	if len(res.Rows) != 2 {
		t.Fatalf("got %d groups, want 2", len(res.Rows))
	}
	counts := map[string]int64{}
	for _, r := range res.Rows {
		region, _ := r.Get("region")
		count, _ := r.Get("count(*)")
		counts[region.(string)] = count.(int64)
	}
	if counts["east"] != 2 || counts["west"] != 1 {
		t.Errorf("got counts %v", counts)
	}
}

func TestLimitAndOffset(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE pages (id INT PRIMARY KEY);")
	for i := 1; i <= 10; i++ {
		run(t, e, "INSERT INTO pages VALUES ("+strconv.Itoa(i)+");")
	}

	res := run(t, e, "SELECT * FROM pages ORDER BY id LIMIT 3 OFFSET 2;")
	if len(res.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(res.Rows))
	}
	first, _ := res.Rows[0].Get("id")
	if first != int64(3) {
		t.Errorf("got first id %v, want 3", first)
	}
}

func TestOrderByNumericNotLexical(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE ages (id INT PRIMARY KEY, age INT);")
	run(t, e, "INSERT INTO ages VALUES (1, 9);")
	run(t, e, "INSERT INTO ages VALUES (2, 10);")
	run(t, e, "INSERT INTO ages VALUES (3, 2);")

	res := run(t, e, "SELECT * FROM ages ORDER BY age;")
	want := []int64{2, 9, 10}
	for i, w := range want {
		v, _ := res.Rows[i].Get("age")
		if v != w {
			t.Errorf("row %d: got age %v, want %d", i, v, w)
		}
	}
}

func TestDeleteThenScanOmitsRow(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT);")
	run(t, e, "INSERT INTO users VALUES (1, 'alice');")
	run(t, e, "INSERT INTO users VALUES (2, 'bob');")

	run(t, e, "DELETE FROM users WHERE id = 1;")

	res := run(t, e, "SELECT * FROM users;")
	if len(res.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(res.Rows))
	}
	id, _ := res.Rows[0].Get("id")
	if id != int64(2) {
		t.Errorf("got id %v, want 2", id)
	}
}

func TestMissingSemicolonProducesWarning(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE t (id INT);")
	res, err := exec.Run(e, "SELECT * FROM t")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Warning == "" {
		t.Error("expected a missing-semicolon warning")
	}
}

func TestShowTablesListsCreatedTables(t *testing.T) {
	e := newEngine(t)
	run(t, e, "CREATE TABLE b (id INT);")
	run(t, e, "CREATE TABLE a (id INT);")

	res := run(t, e, "SHOW TABLES;")
	if len(res.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(res.Rows))
	}
}
