package storage

import (
	"path/filepath"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	e, err := NewEngine(filepath.Join(dir, "test.db"), 4096)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func createUsers(t *testing.T, e *Engine) {
	t.Helper()
	err := e.CreateTable("users", []ColumnDef{
		{Name: "id", SQLType: "INT", Constraints: []string{"PRIMARY_KEY"}},
		{Name: "name", SQLType: "TEXT", Constraints: []string{"NOT_NULL"}},
	})
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
}

func TestCreateTableRejectsDuplicate(t *testing.T) {
	e := newTestEngine(t)
	createUsers(t, e)
	err := e.CreateTable("USERS", []ColumnDef{{Name: "id", SQLType: "INT"}})
	if err == nil {
		t.Fatal("expected duplicate-table error")
	}
}

func TestInsertAndScanRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	createUsers(t, e)

	if err := e.InsertRow("users", []Value{int64(1), "alice"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := e.InsertRow("users", []Value{int64(2), "bob"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows, err := e.ScanTable("users")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	name, ok := rows[0].Get("name")
	if !ok || name != "alice" {
		t.Errorf("rows[0].name = %v, ok=%v", name, ok)
	}
}

func TestPrimaryKeyUniqueness(t *testing.T) {
	e := newTestEngine(t)
	createUsers(t, e)
	if err := e.InsertRow("users", []Value{int64(1), "alice"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := e.InsertRow("users", []Value{int64(1), "mallory"})
	if err == nil {
		t.Fatal("expected a primary key violation")
	}
	if _, ok := err.(*ConstraintViolation); !ok {
		t.Errorf("expected *ConstraintViolation, got %T", err)
	}
}

func TestNotNullViolation(t *testing.T) {
	e := newTestEngine(t)
	createUsers(t, e)
	err := e.InsertRow("users", []Value{int64(1), nil})
	if err == nil {
		t.Fatal("expected a NOT NULL violation")
	}
	if _, ok := err.(*ConstraintViolation); !ok {
		t.Errorf("expected *ConstraintViolation, got %T", err)
	}
}

func TestInsertRejectsAllNullRow(t *testing.T) {
	e := newTestEngine(t)
	err := e.CreateTable("t", []ColumnDef{
		{Name: "a", SQLType: "INT"},
		{Name: "b", SQLType: "TEXT"},
	})
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	err = e.InsertRow("t", []Value{nil, nil})
	if err == nil {
		t.Fatal("expected an all-null-row violation")
	}
}

func TestUpdateRowsInPlace(t *testing.T) {
	e := newTestEngine(t)
	createUsers(t, e)
	e.InsertRow("users", []Value{int64(1), "alice"})
	e.InsertRow("users", []Value{int64(2), "bobby"})

	n, err := e.UpdateRows("users", map[string]Value{"name": "allie"}, func(r *Row) bool {
		id, _ := r.Get("id")
		return id == int64(1)
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Fatalf("updated %d rows, want 1", n)
	}

	rows, _ := e.ScanTable("users")
	name, _ := rows[0].Get("name")
	if name != "allie" {
		t.Errorf("rows[0].name = %v, want allie", name)
	}
	other, _ := rows[1].Get("name")
	if other != "bobby" {
		t.Errorf("rows[1].name = %v, want bobby (unaffected)", other)
	}
}

func TestUpdateRowsRejectsSizeChange(t *testing.T) {
	e := newTestEngine(t)
	createUsers(t, e)
	e.InsertRow("users", []Value{int64(1), "al"})

	_, err := e.UpdateRows("users", map[string]Value{"name": "a-much-longer-name"}, nil)
	if err == nil {
		t.Fatal("expected an in-place update failure on size change")
	}
}

func TestDeleteRowsTombstonesMatches(t *testing.T) {
	e := newTestEngine(t)
	createUsers(t, e)
	e.InsertRow("users", []Value{int64(1), "alice"})
	e.InsertRow("users", []Value{int64(2), "bob"})
	e.InsertRow("users", []Value{int64(3), "carol"})

	n, err := e.DeleteRows("users", func(r *Row) bool {
		id, _ := r.Get("id")
		return id == int64(2)
	})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted %d rows, want 1", n)
	}

	rows, _ := e.ScanTable("users")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, r := range rows {
		id, _ := r.Get("id")
		if id == int64(2) {
			t.Fatal("deleted row still present in scan")
		}
	}
}

func TestDropTableRemovesFromCatalog(t *testing.T) {
	e := newTestEngine(t)
	createUsers(t, e)
	if err := e.DropTable("users"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := e.ScanTable("users"); err == nil {
		t.Fatal("expected scan of dropped table to fail")
	}
}

func TestInsertExtendsPageRangeAcrossManyRows(t *testing.T) {
	e := newTestEngine(t)
	err := e.CreateTable("wide", []ColumnDef{
		{Name: "id", SQLType: "INT"},
		{Name: "payload", SQLType: "TEXT"},
	})
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	const n = 400
	for i := 0; i < n; i++ {
		if err := e.InsertRow("wide", []Value{int64(i), "row-payload-value"}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	rows, err := e.ScanTable("wide")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != n {
		t.Fatalf("got %d rows, want %d", len(rows), n)
	}
}
