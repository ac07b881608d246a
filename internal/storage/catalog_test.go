package storage

import "testing"

func TestCatalogRegisterAndGetCaseInsensitive(t *testing.T) {
	c := NewCatalog()
	if err := c.Register(&Table{Name: "USERS", Schema: &TableSchema{}}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Get("users"); err != nil {
		t.Errorf("get lower-case: %v", err)
	}
	if _, err := c.Get("Users"); err != nil {
		t.Errorf("get mixed-case: %v", err)
	}
}

func TestCatalogRegisterRejectsDuplicate(t *testing.T) {
	c := NewCatalog()
	c.Register(&Table{Name: "t", Schema: &TableSchema{}})
	if err := c.Register(&Table{Name: "T", Schema: &TableSchema{}}); err == nil {
		t.Fatal("expected a duplicate-table error")
	}
}

func TestCatalogListNamesSorted(t *testing.T) {
	c := NewCatalog()
	c.Register(&Table{Name: "zebra", Schema: &TableSchema{}})
	c.Register(&Table{Name: "apple", Schema: &TableSchema{}})
	names := c.ListNames()
	if len(names) != 2 || names[0] != "apple" || names[1] != "zebra" {
		t.Errorf("got %v", names)
	}
}

func TestCatalogPageRangeSpansUntilNextTable(t *testing.T) {
	c := NewCatalog()
	first := c.AllocatePageID() // 0
	c.Register(&Table{Name: "a", Schema: &TableSchema{}, FirstPageID: first})
	second := c.AllocatePageID() // 1
	c.Register(&Table{Name: "b", Schema: &TableSchema{}, FirstPageID: second})

	start, end, err := c.PageRange("a")
	if err != nil {
		t.Fatalf("page range: %v", err)
	}
	if start != 0 || end != 1 {
		t.Errorf("a's range = [%d,%d), want [0,1)", start, end)
	}

	start, end, err = c.PageRange("b")
	if err != nil {
		t.Fatalf("page range: %v", err)
	}
	if start != 1 || end != 2 {
		t.Errorf("b's range = [%d,%d), want [1,2)", start, end)
	}
}

func TestCatalogDropRemovesTable(t *testing.T) {
	c := NewCatalog()
	c.Register(&Table{Name: "t", Schema: &TableSchema{}})
	if err := c.Drop("t"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := c.Get("t"); err == nil {
		t.Fatal("expected Get to fail after Drop")
	}
}
