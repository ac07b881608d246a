package storage

import (
	"sort"

	"github.com/samber/lo"
)

// Table is the catalog's record of one table: its canonical (upper-cased)
// name, its schema, and the page id where its range begins.
type Table struct {
	Name        string
	Schema      *TableSchema
	FirstPageID int
}

// Catalog is a case-insensitive registry of tables, plus the global page
// id counter tables allocate from. A table's page range is derived on
// demand from every table's FirstPageID (see PageRange) rather than
// stored explicitly — see the page-range fragility note in SPEC_FULL.md §9.
type Catalog struct {
	tables     map[string]*Table // keyed by upper-cased name
	nextFileID int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]*Table)}
}

// Register adds a table to the catalog. Returns an EngineError if a table
// with the same (case-insensitive) name already exists.
func (c *Catalog) Register(t *Table) error {
	key := foldUpper(t.Name)
	if _, exists := c.tables[key]; exists {
		return newEngineError("table %s already exists", t.Name)
	}
	c.tables[key] = t
	return nil
}

// Get looks up a table by name, case-insensitively.
func (c *Catalog) Get(name string) (*Table, error) {
	t, ok := c.tables[foldUpper(name)]
	if !ok {
		return nil, newEngineError("table %s does not exist", name)
	}
	return t, nil
}

// Drop removes a table from the catalog. Its page range is not reclaimed
// from the global id sequence.
func (c *Catalog) Drop(name string) error {
	key := foldUpper(name)
	if _, ok := c.tables[key]; !ok {
		return newEngineError("table %s does not exist", name)
	}
	delete(c.tables, key)
	return nil
}

// ListNames returns every registered table's canonical name, sorted.
func (c *Catalog) ListNames() []string {
	names := lo.MapToSlice(c.tables, func(_ string, t *Table) string { return t.Name })
	sort.Strings(names)
	return names
}

// AllocatePageID hands out the next global page id.
func (c *Catalog) AllocatePageID() int {
	id := c.nextFileID
	c.nextFileID++
	return id
}

// PageRange returns the half-open page-id interval a table owns:
// [first, next), where next is the next-higher table's FirstPageID, or
// the global next-file id if this table owns the highest range.
//
// This is recomputed on every call by sorting all tables' first-page ids,
// which is the scheme spec.md documents as fragile: growing an earlier
// table after a later one has been created would interleave pages across
// tables. That is replicated deliberately, not fixed, per SPEC_FULL.md §9.
func (c *Catalog) PageRange(name string) (int, int, error) {
	t, err := c.Get(name)
	if err != nil {
		return 0, 0, err
	}
	starts := make([]int, 0, len(c.tables))
	for _, other := range c.tables {
		starts = append(starts, other.FirstPageID)
	}
	sort.Ints(starts)
	end := c.nextFileID
	for _, s := range starts {
		if s > t.FirstPageID {
			end = s
			break
		}
	}
	return t.FirstPageID, end, nil
}
