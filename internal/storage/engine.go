package storage

import "strings"

// ColumnDef is the storage layer's view of a parsed column definition: a
// name, a SQL type keyword, and the raw constraint tags the parser
// recognized (PRIMARY_KEY, NOT_NULL, UNIQUE, AUTO_INCREMENT,
// FOREIGN_KEY). Only PRIMARY_KEY and NOT_NULL are enforced; AUTO_INCREMENT
// sets ColumnSchema.AutoIncrement and the others round-trip into
// ColumnSchema.Constraints, all without effect.
type ColumnDef struct {
	Name        string
	SQLType     string
	Constraints []string
}

// Engine is the top-level storage façade: catalog + pager + file manager,
// bound together. Executors hold a non-owning reference to one Engine for
// the duration of a single statement.
type Engine struct {
	Catalog *Catalog
	pager   *Pager
	fm      *FileManager
}

// NewEngine opens (creating if absent) the database file at dbPath and
// returns a ready-to-use Engine.
func NewEngine(dbPath string, pageSize int) (*Engine, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	fm, err := NewFileManager(dbPath)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Catalog: NewCatalog(),
		pager:   NewPager(fm, pageSize),
		fm:      fm,
	}, nil
}

// Close releases the engine's file handle.
func (e *Engine) Close() error { return e.fm.Close() }

// CreateTable registers a new table, normalizing its name to upper case,
// resolving each column's SQL type keyword, extracting constraint flags,
// and zeroing the table's first (and, at birth, only) page.
func (e *Engine) CreateTable(name string, cols []ColumnDef) error {
	upper := foldUpper(name)
	if _, err := e.Catalog.Get(upper); err == nil {
		return newEngineError("table %s already exists", upper)
	}

	schemaCols := make([]ColumnSchema, 0, len(cols))
	for _, c := range cols {
		dtype, ok := ResolveSQLType(c.SQLType)
		if !ok {
			return newEngineError("unsupported SQL type: %s", c.SQLType)
		}
		cs := ColumnSchema{Name: c.Name, Dtype: dtype, Nullable: true}
		for _, tag := range c.Constraints {
			switch tag {
			case "PRIMARY_KEY":
				cs.PrimaryKey = true
				cs.Nullable = false
			case "NOT_NULL":
				cs.Nullable = false
			case "AUTO_INCREMENT":
				cs.AutoIncrement = true
			default:
				cs.Constraints = append(cs.Constraints, tag)
			}
		}
		schemaCols = append(schemaCols, cs)
	}

	firstPageID := e.Catalog.AllocatePageID()
	table := &Table{Name: upper, Schema: &TableSchema{Columns: schemaCols}, FirstPageID: firstPageID}
	if err := e.Catalog.Register(table); err != nil {
		return err
	}

	page, err := e.pager.GetPage(firstPageID)
	if err != nil {
		return err
	}
	page.Clear()
	return e.pager.FlushPage(firstPageID)
}

// InsertRow coerces values to their column dtypes, enforces NOT NULL and
// PRIMARY KEY constraints, encodes the row, and writes it to the first
// page in the table's range that has room — allocating a fresh page (and
// thereby extending the table's range) if none does.
func (e *Engine) InsertRow(name string, values []Value) error {
	table, err := e.Catalog.Get(name)
	if err != nil {
		return err
	}
	schema := table.Schema
	if len(values) != len(schema.Columns) {
		return newSchemaError("expected %d values, got %d", len(schema.Columns), len(values))
	}

	coerced := make([]Value, len(values))
	allNull := true
	for i, v := range values {
		col := schema.Columns[i]
		cv, err := CoerceValue(v, col.Dtype)
		if err != nil {
			return newSchemaError("invalid value for column %q: %v", col.Name, err)
		}
		if cv == nil {
			if !col.Nullable {
				return &ConstraintViolation{newEngineError("column %q is NOT NULL", col.Name)}
			}
		} else {
			allNull = false
		}
		coerced[i] = cv
	}
	if allNull {
		return &ConstraintViolation{newEngineError("row cannot be entirely NULL")}
	}

	for i, col := range schema.Columns {
		if !col.PrimaryKey {
			continue
		}
		dup, err := e.primaryKeyExists(name, i, coerced[i])
		if err != nil {
			return err
		}
		if dup {
			return &ConstraintViolation{newEngineError("duplicate value %v for primary key column %q", coerced[i], col.Name)}
		}
	}

	body, err := EncodeRecord(schema, coerced)
	if err != nil {
		return err
	}

	start, end, err := e.Catalog.PageRange(name)
	if err != nil {
		return err
	}
	for pageID := start; pageID < end; pageID++ {
		page, err := e.pager.GetPage(pageID)
		if err != nil {
			return err
		}
		sp, err := WrapSlottedPage(page)
		if err != nil {
			return err
		}
		ok, err := sp.AddRow(body)
		if err != nil {
			return err
		}
		if ok {
			return e.pager.FlushPage(pageID)
		}
	}

	// No existing page had room: allocate a new one, extending this
	// table's range (see Catalog.PageRange's fragility note).
	newPageID := e.Catalog.AllocatePageID()
	page, err := e.pager.GetPage(newPageID)
	if err != nil {
		return err
	}
	page.Clear()
	sp, err := WrapSlottedPage(page)
	if err != nil {
		return err
	}
	ok, err := sp.AddRow(body)
	if err != nil {
		return err
	}
	if !ok {
		return newEngineError("row too large to fit in a fresh page")
	}
	return e.pager.FlushPage(newPageID)
}

func (e *Engine) primaryKeyExists(tableName string, colIdx int, val Value) (bool, error) {
	rows, err := e.ScanTable(tableName)
	if err != nil {
		return false, err
	}
	table, _ := e.Catalog.Get(tableName)
	colName := foldLower(table.Schema.Columns[colIdx].Name)
	for _, r := range rows {
		v, _ := r.Get(colName)
		if v == val {
			return true, nil
		}
	}
	return false, nil
}

// ScanTable yields every live row in the table's page range, in page order
// and slot order within each page, as insertion-ordered Row maps keyed by
// lower-cased column name.
func (e *Engine) ScanTable(name string) ([]*Row, error) {
	table, err := e.Catalog.Get(name)
	if err != nil {
		return nil, err
	}
	start, end, err := e.Catalog.PageRange(name)
	if err != nil {
		return nil, err
	}
	var out []*Row
	for pageID := start; pageID < end; pageID++ {
		page, err := e.pager.GetPage(pageID)
		if err != nil {
			return nil, err
		}
		sp, err := WrapSlottedPage(page)
		if err != nil {
			return nil, err
		}
		bodies, err := sp.GetRows()
		if err != nil {
			return nil, err
		}
		for _, body := range bodies {
			values, err := DecodeRecord(table.Schema, body)
			if err != nil {
				return nil, err
			}
			row := NewRow()
			for i, col := range table.Schema.Columns {
				row.Set(strings.ToLower(col.Name), values[i])
			}
			out = append(out, row)
		}
	}
	return out, nil
}

// UpdateRows applies setValues (column name → raw literal, coerced to the
// column's dtype) to every row for which whereFn returns true. Only
// same-length in-place replacement is supported; any row whose re-encoded
// size differs from the original fails the whole call with an
// EngineError. Returns the number of rows updated.
func (e *Engine) UpdateRows(name string, setValues map[string]Value, whereFn func(*Row) bool) (int, error) {
	table, err := e.Catalog.Get(name)
	if err != nil {
		return 0, err
	}
	schema := table.Schema

	assignIdx := make(map[int]Value)
	for col, v := range setValues {
		idx := schema.IndexOf(col)
		if idx < 0 {
			return 0, newEngineError("unknown column %q", col)
		}
		cv, err := CoerceValue(v, schema.Columns[idx].Dtype)
		if err != nil {
			return 0, newSchemaError("invalid value for column %q: %v", col, err)
		}
		assignIdx[idx] = cv
	}

	start, end, err := e.Catalog.PageRange(name)
	if err != nil {
		return 0, err
	}
	updated := 0
	for pageID := start; pageID < end; pageID++ {
		page, err := e.pager.GetPage(pageID)
		if err != nil {
			return updated, err
		}
		sp, err := WrapSlottedPage(page)
		if err != nil {
			return updated, err
		}
		bodies, err := sp.GetRows()
		if err != nil {
			return updated, err
		}
		dirty := false
		for slotIdx, body := range bodies {
			values, err := DecodeRecord(schema, body)
			if err != nil {
				return updated, err
			}
			row := NewRow()
			for i, col := range schema.Columns {
				row.Set(strings.ToLower(col.Name), values[i])
			}
			if whereFn != nil && !whereFn(row) {
				continue
			}
			newValues := append([]Value(nil), values...)
			for idx, v := range assignIdx {
				newValues[idx] = v
			}
			newBody, err := EncodeRecord(schema, newValues)
			if err != nil {
				return updated, err
			}
			ok, err := sp.UpdateRow(slotIdx, newBody)
			if err != nil {
				return updated, err
			}
			if !ok {
				return updated, newEngineError("in-place update failed: row size changed")
			}
			dirty = true
			updated++
		}
		if dirty {
			if err := e.pager.FlushPage(pageID); err != nil {
				return updated, err
			}
		}
	}
	return updated, nil
}

// DeleteRows tombstones every row for which whereFn returns true. Returns
// the number of rows deleted.
func (e *Engine) DeleteRows(name string, whereFn func(*Row) bool) (int, error) {
	table, err := e.Catalog.Get(name)
	if err != nil {
		return 0, err
	}
	schema := table.Schema

	start, end, err := e.Catalog.PageRange(name)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for pageID := start; pageID < end; pageID++ {
		page, err := e.pager.GetPage(pageID)
		if err != nil {
			return deleted, err
		}
		sp, err := WrapSlottedPage(page)
		if err != nil {
			return deleted, err
		}
		bodies, err := sp.GetRows()
		if err != nil {
			return deleted, err
		}
		var toDelete []int
		for slotIdx, body := range bodies {
			values, err := DecodeRecord(schema, body)
			if err != nil {
				return deleted, err
			}
			row := NewRow()
			for i, col := range schema.Columns {
				row.Set(strings.ToLower(col.Name), values[i])
			}
			if whereFn == nil || whereFn(row) {
				toDelete = append(toDelete, slotIdx)
			}
		}
		// Delete in descending order so earlier indices stay valid as the
		// slotted page's live-slot list shrinks.
		for i := len(toDelete) - 1; i >= 0; i-- {
			if err := sp.DeleteRow(toDelete[i]); err != nil {
				return deleted, err
			}
			deleted++
		}
		if len(toDelete) > 0 {
			if err := e.pager.FlushPage(pageID); err != nil {
				return deleted, err
			}
		}
	}
	return deleted, nil
}

// DropTable removes a table from the catalog and zeroes its first page.
// The rest of its page range remains allocated, unreclaimed.
func (e *Engine) DropTable(name string) error {
	table, err := e.Catalog.Get(name)
	if err != nil {
		return err
	}
	if err := e.Catalog.Drop(name); err != nil {
		return err
	}
	page, err := e.pager.GetPage(table.FirstPageID)
	if err != nil {
		return err
	}
	page.Clear()
	return e.pager.FlushPage(table.FirstPageID)
}

// Stats reports coarse, human-facing storage statistics for the HTTP
// /stats endpoint.
type Stats struct {
	TableCount int
	PageCount  int
	PageSize   int
}

// Stats summarizes the engine's current catalog and allocated page count.
func (e *Engine) Stats() Stats {
	return Stats{
		TableCount: len(e.Catalog.tables),
		PageCount:  e.Catalog.nextFileID,
		PageSize:   e.pager.PageSize(),
	}
}
