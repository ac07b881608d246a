package exec

import (
	"github.com/minirel/minirel/internal/sqlfe"
	"github.com/minirel/minirel/internal/storage"
)

// InsertExecutor is a thin wrapper over Engine.InsertRow.
type InsertExecutor struct {
	Engine *storage.Engine
	Table  string
	Values []sqlfe.Literal
}

func (ins *InsertExecutor) Execute() ([]*storage.Row, error) {
	vals := make([]storage.Value, len(ins.Values))
	for i, lit := range ins.Values {
		vals[i] = literalToValue(lit)
	}
	if err := ins.Engine.InsertRow(ins.Table, vals); err != nil {
		return nil, err
	}
	return nil, nil
}

// UpdateExecutor constructs the where_fn closure from the parsed
// predicate, coercing the literal to the target column's dtype, and the
// set-value map, coercing each assignment the same way.
type UpdateExecutor struct {
	Engine      *storage.Engine
	Table       string
	Assignments []sqlfe.Assignment
	Predicate   *sqlfe.BinaryExpression
}

func (u *UpdateExecutor) Execute() ([]*storage.Row, error) {
	table, err := u.Engine.Catalog.Get(u.Table)
	if err != nil {
		return nil, err
	}
	setValues := make(map[string]storage.Value, len(u.Assignments))
	for _, a := range u.Assignments {
		setValues[a.Column] = coerceLiteral(a.Value, table.Schema, a.Column)
	}
	whereFn := func(row *storage.Row) bool {
		return matchesPredicate(row, u.Predicate, table.Schema)
	}
	n, err := u.Engine.UpdateRows(u.Table, setValues, whereFn)
	if err != nil {
		return nil, err
	}
	row := storage.NewRow()
	row.Set("updated", int64(n))
	return []*storage.Row{row}, nil
}

// DeleteExecutor is a thin wrapper over Engine.DeleteRows.
type DeleteExecutor struct {
	Engine    *storage.Engine
	Table     string
	Predicate *sqlfe.BinaryExpression
}

func (d *DeleteExecutor) Execute() ([]*storage.Row, error) {
	table, err := d.Engine.Catalog.Get(d.Table)
	if err != nil {
		return nil, err
	}
	whereFn := func(row *storage.Row) bool {
		return matchesPredicate(row, d.Predicate, table.Schema)
	}
	n, err := d.Engine.DeleteRows(d.Table, whereFn)
	if err != nil {
		return nil, err
	}
	row := storage.NewRow()
	row.Set("deleted", int64(n))
	return []*storage.Row{row}, nil
}

// DropTableExecutor is a thin wrapper over Engine.DropTable.
type DropTableExecutor struct {
	Engine *storage.Engine
	Table  string
}

func (d *DropTableExecutor) Execute() ([]*storage.Row, error) {
	if err := d.Engine.DropTable(d.Table); err != nil {
		return nil, err
	}
	return nil, nil
}

// CreateTableExecutor is a thin wrapper over Engine.CreateTable.
type CreateTableExecutor struct {
	Engine *storage.Engine
	Stmt   *sqlfe.CreateTable
}

func (c *CreateTableExecutor) Execute() ([]*storage.Row, error) {
	cols := make([]storage.ColumnDef, len(c.Stmt.Columns))
	for i, col := range c.Stmt.Columns {
		cols[i] = storage.ColumnDef{Name: col.Name, SQLType: col.SQLType, Constraints: col.Constraints}
	}
	if err := c.Engine.CreateTable(c.Stmt.Table, cols); err != nil {
		return nil, err
	}
	return nil, nil
}

// ShowTablesExecutor lists every registered table name as a single-column
// row set.
type ShowTablesExecutor struct {
	Engine *storage.Engine
}

func (s *ShowTablesExecutor) Execute() ([]*storage.Row, error) {
	names := s.Engine.Catalog.ListNames()
	out := make([]*storage.Row, 0, len(names))
	for _, n := range names {
		row := storage.NewRow()
		row.Set("table", n)
		out = append(out, row)
	}
	return out, nil
}
