// Package plan builds a logical plan tree from a parsed sqlfe statement.
// Nodes are a closed tagged-union set, dispatched by the exec package's
// builder rather than through virtual dispatch.
package plan

import "github.com/minirel/minirel/internal/sqlfe"

// Node is the closed set of logical plan node types.
type Node interface{ isNode() }

// Scan reads every row of one table.
type Scan struct {
	Table string
}

func (*Scan) isNode() {}

// Filter keeps rows from Source matching Predicate.
type Filter struct {
	Source    Node
	Predicate *sqlfe.BinaryExpression
}

func (*Filter) isNode() {}

// Projection narrows/renames columns from Source. Select carries the
// parent SELECT AST so the executor builder can wrap this node with
// GroupBy/OrderBy/Limit per SPEC_FULL.md §4.9.
type Projection struct {
	Source  Node
	Columns []sqlfe.SelectColumn
	Select  *sqlfe.Select
}

func (*Projection) isNode() {}

// Join is the single supported two-table INNER JOIN.
type Join struct {
	Left, Right Node
	Clause      *sqlfe.JoinClause
}

func (*Join) isNode() {}

// Insert writes one row.
type Insert struct {
	Table  string
	Values []sqlfe.Literal
}

func (*Insert) isNode() {}

// Update rewrites matching rows.
type Update struct {
	Table       string
	Assignments []sqlfe.Assignment
	Predicate   *sqlfe.BinaryExpression
}

func (*Update) isNode() {}

// Delete tombstones matching rows.
type Delete struct {
	Table     string
	Predicate *sqlfe.BinaryExpression
}

func (*Delete) isNode() {}

// Drop removes a table.
type Drop struct {
	Table string
}

func (*Drop) isNode() {}

// ShowTables lists registered table names.
type ShowTables struct{}

func (*ShowTables) isNode() {}

// CreateTable is passed through from the AST untransformed: there is no
// executor-tree shape to build, only a direct engine call.
type CreateTable struct {
	Stmt *sqlfe.CreateTable
}

func (*CreateTable) isNode() {}

// Build turns one parsed statement into its logical plan. A Select whose
// source includes a JOIN becomes Join → Filter? → Projection; otherwise
// Scan → Filter? → Projection.
func Build(stmt sqlfe.Statement) (Node, error) {
	switch s := stmt.(type) {
	case *sqlfe.CreateTable:
		return &CreateTable{Stmt: s}, nil
	case *sqlfe.DropTable:
		return &Drop{Table: s.Table}, nil
	case *sqlfe.Insert:
		return &Insert{Table: s.Table, Values: s.Values}, nil
	case *sqlfe.Update:
		return &Update{Table: s.Table, Assignments: s.Assignments, Predicate: s.Where}, nil
	case *sqlfe.Delete:
		return &Delete{Table: s.Table, Predicate: s.Where}, nil
	case *sqlfe.ShowTables:
		return &ShowTables{}, nil
	case *sqlfe.Select:
		return buildSelect(s)
	default:
		return nil, nil
	}
}

func buildSelect(s *sqlfe.Select) (Node, error) {
	var source Node
	if s.Join != nil {
		source = &Join{
			Left:   &Scan{Table: s.Table},
			Right:  &Scan{Table: s.Join.Table},
			Clause: s.Join,
		}
	} else {
		source = &Scan{Table: s.Table}
	}

	if s.Where != nil {
		source = &Filter{Source: source, Predicate: s.Where}
	}

	return &Projection{Source: source, Columns: s.Columns, Select: s}, nil
}
