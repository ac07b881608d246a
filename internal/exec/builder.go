package exec

import (
	"github.com/minirel/minirel/internal/plan"
	"github.com/minirel/minirel/internal/storage"
)

// Build turns one logical plan node into an executor tree bound to engine.
func Build(engine *storage.Engine, node plan.Node) (Executor, error) {
	switch n := node.(type) {
	case *plan.CreateTable:
		return &CreateTableExecutor{Engine: engine, Stmt: n.Stmt}, nil
	case *plan.Drop:
		return &DropTableExecutor{Engine: engine, Table: n.Table}, nil
	case *plan.Insert:
		return &InsertExecutor{Engine: engine, Table: n.Table, Values: n.Values}, nil
	case *plan.Update:
		return &UpdateExecutor{Engine: engine, Table: n.Table, Assignments: n.Assignments, Predicate: n.Predicate}, nil
	case *plan.Delete:
		return &DeleteExecutor{Engine: engine, Table: n.Table, Predicate: n.Predicate}, nil
	case *plan.ShowTables:
		return &ShowTablesExecutor{Engine: engine}, nil
	case *plan.Scan:
		return &TableScan{Engine: engine, Table: n.Table}, nil
	case *plan.Filter:
		source, err := Build(engine, n.Source)
		if err != nil {
			return nil, err
		}
		return &Filter{Source: source, Predicate: n.Predicate, Schema: resolveSchema(engine, n.Source, n.Predicate.Column)}, nil
	case *plan.Join:
		left, err := Build(engine, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Build(engine, n.Right)
		if err != nil {
			return nil, err
		}
		return &JoinExecutor{Left: left, Right: right, LeftCol: n.Clause.LeftCol, RightCol: n.Clause.RightCol}, nil
	case *plan.Projection:
		return buildProjection(engine, n)
	default:
		return nil, newExecutionError("exec: unsupported plan node %T", n)
	}
}

// buildProjection wires GroupBy / OrderBy / Limit around the bare
// projection, per spec.md §4.9's note that the Projection plan node
// retains the parent Select AST for exactly this purpose.
func buildProjection(engine *storage.Engine, n *plan.Projection) (Executor, error) {
	source, err := Build(engine, n.Source)
	if err != nil {
		return nil, err
	}

	sel := n.Select
	if len(sel.GroupBy) > 0 {
		source = &GroupBy{Source: source, GroupCols: sel.GroupBy}
	}

	var exec Executor = &Projection{Source: source, Columns: n.Columns}

	if len(sel.OrderBy) > 0 {
		exec = &OrderBy{Source: exec, Terms: sel.OrderBy}
	}
	if sel.Limit != nil || sel.Offset != nil {
		exec = &Limit{Source: exec, Limit: sel.Limit, Offset: sel.Offset}
	}
	return exec, nil
}

// resolveSchema finds the schema of the single table a filter predicate's
// column belongs to, by walking down a Scan/Join source. Join sources
// cannot be resolved to one schema unambiguously, so coercion falls back
// to an uncoerced comparison in that case (see Filter.Schema's doc
// comment).
func resolveSchema(engine *storage.Engine, node plan.Node, _ string) *storage.TableSchema {
	scan, ok := node.(*plan.Scan)
	if !ok {
		return nil
	}
	table, err := engine.Catalog.Get(scan.Table)
	if err != nil {
		return nil
	}
	return table.Schema
}
