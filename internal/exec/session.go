package exec

import (
	"github.com/minirel/minirel/internal/plan"
	"github.com/minirel/minirel/internal/sqlfe"
	"github.com/minirel/minirel/internal/storage"
)

// Result is the outcome of running one statement: its row set (empty for
// CREATE/INSERT/DROP, the update/delete count row for UPDATE/DELETE, and
// the selected rows for SELECT/SHOW TABLES) plus an optional warning.
type Result struct {
	Rows    []*storage.Row
	Warning string
}

// Run tokenizes, parses, plans, and executes one SQL statement against
// engine, end to end. A missing trailing semicolon is accepted but
// reported back via Result.Warning, per spec.md §7.
func Run(engine *storage.Engine, sql string) (*Result, error) {
	stmt, hadSemicolon, err := sqlfe.ParseStatement(sql)
	if err != nil {
		return nil, err
	}

	node, err := plan.Build(stmt)
	if err != nil {
		return nil, err
	}

	executor, err := Build(engine, node)
	if err != nil {
		return nil, err
	}

	rows, err := executor.Execute()
	if err != nil {
		return nil, err
	}

	res := &Result{Rows: rows}
	if !hadSemicolon {
		res.Warning = "statement had no trailing semicolon"
	}
	return res, nil
}
