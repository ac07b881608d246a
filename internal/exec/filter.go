package exec

import (
	"github.com/minirel/minirel/internal/sqlfe"
	"github.com/minirel/minirel/internal/storage"
)

// Filter applies one binary predicate to every row from Source. Schema is
// used only to coerce the predicate's literal to the referenced column's
// dtype before comparing; it may be nil when the predicate's column
// cannot be resolved to a single known table (e.g. an ambiguous join
// column), in which case comparison falls back to an uncoerced value.
type Filter struct {
	Source    Executor
	Predicate *sqlfe.BinaryExpression
	Schema    *storage.TableSchema
}

func (f *Filter) Execute() ([]*storage.Row, error) {
	rows, err := f.Source.Execute()
	if err != nil {
		return nil, err
	}
	out := make([]*storage.Row, 0, len(rows))
	for _, row := range rows {
		if matchesPredicate(row, f.Predicate, f.Schema) {
			out = append(out, row)
		}
	}
	return out, nil
}
