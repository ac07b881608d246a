package exec

import (
	"sort"

	"github.com/minirel/minirel/internal/sqlfe"
	"github.com/minirel/minirel/internal/storage"
)

// OrderBy stable-sorts rows from Source by Terms, applied from the last
// term to the first so the first term acts as the primary sort key. NULL
// values sort as the empty string.
type OrderBy struct {
	Source Executor
	Terms  []sqlfe.OrderByTerm
}

func (o *OrderBy) Execute() ([]*storage.Row, error) {
	rows, err := o.Source.Execute()
	if err != nil {
		return nil, err
	}
	out := append([]*storage.Row(nil), rows...)

	for i := len(o.Terms) - 1; i >= 0; i-- {
		term := o.Terms[i]
		col := stripQualifier(term.Column)
		sort.SliceStable(out, func(a, b int) bool {
			av, _ := out[a].Get(col)
			bv, _ := out[b].Get(col)
			less, equal := lessValue(av, bv)
			if term.Desc {
				return !less && !equal
			}
			return less
		})
	}
	return out, nil
}
