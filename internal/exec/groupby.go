package exec

import (
	"strings"

	"github.com/minirel/minirel/internal/storage"
)

// GroupBy partitions rows from Source by the tuple of GroupCols values
// (compared as strings for key identity) and emits one row per group
// holding the grouping-column values plus "count(*)". No other aggregate
// is computed. Having is accepted but intentionally not applied — see
// SPEC_FULL.md §9 (the HAVING clause is a parsed, unexecuted open
// question inherited unchanged from the source system).
type GroupBy struct {
	Source    Executor
	GroupCols []string
}

func (g *GroupBy) Execute() ([]*storage.Row, error) {
	rows, err := g.Source.Execute()
	if err != nil {
		return nil, err
	}

	type group struct {
		keyRow *storage.Row
		count  int
	}
	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, row := range rows {
		var keyParts []string
		keyRow := storage.NewRow()
		for _, col := range g.GroupCols {
			bare := stripQualifier(col)
			v, _ := row.Get(bare)
			keyParts = append(keyParts, valueToString(v))
			keyRow.Set(bare, v)
		}
		key := strings.Join(keyParts, "\x00")
		g2, ok := groups[key]
		if !ok {
			g2 = &group{keyRow: keyRow}
			groups[key] = g2
			order = append(order, key)
		}
		g2.count++
	}

	out := make([]*storage.Row, 0, len(order))
	for _, key := range order {
		g2 := groups[key]
		row := g2.keyRow.Clone()
		row.Set("count(*)", int64(g2.count))
		out = append(out, row)
	}
	return out, nil
}
