package exec

import (
	"strings"

	"github.com/samber/lo"

	"github.com/minirel/minirel/internal/sqlfe"
	"github.com/minirel/minirel/internal/storage"
)

// Projection narrows and/or renames each row from Source according to the
// parsed SELECT list. A bare `*` expands to the full key list of the first
// row seen. Missing source keys project to NULL.
type Projection struct {
	Source  Executor
	Columns []sqlfe.SelectColumn
}

func (p *Projection) Execute() ([]*storage.Row, error) {
	rows, err := p.Source.Execute()
	if err != nil {
		return nil, err
	}

	cols := p.Columns
	if len(rows) > 0 && hasStar(cols) {
		cols = expandStar(cols, rows[0].Keys())
	}

	out := make([]*storage.Row, 0, len(rows))
	for _, row := range rows {
		projected := storage.NewRow()
		for _, c := range cols {
			outName, srcName := projectedNames(c)
			v, _ := row.Get(srcName)
			projected.Set(outName, v)
		}
		out = append(out, projected)
	}
	return out, nil
}

func hasStar(cols []sqlfe.SelectColumn) bool {
	return lo.SomeBy(cols, func(c sqlfe.SelectColumn) bool { return c.Star })
}

// expandStar replaces a `*` entry with one bare-column SelectColumn per
// key in keys, preserving any other explicitly listed columns' order.
func expandStar(cols []sqlfe.SelectColumn, keys []string) []sqlfe.SelectColumn {
	starCols := lo.Map(keys, func(k string, _ int) sqlfe.SelectColumn { return sqlfe.SelectColumn{Name: k} })
	out := make([]sqlfe.SelectColumn, 0, len(cols)+len(keys))
	for _, c := range cols {
		if c.Star {
			out = append(out, starCols...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// projectedNames derives (output name, source-row-map key) for one select
// expression, per spec.md §4.10.
func projectedNames(c sqlfe.SelectColumn) (outName, srcName string) {
	if c.Func != "" {
		key := strings.ToLower(c.Func) + "(" + strings.ToLower(c.Arg) + ")"
		if c.Alias != "" {
			return strings.ToLower(c.Alias), key
		}
		return key, key
	}
	bare := strings.ToLower(stripQualifier(c.Name))
	if c.Alias != "" {
		return strings.ToLower(c.Alias), bare
	}
	return bare, bare
}
