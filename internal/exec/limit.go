package exec

import "github.com/minirel/minirel/internal/storage"

// Limit slices the materialized row list from Source by [Offset,
// Offset+Limit). A nil Limit means "to end"; a nil Offset defaults to 0.
type Limit struct {
	Source Executor
	Limit  *int
	Offset *int
}

func (l *Limit) Execute() ([]*storage.Row, error) {
	rows, err := l.Source.Execute()
	if err != nil {
		return nil, err
	}
	offset := 0
	if l.Offset != nil {
		offset = *l.Offset
	}
	if offset > len(rows) {
		offset = len(rows)
	}
	end := len(rows)
	if l.Limit != nil {
		if offset+*l.Limit < end {
			end = offset + *l.Limit
		}
	}
	return rows[offset:end], nil
}
