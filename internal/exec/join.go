package exec

import "github.com/minirel/minirel/internal/storage"

// JoinExecutor performs a nested-loop INNER JOIN on equality of two named
// columns. On key collision between the two sides after merging, the left
// row's keys win.
type JoinExecutor struct {
	Left, Right        Executor
	LeftCol, RightCol string
}

func (j *JoinExecutor) Execute() ([]*storage.Row, error) {
	leftRows, err := j.Left.Execute()
	if err != nil {
		return nil, err
	}
	rightRows, err := j.Right.Execute()
	if err != nil {
		return nil, err
	}

	leftKey := stripQualifier(j.LeftCol)
	rightKey := stripQualifier(j.RightCol)

	var out []*storage.Row
	for _, l := range leftRows {
		lv, _ := l.Get(leftKey)
		for _, r := range rightRows {
			rv, _ := r.Get(rightKey)
			if !valuesEqual(lv, rv) {
				continue
			}
			merged := storage.NewRow()
			for _, k := range r.Keys() {
				v, _ := r.Get(k)
				merged.Set(k, v)
			}
			for _, k := range l.Keys() {
				v, _ := l.Get(k)
				merged.Set(k, v) // left wins on collision
			}
			out = append(out, merged)
		}
	}
	return out, nil
}

func valuesEqual(a, b storage.Value) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return valueToString(a) == valueToString(b)
}
