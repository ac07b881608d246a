// Package exec implements the pull-based, materializing executor tree:
// each operator's Execute consumes all rows from its source(s) and
// returns the full row list it produces.
package exec

import (
	"strconv"
	"strings"

	"github.com/minirel/minirel/internal/sqlfe"
	"github.com/minirel/minirel/internal/storage"
)

// Executor is implemented by every operator in the tree.
type Executor interface {
	Execute() ([]*storage.Row, error)
}

// stripQualifier returns the trailing column name of a possibly-qualified
// reference ("t.c" -> "c"); unqualified names pass through unchanged.
func stripQualifier(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// literalToValue converts a parsed literal to a storage.Value, without any
// dtype-directed coercion.
func literalToValue(lit sqlfe.Literal) storage.Value {
	switch lit.Kind {
	case sqlfe.LitNull:
		return nil
	case sqlfe.LitInt:
		return lit.Int
	case sqlfe.LitFloat:
		return lit.Float
	case sqlfe.LitString:
		return lit.Str
	default:
		return nil
	}
}

// coerceLiteral converts lit to dtype via storage.CoerceValue when schema
// is non-nil and has the referenced column; otherwise it falls back to an
// uncoerced conversion. This mirrors the filter/DML executors' shared rule
// that literal comparands are coerced using the schema of the table the
// column actually belongs to.
func coerceLiteral(lit sqlfe.Literal, schema *storage.TableSchema, column string) storage.Value {
	v := literalToValue(lit)
	if schema == nil {
		return v
	}
	idx := schema.IndexOf(column)
	if idx < 0 {
		return v
	}
	cv, err := storage.CoerceValue(v, schema.Columns[idx].Dtype)
	if err != nil {
		return v
	}
	return cv
}

// valueToString renders a Value the way OrderBy/GroupBy need for stable
// key comparison: NULL becomes the empty string, per SPEC_FULL.md/spec.md
// §4.10's NULL-sorts-as-empty-string rule.
func valueToString(v storage.Value) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return ""
	}
}

// matchesPredicate evaluates a single binary comparison against row. The
// predicate's column is stripped of any qualifier before lookup, matching
// the executor-side convention that row maps are keyed by bare lower-cased
// column name.
func matchesPredicate(row *storage.Row, pred *sqlfe.BinaryExpression, schema *storage.TableSchema) bool {
	if pred == nil {
		return true
	}
	col := stripQualifier(pred.Column)
	rowVal, _ := row.Get(col)
	cmpVal := coerceLiteral(pred.Value, schema, col)
	return compare(rowVal, pred.Op, cmpVal)
}

func compare(a storage.Value, op string, b storage.Value) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch op {
		case "=":
			return af == bf
		case "<":
			return af < bf
		case ">":
			return af > bf
		case "<=":
			return af <= bf
		case ">=":
			return af >= bf
		case "!=":
			return af != bf
		}
		return false
	}
	as, bs := valueToString(a), valueToString(b)
	switch op {
	case "=":
		return as == bs
	case "<":
		return as < bs
	case ">":
		return as > bs
	case "<=":
		return as <= bs
	case ">=":
		return as >= bs
	case "!=":
		return as != bs
	default:
		return false
	}
}

// lessValue compares two values for OrderBy: numerically when both are
// numeric, lexically on their string rendering otherwise. Returns both
// "a < b" and "a == b" so callers can implement descending order without
// re-deriving equality from two separate less-than calls.
func lessValue(a, b storage.Value) (less, equal bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af < bf, af == bf
	}
	as, bs := valueToString(a), valueToString(b)
	return as < bs, as == bs
}

func asFloat(v storage.Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
