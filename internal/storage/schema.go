package storage

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperFold = cases.Upper(language.Und)
var lowerFold = cases.Lower(language.Und)

// foldUpper and foldLower normalize an identifier the way the catalog and
// the executors do: table names upper, output column names lower.
func foldUpper(s string) string { return upperFold.String(s) }
func foldLower(s string) string { return lowerFold.String(s) }

// DType is the column type tag: one of the three families this engine
// actually stores.
type DType int

const (
	DTypeInt DType = iota
	DTypeFloat
	DTypeText
)

func (d DType) String() string {
	switch d {
	case DTypeInt:
		return "int"
	case DTypeFloat:
		return "float"
	case DTypeText:
		return "text"
	default:
		return "unknown"
	}
}

// ResolveSQLType maps a SQL type keyword to an internal DType. Only the
// int/float/text families are actually stored; for anything else it
// reports false, and CreateTable rejects the column.
func ResolveSQLType(sqlType string) (DType, bool) {
	switch strings.ToUpper(sqlType) {
	case "INT", "INTEGER":
		return DTypeInt, true
	case "TEXT", "STRING", "VARCHAR":
		return DTypeText, true
	case "FLOAT", "REAL":
		return DTypeFloat, true
	default:
		return 0, false
	}
}

// ColumnSchema describes one column: its name, stored type, nullability,
// and constraint flags extracted from the parsed column definition.
type ColumnSchema struct {
	Name          string
	Dtype         DType
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
	Constraints   []string // raw constraint tags, e.g. "UNIQUE", "FOREIGN_KEY"
}

// TableSchema is an ordered sequence of columns. Column names are unique
// within a table, case-insensitively.
type TableSchema struct {
	Columns []ColumnSchema
}

// ColumnNames returns the schema's column names in declared order.
func (s *TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// IndexOf returns the position of the named column (case-insensitive), or
// -1 if there is no such column.
func (s *TableSchema) IndexOf(name string) int {
	want := foldUpper(name)
	for i, c := range s.Columns {
		if foldUpper(c.Name) == want {
			return i
		}
	}
	return -1
}

// Value is the typed union this engine stores: int64, float64, string, or
// nil (SQL NULL).
type Value = any
