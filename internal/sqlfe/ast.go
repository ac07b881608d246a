package sqlfe

// Statement is the closed set of top-level AST nodes the parser can
// produce. Each is a distinct Go type; callers switch on the concrete type.
type Statement interface{ isStatement() }

// ColumnDef is one parsed column definition inside CREATE TABLE.
type ColumnDef struct {
	Name        string
	SQLType     string
	Constraints []string
}

// CreateTable is `CREATE TABLE name (col type [constraints], ...);`.
type CreateTable struct {
	Table   string
	Columns []ColumnDef
}

func (*CreateTable) isStatement() {}

// DropTable is `DROP TABLE name;`.
type DropTable struct {
	Table string
}

func (*DropTable) isStatement() {}

// Literal is a parsed literal value: an int64, float64, string, or nil for
// NULL, tagged by Kind for round-tripping display.
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
}

// Insert is `INSERT INTO name VALUES (lit, ...);`.
type Insert struct {
	Table  string
	Values []Literal
}

func (*Insert) isStatement() {}

// Assignment is one `col = lit` pair inside SET.
type Assignment struct {
	Column string
	Value  Literal
}

// BinaryExpression is the one predicate shape this front end supports:
// `Column OP Literal`, where Column may be qualified (`alias.col`).
type BinaryExpression struct {
	Column string
	Op     string
	Value  Literal
}

// Update is `UPDATE name SET col = lit, ... [WHERE col OP lit];`.
type Update struct {
	Table       string
	Assignments []Assignment
	Where       *BinaryExpression
}

func (*Update) isStatement() {}

// Delete is `DELETE FROM name [WHERE col OP lit];`.
type Delete struct {
	Table string
	Where *BinaryExpression
}

func (*Delete) isStatement() {}

// ShowTables is `SHOW TABLES;`.
type ShowTables struct{}

func (*ShowTables) isStatement() {}

// SelectColumn is one projected expression in the SELECT list: either a
// bare/qualified column, a star, or a FUNC(arg) call, with an optional
// alias.
type SelectColumn struct {
	Star  bool
	Func  string // non-empty for FUNC(Arg) syntax, e.g. "COUNT"
	Arg   string // argument to Func, e.g. "*" for COUNT(*), or a column name
	Name  string // bare/qualified column name when Func == ""
	Alias string
}

// JoinClause is the single supported `INNER JOIN table2 [alias] ON a.x = b.y`.
type JoinClause struct {
	Table     string
	Alias     string
	LeftCol   string
	RightCol  string
}

// OrderByTerm is one `col [ASC|DESC]` entry.
type OrderByTerm struct {
	Column string
	Desc   bool
}

// Select is the full `SELECT ... FROM ...` statement.
type Select struct {
	Columns  []SelectColumn
	Table    string
	Alias    string
	Join     *JoinClause
	Where    *BinaryExpression
	GroupBy  []string
	Having   *BinaryExpression
	OrderBy  []OrderByTerm
	Limit    *int
	Offset   *int
}

func (*Select) isStatement() {}
