package sqlfe

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parser is a one-token-lookahead recursive-descent parser over the token
// stream produced by Tokenize.
type Parser struct {
	toks []Token
	pos  int
}

// NewParser returns a Parser over sql, tokenizing it up front. A lexical
// failure is already a *ParseError and is returned unwrapped so callers
// can type-switch on it directly.
func NewParser(sql string) (*Parser, error) {
	toks, err := Tokenize(sql)
	if err != nil {
		return nil, err
	}
	return &Parser{toks: toks}, nil
}

func (p *Parser) cur() Token  { return p.toks[p.pos] }
func (p *Parser) advance()    { if p.pos < len(p.toks)-1 { p.pos++ } }

// errf builds a *ParseError carrying a formatted message plus the token
// text the parser was looking at when it failed.
func (p *Parser) errf(format string, args ...any) error {
	return newParseError(errors.Errorf(format+" (near %q)", append(args, p.cur().Text)...))
}

func (p *Parser) atKeyword(kw string) bool {
	t := p.cur()
	return t.Kind == KEYWORD && t.Text == kw
}

func (p *Parser) atSymbol(sym string) bool {
	t := p.cur()
	return t.Kind == SYMBOL && t.Text == sym
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.atKeyword(kw) {
		return p.errf("expected keyword %s", kw)
	}
	p.advance()
	return nil
}

func (p *Parser) expectSymbol(sym string) error {
	if !p.atSymbol(sym) {
		return p.errf("expected symbol %s", sym)
	}
	p.advance()
	return nil
}

// identLike accepts an IDENTIFIER, or (to keep common column/table names
// usable without quoting) a KEYWORD token used positionally as a name.
func (p *Parser) identLike() (string, error) {
	t := p.cur()
	if t.Kind == IDENTIFIER {
		p.advance()
		return t.Text, nil
	}
	if t.Kind == KEYWORD {
		p.advance()
		return t.Text, nil
	}
	return "", p.errf("expected identifier")
}

// ParseStatement parses exactly one SQL statement, tolerating (but not
// requiring) a trailing semicolon. hadSemicolon reports whether one was
// consumed, so callers can surface the "missing semicolon" warning.
func ParseStatement(sql string) (stmt Statement, hadSemicolon bool, err error) {
	p, err := NewParser(sql)
	if err != nil {
		return nil, false, err
	}
	stmt, err = p.parseStatement()
	if err != nil {
		return nil, false, err
	}
	if p.atSymbol(";") {
		p.advance()
		hadSemicolon = true
	}
	if p.cur().Kind != EOF {
		return nil, false, p.errf("unexpected trailing input")
	}
	return stmt, hadSemicolon, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	t := p.cur()
	if t.Kind != KEYWORD {
		return nil, p.errf("expected a statement keyword")
	}
	switch t.Text {
	case "CREATE":
		return p.parseCreateTable()
	case "DROP":
		return p.parseDropTable()
	case "INSERT":
		return p.parseInsert()
	case "UPDATE":
		return p.parseUpdate()
	case "DELETE":
		return p.parseDelete()
	case "SELECT":
		return p.parseSelect()
	case "SHOW":
		return p.parseShowTables()
	default:
		return nil, p.errf("unsupported statement keyword %s", t.Text)
	}
}

func (p *Parser) parseCreateTable() (*CreateTable, error) {
	if err := p.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.identLike()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var cols []ColumnDef
	for {
		colName, err := p.identLike()
		if err != nil {
			return nil, err
		}
		sqlType, err := p.parseSQLType()
		if err != nil {
			return nil, err
		}
		var constraints []string
		for {
			tag, ok, err := p.parseOptionalConstraint()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			constraints = append(constraints, tag)
		}
		cols = append(cols, ColumnDef{Name: colName, SQLType: sqlType, Constraints: constraints})
		if p.atSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return &CreateTable{Table: name, Columns: cols}, nil
}

// parseSQLType consumes a type keyword, tolerating VARCHAR(n)'s parenthesized
// length argument (the length itself is discarded; only the family matters).
func (p *Parser) parseSQLType() (string, error) {
	t := p.cur()
	if t.Kind != KEYWORD && t.Kind != IDENTIFIER {
		return "", p.errf("expected a type name")
	}
	name := t.Text
	p.advance()
	if p.atSymbol("(") {
		p.advance()
		for !p.atSymbol(")") {
			if p.cur().Kind == EOF {
				return "", p.errf("unterminated type argument list")
			}
			p.advance()
		}
		p.advance()
	}
	return name, nil
}

func (p *Parser) parseOptionalConstraint() (string, bool, error) {
	switch {
	case p.atKeyword("PRIMARY"):
		p.advance()
		if err := p.expectKeyword("KEY"); err != nil {
			return "", false, err
		}
		return "PRIMARY_KEY", true, nil
	case p.atKeyword("NOT"):
		p.advance()
		if err := p.expectKeyword("NULL"); err != nil {
			return "", false, err
		}
		return "NOT_NULL", true, nil
	case p.atKeyword("UNIQUE"):
		p.advance()
		return "UNIQUE", true, nil
	case p.atKeyword("AUTO_INCREMENT"):
		p.advance()
		return "AUTO_INCREMENT", true, nil
	case p.atKeyword("REFERENCES"):
		p.advance()
		if _, err := p.identLike(); err != nil {
			return "", false, err
		}
		if p.atSymbol("(") {
			p.advance()
			for !p.atSymbol(")") {
				if p.cur().Kind == EOF {
					return "", false, p.errf("unterminated REFERENCES column list")
				}
				p.advance()
			}
			p.advance()
		}
		return "FOREIGN_KEY", true, nil
	default:
		return "", false, nil
	}
}

func (p *Parser) parseDropTable() (*DropTable, error) {
	if err := p.expectKeyword("DROP"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.identLike()
	if err != nil {
		return nil, err
	}
	return &DropTable{Table: name}, nil
}

func (p *Parser) parseInsert() (*Insert, error) {
	if err := p.expectKeyword("INSERT"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	name, err := p.identLike()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var values []Literal
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, lit)
		if p.atSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return &Insert{Table: name, Values: values}, nil
}

func (p *Parser) parseLiteral() (Literal, error) {
	t := p.cur()
	if t.Kind != LITERAL {
		return Literal{}, p.errf("expected a literal value")
	}
	p.advance()
	switch t.Literal {
	case LitNull:
		return Literal{Kind: LitNull}, nil
	case LitInt:
		n, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return Literal{}, newParseError(errors.Wrapf(err, "invalid integer literal %q", t.Text))
		}
		return Literal{Kind: LitInt, Int: n}, nil
	case LitFloat:
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return Literal{}, newParseError(errors.Wrapf(err, "invalid float literal %q", t.Text))
		}
		return Literal{Kind: LitFloat, Float: f}, nil
	case LitString:
		return Literal{Kind: LitString, Str: t.Text}, nil
	default:
		return Literal{}, p.errf("unrecognized literal")
	}
}

func (p *Parser) parseUpdate() (*Update, error) {
	if err := p.expectKeyword("UPDATE"); err != nil {
		return nil, err
	}
	name, err := p.identLike()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}
	var assignments []Assignment
	for {
		col, err := p.identLike()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{Column: col, Value: lit})
		if p.atSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}
	return &Update{Table: name, Assignments: assignments, Where: where}, nil
}

func (p *Parser) parseDelete() (*Delete, error) {
	if err := p.expectKeyword("DELETE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	name, err := p.identLike()
	if err != nil {
		return nil, err
	}
	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}
	return &Delete{Table: name, Where: where}, nil
}

func (p *Parser) parseShowTables() (*ShowTables, error) {
	if err := p.expectKeyword("SHOW"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLES"); err != nil {
		return nil, err
	}
	return &ShowTables{}, nil
}

// parseQualifiedName parses `ident[.ident]`, returning the whole dotted
// text (e.g. "t.c") so filter/projection executors can strip the
// qualifier themselves, per the executor-side convention in SPEC_FULL.md.
func (p *Parser) parseQualifiedName() (string, error) {
	first, err := p.identLike()
	if err != nil {
		return "", err
	}
	if p.atSymbol(".") {
		p.advance()
		second, err := p.identLike()
		if err != nil {
			return "", err
		}
		return first + "." + second, nil
	}
	return first, nil
}

// parseComparisonOp consumes one of the six comparison operators. `<=`,
// `>=`, `!=` are tokenized as single two-character SYMBOL tokens by the
// lexer (see token.go), so this is a single-token check.
func (p *Parser) parseComparisonOp() (string, error) {
	t := p.cur()
	if t.Kind != SYMBOL {
		return "", p.errf("expected a comparison operator")
	}
	switch t.Text {
	case "=", "<", ">", "<=", ">=", "!=":
		p.advance()
		return t.Text, nil
	default:
		return "", p.errf("unrecognized comparison operator %q", t.Text)
	}
}

func (p *Parser) parseBinaryPredicate() (*BinaryExpression, error) {
	col, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	op, err := p.parseComparisonOp()
	if err != nil {
		return nil, err
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return &BinaryExpression{Column: col, Op: op, Value: lit}, nil
}

func (p *Parser) parseOptionalWhere() (*BinaryExpression, error) {
	if !p.atKeyword("WHERE") {
		return nil, nil
	}
	p.advance()
	return p.parseBinaryPredicate()
}

func (p *Parser) parseSelect() (*Select, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}
	cols, err := p.parseSelectList()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.identLike()
	if err != nil {
		return nil, err
	}
	alias := p.parseOptionalAlias()

	var join *JoinClause
	if p.atKeyword("INNER") {
		p.advance()
		if err := p.expectKeyword("JOIN"); err != nil {
			return nil, err
		}
		joinTable, err := p.identLike()
		if err != nil {
			return nil, err
		}
		joinAlias := p.parseOptionalAlias()
		if err := p.expectKeyword("ON"); err != nil {
			return nil, err
		}
		leftCol, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		rightCol, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		join = &JoinClause{Table: joinTable, Alias: joinAlias, LeftCol: leftCol, RightCol: rightCol}
	}

	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}

	var groupBy []string
	if p.atKeyword("GROUP") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		for {
			col, err := p.parseQualifiedName()
			if err != nil {
				return nil, err
			}
			groupBy = append(groupBy, col)
			if p.atSymbol(",") {
				p.advance()
				continue
			}
			break
		}
	}

	var having *BinaryExpression
	if p.atKeyword("HAVING") {
		p.advance()
		having, err = p.parseBinaryPredicate()
		if err != nil {
			return nil, err
		}
	}

	var orderBy []OrderByTerm
	if p.atKeyword("ORDER") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		for {
			col, err := p.parseQualifiedName()
			if err != nil {
				return nil, err
			}
			desc := false
			if p.atKeyword("ASC") {
				p.advance()
			} else if p.atKeyword("DESC") {
				p.advance()
				desc = true
			}
			orderBy = append(orderBy, OrderByTerm{Column: col, Desc: desc})
			if p.atSymbol(",") {
				p.advance()
				continue
			}
			break
		}
	}

	var limit, offset *int
	if p.atKeyword("LIMIT") {
		p.advance()
		n, err := p.parseIntLiteral()
		if err != nil {
			return nil, err
		}
		limit = &n
	}
	if p.atKeyword("OFFSET") {
		p.advance()
		n, err := p.parseIntLiteral()
		if err != nil {
			return nil, err
		}
		offset = &n
	}

	return &Select{
		Columns: cols,
		Table:   table,
		Alias:   alias,
		Join:    join,
		Where:   where,
		GroupBy: groupBy,
		Having:  having,
		OrderBy: orderBy,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (p *Parser) parseIntLiteral() (int, error) {
	lit, err := p.parseLiteral()
	if err != nil {
		return 0, err
	}
	if lit.Kind != LitInt {
		return 0, p.errf("expected an integer literal")
	}
	return int(lit.Int), nil
}

// parseOptionalAlias consumes `[AS] ident` when the next token is a bare
// identifier (or the AS keyword), returning "" when there is no alias.
func (p *Parser) parseOptionalAlias() string {
	if p.atKeyword("AS") {
		p.advance()
		name, _ := p.identLike()
		return name
	}
	if p.cur().Kind == IDENTIFIER {
		name := p.cur().Text
		p.advance()
		return name
	}
	return ""
}

func (p *Parser) parseSelectList() ([]SelectColumn, error) {
	var cols []SelectColumn
	for {
		col, err := p.parseSelectColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if p.atSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	return cols, nil
}

func (p *Parser) parseSelectColumn() (SelectColumn, error) {
	if p.atSymbol("*") {
		p.advance()
		return SelectColumn{Star: true}, nil
	}

	// Disambiguate FUNC(arg) from a bare/qualified column name: both start
	// with an identifier-like token.
	t := p.cur()
	if t.Kind == IDENTIFIER || t.Kind == KEYWORD {
		name := t.Text
		p.advance()
		if p.atSymbol("(") {
			p.advance()
			var arg string
			if p.atSymbol("*") {
				arg = "*"
				p.advance()
			} else {
				argName, err := p.parseQualifiedName()
				if err != nil {
					return SelectColumn{}, err
				}
				arg = argName
			}
			if err := p.expectSymbol(")"); err != nil {
				return SelectColumn{}, err
			}
			alias := p.parseOptionalAlias()
			return SelectColumn{Func: strings.ToUpper(name), Arg: arg, Alias: alias}, nil
		}
		full := name
		if p.atSymbol(".") {
			p.advance()
			second, err := p.identLike()
			if err != nil {
				return SelectColumn{}, err
			}
			full = name + "." + second
		}
		alias := p.parseOptionalAlias()
		return SelectColumn{Name: full, Alias: alias}, nil
	}
	return SelectColumn{}, p.errf("expected a select expression")
}
