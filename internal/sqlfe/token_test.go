package sqlfe

import "testing"

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	toks, err := Tokenize("SELECT id FROM users")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []struct {
		kind Kind
		text string
	}{
		{KEYWORD, "SELECT"},
		{IDENTIFIER, "id"},
		{KEYWORD, "FROM"},
		{IDENTIFIER, "users"},
		{EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d: got {%v %q}, want {%v %q}", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	for _, op := range []string{"<=", ">=", "!="} {
		toks, err := Tokenize("a " + op + " 1")
		if err != nil {
			t.Fatalf("tokenize %q: %v", op, err)
		}
		if len(toks) < 2 || toks[1].Kind != SYMBOL || toks[1].Text != op {
			t.Errorf("tokenize %q: got %+v", op, toks)
		}
	}
}

func TestTokenizeSingleCharOperatorsNotMerged(t *testing.T) {
	toks, err := Tokenize("a < 1")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[1].Text != "<" {
		t.Errorf("got %q, want <", toks[1].Text)
	}
}

func TestTokenizeStringLiteralWithEscapedQuote(t *testing.T) {
	toks, err := Tokenize("'it''s'")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Kind != LITERAL || toks[0].Literal != LitString || toks[0].Text != "it's" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestTokenizeUnterminatedStringErrors(t *testing.T) {
	_, err := Tokenize("'unterminated")
	if err == nil {
		t.Fatal("expected an unterminated-string error")
	}
}

func TestTokenizeIntVsFloat(t *testing.T) {
	toks, err := Tokenize("42 3.14")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Literal != LitInt || toks[0].Text != "42" {
		t.Errorf("got %+v, want int 42", toks[0])
	}
	if toks[1].Literal != LitFloat || toks[1].Text != "3.14" {
		t.Errorf("got %+v, want float 3.14", toks[1])
	}
}

func TestTokenizeNullKeyword(t *testing.T) {
	toks, err := Tokenize("NULL null")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	for i, tok := range toks[:2] {
		if tok.Kind != LITERAL || tok.Literal != LitNull {
			t.Errorf("token %d: got %+v, want NULL literal", i, tok)
		}
	}
}
