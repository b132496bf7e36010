package thirsty

import "testing"

func TestLexerBasicProgram(t *testing.T) {
	input := `drink count = 42
pour count + 1`

	expected := []struct {
		tokenType TokenType
		literal   string
	}{
		{tokenDrink, "drink"},
		{tokenIdent, "count"},
		{tokenAssign, "="},
		{tokenNumber, "42"},
		{tokenPour, "pour"},
		{tokenIdent, "count"},
		{tokenPlus, "+"},
		{tokenNumber, "1"},
		{tokenEOF, ""},
	}

	l := newLexer(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.tokenType {
			t.Fatalf("token %d: expected type %q, got %q (literal %q)", i, want.tokenType, tok.Type, tok.Literal)
		}
		if tok.Literal != want.literal {
			t.Fatalf("token %d: expected literal %q, got %q", i, want.literal, tok.Literal)
		}
	}
}

func TestLexerOperators(t *testing.T) {
	input := `== != <= >= < > = + - * /`
	expected := []TokenType{
		tokenEQ, tokenNotEQ, tokenLTE, tokenGTE, tokenLT, tokenGT,
		tokenAssign, tokenPlus, tokenMinus, tokenAsterisk, tokenSlash, tokenEOF,
	}

	l := newLexer(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: expected %q, got %q", i, want, tok.Type)
		}
	}
}

func TestLexerStringQuotes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"double"`, "double"},
		{`'single'`, "single"},
		{`"it's nested"`, "it's nested"},
		{`'say "hi"'`, `say "hi"`},
		{`"escaped \" quote"`, `escaped " quote`},
		{`"line\nbreak"`, "line\nbreak"},
		{`"brace { inside }"`, "brace { inside }"},
	}

	for _, tt := range tests {
		l := newLexer(tt.input)
		tok := l.NextToken()
		if tok.Type != tokenString {
			t.Fatalf("input %q: expected string token, got %q (%q)", tt.input, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.want {
			t.Fatalf("input %q: expected literal %q, got %q", tt.input, tt.want, tok.Literal)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := newLexer(`"never closed`)
	tok := l.NextToken()
	if tok.Type != tokenIllegal {
		t.Fatalf("expected illegal token, got %q", tok.Type)
	}
}

func TestLexerComments(t *testing.T) {
	input := `# a hash comment
// a slash comment
pour 1`

	l := newLexer(input)
	tok := l.NextToken()
	if tok.Type != tokenPour {
		t.Fatalf("expected comments skipped, got %q (%q)", tok.Type, tok.Literal)
	}
	if tok.Pos.Line != 3 {
		t.Fatalf("expected line 3, got %d", tok.Pos.Line)
	}
}

func TestLexerLogicalOperatorsAreIllegal(t *testing.T) {
	for _, input := range []string{"&", "|", "!"} {
		l := newLexer(input)
		tok := l.NextToken()
		if tok.Type != tokenIllegal {
			t.Fatalf("input %q: expected illegal token, got %q", input, tok.Type)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"0", "0"},
	}
	for _, tt := range tests {
		l := newLexer(tt.input)
		tok := l.NextToken()
		if tok.Type != tokenNumber || tok.Literal != tt.want {
			t.Fatalf("input %q: got %q (%q)", tt.input, tok.Type, tok.Literal)
		}
	}
}

func TestLexerMemberAccess(t *testing.T) {
	input := `obj.prop`
	l := newLexer(input)
	types := []TokenType{tokenIdent, tokenDot, tokenIdent, tokenEOF}
	for i, want := range types {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: expected %q, got %q", i, want, tok.Type)
		}
	}
}

func TestLexerKeywords(t *testing.T) {
	input := `drink pour sip if else while function async await return class property this try catch finally throw guard import as export true false`
	expected := []TokenType{
		tokenDrink, tokenPour, tokenSip, tokenIf, tokenElse, tokenWhile,
		tokenFunction, tokenAsync, tokenAwait, tokenReturn, tokenClass,
		tokenProperty, tokenThis, tokenTry, tokenCatch, tokenFinally,
		tokenThrow, tokenGuard, tokenImport, tokenAs, tokenExport,
		tokenTrue, tokenFalse, tokenEOF,
	}
	l := newLexer(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: expected %q, got %q (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}
