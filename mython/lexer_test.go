package mython

import (
	"errors"
	"testing"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	return tokens
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func assertTypes(t *testing.T, tokens []Token, want ...TokenType) {
	t.Helper()
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (stream %v)", i, got[i], want[i], got)
		}
	}
}

func TestLexSimpleStatement(t *testing.T) {
	tokens := lexAll(t, "x = 1 + 2 * 3\nprint x\n")
	assertTypes(t, tokens,
		tokenIdent, tokenChar, tokenNumber, tokenChar, tokenNumber, tokenChar, tokenNumber, tokenNewline,
		tokenPrint, tokenIdent, tokenNewline,
		tokenEOF,
	)
	if tokens[0].Literal != "x" || tokens[2].Literal != "1" || tokens[6].Literal != "3" {
		t.Fatalf("unexpected literals: %v", tokens)
	}
}

func TestLexKeywords(t *testing.T) {
	tokens := lexAll(t, "class return if else def print and or not None True False ident\n")
	assertTypes(t, tokens,
		tokenClass, tokenReturn, tokenIf, tokenElse, tokenDef, tokenPrint,
		tokenAnd, tokenOr, tokenNot, tokenNone, tokenTrue, tokenFalse,
		tokenIdent, tokenNewline, tokenEOF,
	)
}

func TestLexTwoCharOperators(t *testing.T) {
	tokens := lexAll(t, "a == b != c <= d >= e < f > g\n")
	assertTypes(t, tokens,
		tokenIdent, tokenEQ, tokenIdent, tokenNotEQ, tokenIdent, tokenLTE,
		tokenIdent, tokenGTE, tokenIdent, tokenChar, tokenIdent, tokenChar, tokenIdent,
		tokenNewline, tokenEOF,
	)
	if tokens[9].Literal != "<" || tokens[11].Literal != ">" {
		t.Fatalf("expected bare < and > char tokens, got %v", tokens)
	}
}

func TestLexIndentStructure(t *testing.T) {
	src := "class A:\n" +
		"  def f(self):\n" +
		"    return 1\n" +
		"x = 1\n"
	tokens := lexAll(t, src)
	assertTypes(t, tokens,
		tokenClass, tokenIdent, tokenChar, tokenNewline,
		tokenIndent,
		tokenDef, tokenIdent, tokenChar, tokenIdent, tokenChar, tokenChar, tokenNewline,
		tokenIndent,
		tokenReturn, tokenNumber, tokenNewline,
		tokenDedent, tokenDedent,
		tokenIdent, tokenChar, tokenNumber, tokenNewline,
		tokenEOF,
	)
}

func TestLexIndentBalance(t *testing.T) {
	src := "if a:\n" +
		"  if b:\n" +
		"    print a\n" +
		"  print b\n" +
		"print c\n"
	tokens := lexAll(t, src)

	depth := 0
	indents, dedents := 0, 0
	for _, tok := range tokens {
		switch tok.Type {
		case tokenIndent:
			indents++
			depth++
		case tokenDedent:
			dedents++
			depth--
		}
		if depth < 0 {
			t.Fatalf("dedent below zero at token %v", tok)
		}
	}
	if indents != dedents {
		t.Fatalf("unbalanced stream: %d indents, %d dedents", indents, dedents)
	}
	if indents != 2 {
		t.Fatalf("expected 2 indents, got %d", indents)
	}
}

func TestLexDedentsSynthesizedAtEOF(t *testing.T) {
	// No trailing newline: the lexer supplies one before the dedents.
	tokens := lexAll(t, "if a:\n  if b:\n    print a")
	n := len(tokens)
	assertTypes(t, tokens[n-4:], tokenNewline, tokenDedent, tokenDedent, tokenEOF)
}

func TestLexBlankAndCommentLines(t *testing.T) {
	src := "x = 1\n" +
		"\n" +
		"# a comment line\n" +
		"  # an indented comment line\n" +
		"y = 2  # trailing comment\n"
	tokens := lexAll(t, src)
	assertTypes(t, tokens,
		tokenIdent, tokenChar, tokenNumber, tokenNewline,
		tokenIdent, tokenChar, tokenNumber, tokenNewline,
		tokenEOF,
	)
}

func TestLexStringLiterals(t *testing.T) {
	tokens := lexAll(t, `s = 'it''s'
d = "quote\"end"
e = "a\nb\tc\r\\"
`)
	if tokens[2].Literal != "it" || tokens[3].Literal != "s" {
		t.Fatalf("single-quote literals wrong: %q %q", tokens[2].Literal, tokens[3].Literal)
	}
	if tokens[7].Literal != `quote"end` {
		t.Fatalf("escaped quote wrong: %q", tokens[7].Literal)
	}
	if tokens[11].Literal != "a\nb\tc\r\\" {
		t.Fatalf("escapes wrong: %q", tokens[11].Literal)
	}
}

func TestLexNumberZero(t *testing.T) {
	tokens := lexAll(t, "x = 0\n")
	if tokens[2].Type != tokenNumber || tokens[2].Literal != "0" {
		t.Fatalf("expected single zero literal, got %v", tokens[2])
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"odd indent", "if a:\n b\n"},
		{"indent jump", "if a:\n    b\n"},
		{"indent before any statement", "  x = 1\n"},
		{"tab in indentation", "if a:\n\tb\n"},
		{"tab in source", "x =\t1\n"},
		{"leading zero", "x = 09\n"},
		{"number overflow", "x = 99999999999\n"},
		{"unterminated string", "x = 'abc\n"},
		{"mismatched quotes", "x = 'abc\"\n"},
		{"bad escape", `x = "a\q"` + "\n"},
		{"stray bang", "x = !y\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lex(tc.src)
			if err == nil {
				t.Fatalf("expected lexer error for %q", tc.src)
			}
			var lexErr *LexerError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexerError, got %T: %v", err, err)
			}
		})
	}
}

func TestLexCursorSaturatesAtEOF(t *testing.T) {
	tokens := lexAll(t, "x = 1\n")
	cur := newTokenCursor(tokens)
	for range tokens {
		cur.advance()
	}
	if cur.current().Type != tokenEOF {
		t.Fatalf("cursor did not saturate at EOF, got %v", cur.current())
	}
	if cur.advance().Type != tokenEOF {
		t.Fatalf("advance past EOF must keep returning EOF")
	}
}
