package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbarros/pasvm/lang/scanner"
	"github.com/dbarros/pasvm/lang/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, scanner.ErrorList) {
	t.Helper()
	var s scanner.Scanner
	var el scanner.ErrorList
	s.Init("test.pas", []byte(src), el.Add)

	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, el
}

func TestScanKeywordsAreCaseInsensitive(t *testing.T) {
	toks, errs := scanAll(t, "PROGRAM Program program")
	require.Empty(t, errs)
	require.Len(t, toks, 4) // 3 + EOF
	for _, tok := range toks[:3] {
		assert.Equal(t, token.PROGRAM, tok.Kind)
	}
}

func TestScanIdentifiersCanonicalizeToLowerCase(t *testing.T) {
	toks, errs := scanAll(t, "TotalCount")
	require.Empty(t, errs)
	require.Equal(t, token.IDENT, toks[0].Kind)
	assert.Equal(t, "totalcount", toks[0].Value)
}

func TestScanIntAndReal(t *testing.T) {
	toks, errs := scanAll(t, "42 3.14 7.")
	require.Empty(t, errs)
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, token.Token{Kind: token.INT, Value: "42", Line: 1}, toks[0])
	assert.Equal(t, token.Token{Kind: token.REAL, Value: "3.14", Line: 1}, toks[1])
	// a trailing '.' not followed by a digit is not part of the number
	assert.Equal(t, token.Token{Kind: token.INT, Value: "7", Line: 1}, toks[2])
}

func TestScanStringLiteralWithDoubledQuote(t *testing.T) {
	toks, errs := scanAll(t, `'it''s here'`)
	require.Empty(t, errs)
	require.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "it's here", toks[0].Value)
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	_, errs := scanAll(t, `'oops`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "not terminated")
}

func TestScanSkipsComments(t *testing.T) {
	toks, errs := scanAll(t, "{ a brace comment }\nx := (* paren star *) 1;")
	require.Empty(t, errs)
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.IDENT, token.ASSIGN, token.INT, token.SEMI, token.EOF,
	}, kinds)
}

func TestScanPunctuation(t *testing.T) {
	toks, errs := scanAll(t, ":= : ; , . ( ) [ ] = <> < <= > >= + - * /")
	require.Empty(t, errs)
	want := []token.Kind{
		token.ASSIGN, token.COLON, token.SEMI, token.COMMA, token.DOT,
		token.LPAREN, token.RPAREN, token.LBRACK, token.RBRACK,
		token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.EOF,
	}
	var got []token.Kind
	for _, tok := range toks {
		got = append(got, tok.Kind)
	}
	assert.Equal(t, want, got)
}

func TestScanTracksLineNumbers(t *testing.T) {
	toks, errs := scanAll(t, "x\ny\nz")
	require.Empty(t, errs)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}

func TestScanIllegalCharacter(t *testing.T) {
	_, errs := scanAll(t, "x @ y")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "illegal character")
}
