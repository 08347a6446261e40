// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner tokenizes Pascal source for the parser.
package scanner

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dbarros/pasvm/lang/token"
)

// Scanner tokenizes a single Pascal source file.
type Scanner struct {
	// immutable state after Init
	filename string
	src      []byte
	err      func(pos token.Position, msg string)

	// mutable scanning state
	sb   strings.Builder
	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset just past cur
	line int  // 1-based line of cur
}

// Init prepares the scanner to tokenize src, reporting filename in errors.
// errHandler, if non-nil, is called for every lexical error encountered;
// scanning never stops because of one.
func (s *Scanner) Init(filename string, src []byte, errHandler func(token.Position, string)) {
	s.filename = filename
	s.src = src
	s.err = errHandler

	s.sb.Reset()
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line = 1

	s.advance()
}

func (s *Scanner) pos() token.Position {
	return token.Position{Filename: s.filename, Line: s.line}
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	if s.cur == '\n' {
		s.line++
	}
	s.off = s.roff

	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error("illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(msg string) {
	if s.err != nil {
		s.err(s.pos(), msg)
	}
}

func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token, advancing past it. Comments and whitespace
// are skipped entirely; Scan never returns a comment token. Once it
// returns a token.EOF token, further calls keep returning token.EOF.
func (s *Scanner) Scan() token.Token {
	s.skipWhitespaceAndComments()

	line := s.line
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		lower := strings.ToLower(lit)
		if kw, ok := token.Keywords[lower]; ok {
			return token.Token{Kind: kw, Value: lower, Line: line}
		}
		return token.Token{Kind: token.IDENT, Value: lower, Line: line}

	case isDigit(cur):
		return s.number(line)

	case cur == '\'':
		return s.stringLit(line)

	case cur == -1:
		return token.Token{Kind: token.EOF, Line: line}
	}

	s.advance() // always make progress past the first rune of the punctuation
	switch s.src[start] {
	case ':':
		if s.advanceIf('=') {
			return token.Token{Kind: token.ASSIGN, Line: line}
		}
		return token.Token{Kind: token.COLON, Line: line}

	case ';':
		return token.Token{Kind: token.SEMI, Line: line}
	case ',':
		return token.Token{Kind: token.COMMA, Line: line}
	case '.':
		if s.advanceIf('.') {
			return token.Token{Kind: token.DOTDOT, Line: line}
		}
		return token.Token{Kind: token.DOT, Line: line}
	case '(':
		return token.Token{Kind: token.LPAREN, Line: line}
	case ')':
		return token.Token{Kind: token.RPAREN, Line: line}
	case '[':
		return token.Token{Kind: token.LBRACK, Line: line}
	case ']':
		return token.Token{Kind: token.RBRACK, Line: line}
	case '=':
		return token.Token{Kind: token.EQ, Line: line}
	case '<':
		if s.advanceIf('>') {
			return token.Token{Kind: token.NEQ, Line: line}
		}
		if s.advanceIf('=') {
			return token.Token{Kind: token.LE, Line: line}
		}
		return token.Token{Kind: token.LT, Line: line}
	case '>':
		if s.advanceIf('=') {
			return token.Token{Kind: token.GE, Line: line}
		}
		return token.Token{Kind: token.GT, Line: line}
	case '+':
		return token.Token{Kind: token.PLUS, Line: line}
	case '-':
		return token.Token{Kind: token.MINUS, Line: line}
	case '*':
		return token.Token{Kind: token.STAR, Line: line}
	case '/':
		return token.Token{Kind: token.SLASH, Line: line}
	default:
		s.error("illegal character " + strconv.QuoteRune(rune(s.src[start])))
		return token.Token{Kind: token.ILLEGAL, Value: string(rune(s.src[start])), Line: line}
	}
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '{':
			s.braceComment()
		case s.cur == '(' && s.peek() == '*':
			s.parenStarComment()
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
