// Package parser implements the recursive-descent parser that transforms
// Pascal source into an abstract syntax tree (ast.Program).
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/scanner"
	"github.com/dbarros/pasvm/lang/token"
)

// ParseSource parses a single in-memory source file. The error, if
// non-nil, is a scanner.ErrorList sorted by line: it holds the lexical
// errors the scanner reported (which do not stop parsing) and, if parsing
// failed, the one syntax error it halted on.
func ParseSource(filename string, src []byte) (*ast.Program, error) {
	var p parser
	p.filename = filename
	p.scanner.Init(filename, src, p.errors.Add)
	p.advance()

	prog := p.parseProgramOrRecover()
	p.errors.Sort()
	return prog, p.errors.Err()
}

// errHalt is the panic value used to unwind the recursive descent on the
// first syntax error; it is recovered in parseProgramOrRecover.
var errHalt = errors.New("syntax error")

type parser struct {
	filename string
	scanner  scanner.Scanner
	errors   scanner.ErrorList

	tok token.Token // current token
}

func (p *parser) parseProgramOrRecover() (prog *ast.Program) {
	defer func() {
		if r := recover(); r != nil {
			if r != errHalt {
				panic(r)
			}
		}
	}()
	return p.parseProgram()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan()
}

func (p *parser) pos() token.Position {
	return token.Position{Filename: p.filename, Line: p.tok.Line}
}

// at reports whether the current token has kind k.
func (p *parser) at(k token.Kind) bool { return p.tok.Kind == k }

// expect consumes the current token if it has kind k, otherwise records a
// syntax error and halts parsing of this file.
func (p *parser) expect(k token.Kind) token.Token {
	if !p.at(k) {
		p.errorExpected(k.String())
	}
	tok := p.tok
	p.advance()
	return tok
}

func (p *parser) errorf(format string, args ...any) {
	p.errors.Add(p.pos(), fmt.Sprintf(format, args...))
	panic(errHalt)
}

func (p *parser) errorExpected(what string) {
	p.errorf("expected %s, found %s", what, describe(p.tok))
}

func describe(tok token.Token) string {
	if tok.Value != "" && (tok.Kind == token.IDENT || tok.Kind == token.INT || tok.Kind == token.REAL || tok.Kind == token.STRING) {
		return tok.Value
	}
	return tok.Kind.String()
}

// parseIdentName expects an identifier and returns its (already
// lower-cased by the scanner) name.
func (p *parser) parseIdentName() string {
	tok := p.expect(token.IDENT)
	return tok.Value
}

func parseIntLiteral(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
