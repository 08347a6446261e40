package parser

import (
	"strconv"

	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/token"
)

// parseExpr parses:
//
//	expr = additive [relOp additive] .
//	relOp = "=" | "<>" | "<" | "<=" | ">" | ">=" .
//
// Relational operators are non-associative: at most one appears in an
// expr production.
func (p *parser) parseExpr() ast.Expr {
	left := p.parseAdditive()
	if op, ok := relOps[p.tok.Kind]; ok {
		line := p.tok.Line
		p.advance()
		right := p.parseAdditive()
		return &ast.BinaryExpr{Op: op, Left: left, Right: right, Ln: line}
	}
	return left
}

var relOps = map[token.Kind]token.Kind{
	token.EQ:  token.EQ,
	token.NEQ: token.NEQ,
	token.LT:  token.LT,
	token.LE:  token.LE,
	token.GT:  token.GT,
	token.GE:  token.GE,
}

// parseAdditive parses:
//
//	additive = multiplicative {("+" | "-" | "or") multiplicative} .
func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.tok.Kind == token.PLUS || p.tok.Kind == token.MINUS || p.tok.Kind == token.OR {
		op := p.tok.Kind
		line := p.tok.Line
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Ln: line}
	}
	return left
}

// parseMultiplicative parses:
//
//	multiplicative = unary {("*" | "/" | "div" | "mod" | "and") unary} .
func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for isMulOp(p.tok.Kind) {
		op := p.tok.Kind
		line := p.tok.Line
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Ln: line}
	}
	return left
}

func isMulOp(k token.Kind) bool {
	switch k {
	case token.STAR, token.SLASH, token.DIV, token.MOD, token.AND:
		return true
	default:
		return false
	}
}

// parseUnary parses:
//
//	unary = ("-" | "not") unary | primary .
func (p *parser) parseUnary() ast.Expr {
	if p.tok.Kind == token.MINUS || p.tok.Kind == token.NOT {
		op := p.tok.Kind
		line := p.tok.Line
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: op, Operand: operand, Ln: line}
	}
	return p.parsePrimary()
}

// parsePrimary parses:
//
//	primary = intLit | realLit | stringLit | "true" | "false"
//	        | "(" expr ")"
//	        | ident ["(" [exprList] ")" | "[" expr "]"] .
func (p *parser) parsePrimary() ast.Expr {
	line := p.tok.Line
	switch p.tok.Kind {
	case token.INT:
		v := parseIntLiteral(p.tok.Value)
		p.advance()
		return &ast.IntLit{Value: v, Ln: line}

	case token.REAL:
		v, _ := strconv.ParseFloat(p.tok.Value, 64)
		p.advance()
		return &ast.RealLit{Value: v, Ln: line}

	case token.STRING:
		v := p.tok.Value
		p.advance()
		return &ast.StringLit{Value: v, Ln: line}

	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Ln: line}

	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Ln: line}

	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e

	case token.IDENT:
		name := p.tok.Value
		p.advance()
		if p.at(token.LPAREN) {
			p.advance()
			var args []ast.Expr
			if !p.at(token.RPAREN) {
				args = p.parseExprList()
			}
			p.expect(token.RPAREN)
			return &ast.CallExpr{Name: name, Args: args, Ln: line}
		}
		var e ast.Expr = &ast.Ident{Name: name, Ln: line}
		if p.at(token.LBRACK) {
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBRACK)
			e = &ast.IndexExpr{Array: e, Index: idx, Ln: line}
		}
		return e

	default:
		p.errorExpected("an expression")
		panic(errHalt) // unreachable
	}
}
