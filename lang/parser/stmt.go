package parser

import (
	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/token"
)

// parseCompoundStatement parses:
//
//	compoundStatement = "begin" statement {";" statement} "end" .
func (p *parser) parseCompoundStatement() *ast.CompoundStatement {
	line := p.tok.Line
	p.expect(token.BEGIN)

	var stmts []ast.Stmt
	if !p.at(token.END) {
		stmts = append(stmts, p.parseStatement())
		for p.at(token.SEMI) {
			p.advance()
			if p.at(token.END) {
				break // trailing semicolon before end
			}
			stmts = append(stmts, p.parseStatement())
		}
	}
	p.expect(token.END)
	return &ast.CompoundStatement{Stmts: stmts, Ln: line}
}

// parseStatement parses a single statement:
//
//	statement = compoundStatement | ifStatement | whileStatement
//	          | forStatement | ioStatement | assignOrCallStatement .
func (p *parser) parseStatement() ast.Stmt {
	switch p.tok.Kind {
	case token.BEGIN:
		return p.parseCompoundStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.READ, token.READLN, token.WRITE, token.WRITELN:
		return p.parseIOStatement()
	case token.IDENT:
		return p.parseAssignOrCallStatement()
	default:
		p.errorExpected("a statement")
		panic(errHalt) // unreachable, errorExpected always panics
	}
}

// parseIfStatement parses:
//
//	ifStatement = "if" expr "then" statement ["else" statement] .
func (p *parser) parseIfStatement() *ast.IfStmt {
	line := p.tok.Line
	p.expect(token.IF)
	cond := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseStatement()

	var els ast.Stmt
	if p.at(token.ELSE) {
		p.advance()
		els = p.parseStatement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, Ln: line}
}

// parseWhileStatement parses:
//
//	whileStatement = "while" expr "do" statement .
func (p *parser) parseWhileStatement() *ast.WhileStmt {
	line := p.tok.Line
	p.expect(token.WHILE)
	cond := p.parseExpr()
	p.expect(token.DO)
	body := p.parseStatement()
	return &ast.WhileStmt{Cond: cond, Body: body, Ln: line}
}

// parseForStatement parses:
//
//	forStatement = "for" ident ":=" expr ("to" | "downto") expr "do" statement .
func (p *parser) parseForStatement() *ast.ForStmt {
	line := p.tok.Line
	p.expect(token.FOR)
	v := p.parseIdentName()
	p.expect(token.ASSIGN)
	start := p.parseExpr()

	down := false
	if p.at(token.DOWNTO) {
		down = true
		p.advance()
	} else {
		p.expect(token.TO)
	}
	end := p.parseExpr()
	p.expect(token.DO)
	body := p.parseStatement()

	return &ast.ForStmt{Var: v, Start: start, End: end, Down: down, Body: body, Ln: line}
}

var ioKinds = map[token.Kind]ast.IOKind{
	token.READ:    ast.IORead,
	token.READLN:  ast.IOReadln,
	token.WRITE:   ast.IOWrite,
	token.WRITELN: ast.IOWriteln,
}

// parseIOStatement parses:
//
//	ioStatement = ("read"|"readln"|"write"|"writeln") ["(" [exprList] ")"] .
func (p *parser) parseIOStatement() *ast.IOStmt {
	line := p.tok.Line
	kind := ioKinds[p.tok.Kind]
	p.advance()

	var args []ast.Expr
	if p.at(token.LPAREN) {
		p.advance()
		if !p.at(token.RPAREN) {
			args = p.parseExprList()
		}
		p.expect(token.RPAREN)
	}
	return &ast.IOStmt{Kind: kind, Args: args, Ln: line}
}

// parseAssignOrCallStatement parses:
//
//	assignOrCallStatement = designator ":=" expr
//	                      | ident ["(" [exprList] ")"] .
//
// designator = ident ["[" expr "]"].
func (p *parser) parseAssignOrCallStatement() ast.Stmt {
	line := p.tok.Line
	name := p.parseIdentName()

	if p.at(token.LPAREN) {
		p.advance()
		var args []ast.Expr
		if !p.at(token.RPAREN) {
			args = p.parseExprList()
		}
		p.expect(token.RPAREN)
		return &ast.CallStmt{Name: name, Args: args, Ln: line}
	}

	var target ast.Expr = &ast.Ident{Name: name, Ln: line}
	if p.at(token.LBRACK) {
		p.advance()
		idx := p.parseExpr()
		p.expect(token.RBRACK)
		target = &ast.IndexExpr{Array: target, Index: idx, Ln: line}
	}

	if p.at(token.ASSIGN) {
		p.advance()
		value := p.parseExpr()
		return &ast.AssignStmt{Target: target, Value: value, Ln: line}
	}

	if _, ok := target.(*ast.IndexExpr); ok {
		// an indexed designator not followed by ":=" is not a valid statement
		p.errorExpected(":=")
	}
	return &ast.CallStmt{Name: name, Ln: line}
}

func (p *parser) parseExprList() []ast.Expr {
	exprs := []ast.Expr{p.parseExpr()}
	for p.at(token.COMMA) {
		p.advance()
		exprs = append(exprs, p.parseExpr())
	}
	return exprs
}
