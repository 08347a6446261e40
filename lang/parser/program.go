package parser

import (
	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/token"
)

// parseProgram parses:
//
//	program = "program" ident ";" {declaration} compoundStatement "." .
func (p *parser) parseProgram() *ast.Program {
	line := p.tok.Line
	p.expect(token.PROGRAM)
	name := p.parseIdentName()
	p.expect(token.SEMI)

	decls := p.parseDecls()
	body := p.parseCompoundStatement()
	p.expect(token.DOT)
	p.expect(token.EOF)

	return &ast.Program{Name: name, Decls: decls, Body: body, Ln: line}
}

// parseDecls parses the sequence of var-declaration blocks and
// function/procedure declarations that precede a block's compound
// statement.
func (p *parser) parseDecls() []ast.Decl {
	var decls []ast.Decl
	for {
		switch p.tok.Kind {
		case token.VAR:
			decls = append(decls, p.parseVarSection()...)
		case token.FUNCTION:
			decls = append(decls, p.parseFuncDecl(true))
		case token.PROCEDURE:
			decls = append(decls, p.parseFuncDecl(false))
		default:
			return decls
		}
	}
}

// parseVarSection parses:
//
//	varSection = "var" varDecl {varDecl} .
//	varDecl    = identList ":" type ";" .
func (p *parser) parseVarSection() []ast.Decl {
	p.expect(token.VAR)
	var decls []ast.Decl
	decls = append(decls, p.parseVarDecl())
	for p.at(token.IDENT) {
		decls = append(decls, p.parseVarDecl())
	}
	return decls
}

func (p *parser) parseVarDecl() *ast.VarDecl {
	line := p.tok.Line
	names := p.parseIdentList()
	p.expect(token.COLON)
	typ := p.parseType()
	p.expect(token.SEMI)
	return &ast.VarDecl{Names: names, Type: typ, Ln: line}
}

func (p *parser) parseIdentList() []string {
	names := []string{p.parseIdentName()}
	for p.at(token.COMMA) {
		p.advance()
		names = append(names, p.parseIdentName())
	}
	return names
}

// parseType parses:
//
//	type      = scalarType | arrayType .
//	scalarType = "integer" | "real" | "boolean" | "char" | "string" .
//	arrayType  = "array" "[" intLit ".." intLit "]" "of" scalarType .
func (p *parser) parseType() ast.Type {
	line := p.tok.Line
	if p.at(token.ARRAY) {
		p.advance()
		p.expect(token.LBRACK)
		low := p.parseIntBound()
		p.expect(token.DOTDOT)
		high := p.parseIntBound()
		p.expect(token.RBRACK)
		p.expect(token.OF)
		elem := p.parseScalarType(p.tok.Line)
		return &ast.ArrayType{Low: int(low), High: int(high), Elem: elem, Ln: line}
	}
	return p.parseScalarType(line)
}

func (p *parser) parseScalarType(line int) ast.Type {
	if !p.tok.Kind.IsTypeName() {
		p.errorExpected("a type name")
	}
	name := p.tok.Kind.String()
	p.advance()
	return &ast.NamedType{Name: name, Ln: line}
}

func (p *parser) parseIntBound() int64 {
	neg := false
	if p.at(token.MINUS) {
		neg = true
		p.advance()
	}
	tok := p.expect(token.INT)
	v := parseIntLiteral(tok.Value)
	if neg {
		v = -v
	}
	return v
}

// parseParamList parses:
//
//	paramList = "(" param {";" param} ")" .
//	param     = ["var"] identList ":" scalarType .
func (p *parser) parseParamList() []*ast.Param {
	p.expect(token.LPAREN)
	var params []*ast.Param
	params = append(params, p.parseParamGroup()...)
	for p.at(token.SEMI) {
		p.advance()
		params = append(params, p.parseParamGroup()...)
	}
	p.expect(token.RPAREN)
	return params
}

func (p *parser) parseParamGroup() []*ast.Param {
	line := p.tok.Line
	isVar := false
	if p.at(token.VAR) {
		isVar = true
		p.advance()
	}
	names := p.parseIdentList()
	p.expect(token.COLON)
	typ := p.parseScalarType(p.tok.Line)

	params := make([]*ast.Param, len(names))
	for i, name := range names {
		params[i] = &ast.Param{Name: name, Type: typ, IsVar: isVar, Ln: line}
	}
	return params
}

// parseFuncDecl parses:
//
//	funcDecl = "function" ident [paramList] ":" scalarType ";" block ";" .
//	procDecl = "procedure" ident [paramList] ";" block ";" .
func (p *parser) parseFuncDecl(isFunction bool) *ast.FuncDecl {
	line := p.tok.Line
	if isFunction {
		p.expect(token.FUNCTION)
	} else {
		p.expect(token.PROCEDURE)
	}
	name := p.parseIdentName()

	var params []*ast.Param
	if p.at(token.LPAREN) {
		params = p.parseParamList()
	}

	var retType ast.Type
	if isFunction {
		p.expect(token.COLON)
		retType = p.parseScalarType(p.tok.Line)
	}
	p.expect(token.SEMI)

	decls := p.parseDecls()
	var locals []*ast.VarDecl
	var nested []*ast.FuncDecl
	for _, d := range decls {
		switch dd := d.(type) {
		case *ast.VarDecl:
			locals = append(locals, dd)
		case *ast.FuncDecl:
			nested = append(nested, dd)
		}
	}

	body := p.parseCompoundStatement()
	p.expect(token.SEMI)

	return &ast.FuncDecl{
		Name:       name,
		Params:     params,
		ReturnType: retType,
		Locals:     locals,
		Nested:     nested,
		Body:       body,
		Ln:         line,
	}
}
