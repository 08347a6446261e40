package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/parser"
	"github.com/dbarros/pasvm/lang/scanner"
)

func TestParseMinimalProgram(t *testing.T) {
	prog, err := parser.ParseSource("t.pas", []byte(`
program Empty;
begin
end.
`))
	require.NoError(t, err)
	assert.Equal(t, "empty", prog.Name)
	assert.Empty(t, prog.Decls)
	assert.Empty(t, prog.Body.Stmts)
}

func TestParseVarDeclsAndAssignment(t *testing.T) {
	prog, err := parser.ParseSource("t.pas", []byte(`
program P;
var
  x, y: integer;
  total: real;
begin
  x := 1;
  y := x + 2;
  total := 3.5
end.
`))
	require.NoError(t, err)
	require.Len(t, prog.Decls, 2)

	vd0 := prog.Decls[0].(*ast.VarDecl)
	assert.Equal(t, []string{"x", "y"}, vd0.Names)
	assert.Equal(t, "integer", vd0.Type.(*ast.NamedType).Name)

	vd1 := prog.Decls[1].(*ast.VarDecl)
	assert.Equal(t, []string{"total"}, vd1.Names)

	require.Len(t, prog.Body.Stmts, 3)
	assign := prog.Body.Stmts[0].(*ast.AssignStmt)
	assert.Equal(t, "x", assign.Target.(*ast.Ident).Name)
	assert.Equal(t, int64(1), assign.Value.(*ast.IntLit).Value)
}

func TestParseArrayDeclAndIndex(t *testing.T) {
	prog, err := parser.ParseSource("t.pas", []byte(`
program P;
var
  a: array[1..10] of integer;
begin
  a[1] := 5
end.
`))
	require.NoError(t, err)
	vd := prog.Decls[0].(*ast.VarDecl)
	arr := vd.Type.(*ast.ArrayType)
	assert.Equal(t, 1, arr.Low)
	assert.Equal(t, 10, arr.High)
	assert.Equal(t, "integer", arr.Elem.(*ast.NamedType).Name)

	assign := prog.Body.Stmts[0].(*ast.AssignStmt)
	idx := assign.Target.(*ast.IndexExpr)
	assert.Equal(t, "a", idx.Array.(*ast.Ident).Name)
}

func TestParseIfWhileFor(t *testing.T) {
	prog, err := parser.ParseSource("t.pas", []byte(`
program P;
var i: integer;
begin
  if i = 0 then
    i := 1
  else
    i := 2;
  while i < 10 do
    i := i + 1;
  for i := 1 to 10 do
    i := i
end.
`))
	require.NoError(t, err)
	require.Len(t, prog.Body.Stmts, 3)
	ifs := prog.Body.Stmts[0].(*ast.IfStmt)
	assert.NotNil(t, ifs.Else)
	_, ok := prog.Body.Stmts[1].(*ast.WhileStmt)
	assert.True(t, ok)
	forStmt := prog.Body.Stmts[2].(*ast.ForStmt)
	assert.False(t, forStmt.Down)
}

func TestParseFunctionAndProcedureDecl(t *testing.T) {
	prog, err := parser.ParseSource("t.pas", []byte(`
program P;

function Square(n: integer): integer;
begin
  Square := n * n
end;

procedure Greet(var msg: string);
begin
  writeln(msg)
end;

begin
  writeln(Square(3))
end.
`))
	require.NoError(t, err)
	require.Len(t, prog.Decls, 2)

	fn := prog.Decls[0].(*ast.FuncDecl)
	assert.Equal(t, "square", fn.Name)
	assert.True(t, fn.IsFunction())
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "n", fn.Params[0].Name)

	proc := prog.Decls[1].(*ast.FuncDecl)
	assert.Equal(t, "greet", proc.Name)
	assert.False(t, proc.IsFunction())
	assert.True(t, proc.Params[0].IsVar)
}

func TestParseOperatorPrecedence(t *testing.T) {
	prog, err := parser.ParseSource("t.pas", []byte(`
program P;
var x: boolean;
begin
  x := 1 + 2 * 3 = 7
end.
`))
	require.NoError(t, err)
	assign := prog.Body.Stmts[0].(*ast.AssignStmt)
	rel := assign.Value.(*ast.BinaryExpr)
	assert.Equal(t, "=", rel.Op.String())
	add := rel.Left.(*ast.BinaryExpr)
	assert.Equal(t, "+", add.Op.String())
	mul := add.Right.(*ast.BinaryExpr)
	assert.Equal(t, "*", mul.Op.String())
}

func TestParseSyntaxErrorHaltsWithSingleError(t *testing.T) {
	_, err := parser.ParseSource("t.pas", []byte(`
program P;
begin
  x := ;
end.
`))
	require.Error(t, err)
	var list scanner.ErrorList
	require.ErrorAs(t, err, &list)
	assert.Len(t, list, 1)
}

func TestParseStringLiteralWithDoubledQuote(t *testing.T) {
	prog, err := parser.ParseSource("t.pas", []byte(`
program P;
begin
  writeln('it''s fine')
end.
`))
	require.NoError(t, err)
	io := prog.Body.Stmts[0].(*ast.IOStmt)
	require.Len(t, io.Args, 1)
	assert.Equal(t, "it's fine", io.Args[0].(*ast.StringLit).Value)
}
