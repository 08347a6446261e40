package ast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbarros/pasvm/lang/ast"
)

func TestPrinterPrintsOneIndentedLinePerNode(t *testing.T) {
	prog := &ast.Program{
		Name: "p",
		Body: &ast.CompoundStatement{
			Stmts: []ast.Stmt{
				&ast.AssignStmt{
					Target: &ast.Ident{Name: "x", Ln: 3},
					Value:  &ast.IntLit{Value: 1, Ln: 3},
					Ln:     3,
				},
			},
		},
	}

	var buf strings.Builder
	p := ast.Printer{Output: &buf, ShowLines: true}
	require.NoError(t, p.Print(prog))

	out := buf.String()
	assert.Contains(t, out, "program p")
	assert.Contains(t, out, "[3]")

	var assignLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, ":=") {
			assignLine = line
		}
	}
	require.NotEmpty(t, assignLine)
	assert.True(t, strings.HasPrefix(assignLine, ". "), "nested node should be indented: %q", assignLine)
}
