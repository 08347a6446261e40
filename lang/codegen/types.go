package codegen

import (
	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/types"
)

func resolveType(t ast.Type) types.Type { return types.Resolve(t) }

func paramTypes(params []*ast.Param) []types.Type {
	ts := make([]types.Type, len(params))
	for i, p := range params {
		ts[i] = resolveType(p.Type)
	}
	return ts
}

func paramVarFlags(params []*ast.Param) []bool {
	vs := make([]bool, len(params))
	for i, p := range params {
		vs[i] = p.IsVar
	}
	return vs
}
