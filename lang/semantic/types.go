// Package semantic implements the semantic analysis pass: it walks a parsed
// ast.Program, builds a lexically-scoped symbol table, and type-checks
// every statement and expression. It never mutates the AST and records no
// per-node metadata: Check reports only whether the program is valid, and
// the code generator re-derives symbols and expression types in its own
// pass.
package semantic

import (
	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/types"
)

// Kind and Type are the shared type-classification vocabulary also used by
// package codegen; see github.com/dbarros/pasvm/lang/types.
type Kind = types.Kind
type Type = types.Type

const (
	Invalid = types.Invalid
	Integer = types.Integer
	Real    = types.Real
	Boolean = types.Boolean
	Char    = types.Char
	String  = types.String
)

func scalar(k Kind) Type { return types.Scalar(k) }

func resolveType(t ast.Type) Type { return types.Resolve(t) }
