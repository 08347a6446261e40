package codegen

import "github.com/dbarros/pasvm/lang/types"

// SymbolKind classifies what a Symbol denotes during code generation.
type SymbolKind int8

const (
	SymVar SymbolKind = iota
	SymParam
	SymFunction
	SymProcedure
	SymBuiltin
)

// Symbol is an entry in a codegen Scope. Unlike semantic.Symbol it carries
// the frame/global layout information (Offset, Label) the generator needs
// to emit addressing instructions; the two passes never share Symbol
// instances, only the types.Kind/types.Type vocabulary.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Type   types.Type
	IsVar  bool // true for a VAR parameter, passed by address
	Global bool // true for a program-level variable, addressed via GP

	// Offset is FP-relative for locals, params and temporaries (ascending
	// from 0 for locals/temps, descending from -1 for params), or
	// GP-relative for globals (ascending from 0 across the whole program).
	Offset int

	// Label is the callable's entry label (SymFunction/SymProcedure) or the
	// BUILTIN_<NAME> dispatch tag (SymBuiltin).
	Label string

	Params    []types.Type
	ParamsVar []bool // per-parameter VAR flag, parallel to Params
	Return    types.Type // zero Type for a procedure
}
