package semantic

// SymbolKind classifies what a Symbol denotes.
type SymbolKind int8

const (
	SymVar SymbolKind = iota
	SymParam
	SymFunction
	SymProcedure
	SymBuiltin
)

// Symbol is an entry in a Scope: a declared variable, parameter, function,
// procedure or builtin.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Type  Type // the declared/return type; zero Type for procedures
	IsVar bool // true for a VAR parameter, passed by address

	// Offset is this symbol's position in its frame: a byte/cell offset from
	// the frame pointer for locals and parameters, or from the global base
	// for globals. Its exact meaning is assigned by the code generator, not
	// here; the semantic pass only needs declare-before-use and type
	// checking, so Offset is left at its zero value in this package and
	// recomputed by codegen's own scope.
	Offset int

	// Params and Return describe a function/procedure Symbol's signature.
	Params []Type
	Return Type // zero Type for a procedure

	// Builtin is the builtin's canonical name (e.g. "length"), set only when
	// Kind == SymBuiltin.
	Builtin string
}
