package codegen

import (
	"strings"

	"github.com/dolthub/swiss"

	"github.com/dbarros/pasvm/lang/types"
)

// Scope is one frame's worth of declarations during code generation: the
// root (program-level, holding globals and builtins) or a callable's own
// scope (holding its parameters, locals and nested callables). It is built
// independently of semantic.Scope; the two passes keep separate scope
// trees (see spec's note on not sharing scope state between passes), each
// rediscovering declarations as it walks the AST.
type Scope struct {
	parent *Scope
	table  *swiss.Map[string, *Symbol]

	nextLocal  int // next ascending FP-relative offset, for locals/temps
	nextGlobal int // next ascending GP-relative offset; meaningful on the root scope only
}

// NewRootScope creates the program-level scope, pre-populated with the
// builtin callables tagged with their BUILTIN_<NAME> dispatch label.
func NewRootScope() *Scope {
	s := &Scope{table: swiss.NewMap[string, *Symbol](32)}
	registerBuiltins(s)
	return s
}

// NewChildScope creates a scope nested under parent, for a callable body.
func NewChildScope(parent *Scope) *Scope {
	return &Scope{parent: parent, table: swiss.NewMap[string, *Symbol](8)}
}

// Declare adds sym under name to s.
func (s *Scope) Declare(name string, sym *Symbol) {
	s.table.Put(name, sym)
}

// Resolve looks up name in s, then in each enclosing scope in turn.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.table.Get(name); ok {
			return sym, true
		}
	}
	return nil, false
}

// ResolveLocal looks up name only in s, not in any enclosing scope.
func (s *Scope) ResolveLocal(name string) (*Symbol, bool) {
	return s.table.Get(name)
}

// allocLocal reserves n consecutive FP-relative slots and returns the
// first one.
func (s *Scope) allocLocal(n int) int {
	off := s.nextLocal
	s.nextLocal += n
	return off
}

// allocGlobal reserves n consecutive GP-relative slots and returns the
// first one. Only meaningful on the root scope.
func (s *Scope) allocGlobal(n int) int {
	off := s.nextGlobal
	s.nextGlobal += n
	return off
}

func registerBuiltins(s *Scope) {
	for _, b := range []struct {
		name   string
		params []types.Type
		ret    types.Type
	}{
		{"length", []types.Type{types.Scalar(types.String)}, types.Scalar(types.Integer)},
		{"abs", []types.Type{types.Scalar(types.Integer)}, types.Scalar(types.Integer)},
		{"sqr", []types.Type{types.Scalar(types.Integer)}, types.Scalar(types.Integer)},
		{"uppercase", []types.Type{types.Scalar(types.String)}, types.Scalar(types.String)},
		{"lowercase", []types.Type{types.Scalar(types.String)}, types.Scalar(types.String)},
		{"sqrt", []types.Type{types.Scalar(types.Real)}, types.Scalar(types.Real)},
		{"pred", []types.Type{types.Scalar(types.Integer)}, types.Scalar(types.Integer)},
		{"succ", []types.Type{types.Scalar(types.Integer)}, types.Scalar(types.Integer)},
	} {
		s.Declare(b.name, &Symbol{
			Name: b.name, Kind: SymBuiltin, Label: "BUILTIN_" + strings.ToUpper(b.name),
			Params: b.params, Return: b.ret, Type: b.ret,
		})
	}
}
