package semantic

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

// Scope is a single lexical scope: the root (program-level, holding
// globals and builtins) or a function/procedure's own scope (holding its
// parameters, locals and nested callables). Name lookup walks up the parent
// chain: a callable sees its own names, those of every callable it is
// nested in, and the globals, but not the locals of any other callable.
type Scope struct {
	parent *Scope
	table  *swiss.Map[string, *Symbol]
}

// NewRootScope creates the program-level scope, pre-populated with the
// builtin functions.
func NewRootScope() *Scope {
	s := &Scope{table: swiss.NewMap[string, *Symbol](32)}
	registerBuiltins(s)
	return s
}

// NewChildScope creates a scope nested under parent, for a function or
// procedure body.
func NewChildScope(parent *Scope) *Scope {
	return &Scope{parent: parent, table: swiss.NewMap[string, *Symbol](8)}
}

// Declare adds sym under name to s. It reports false if name is already
// declared directly in s (shadowing an outer scope's symbol is fine;
// redeclaring in the same scope is not).
func (s *Scope) Declare(name string, sym *Symbol) bool {
	if _, ok := s.table.Get(name); ok {
		return false
	}
	s.table.Put(name, sym)
	return true
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

// Names returns the names declared directly in s, sorted, for debug
// dumps of a scope's contents.
func (s *Scope) Names() []string {
	names := make([]string, 0, s.table.Count())
	s.table.Iter(func(k string, _ *Symbol) (stop bool) {
		names = append(names, k)
		return false
	})
	slices.Sort(names)
	return names
}

func registerBuiltins(s *Scope) {
	for _, b := range []struct {
		name   string
		params []Type
		ret    Type
	}{
		{"length", []Type{scalar(String)}, scalar(Integer)},
		{"abs", []Type{scalar(Integer)}, scalar(Integer)},
		{"sqr", []Type{scalar(Integer)}, scalar(Integer)},
		{"uppercase", []Type{scalar(String)}, scalar(String)},
		{"lowercase", []Type{scalar(String)}, scalar(String)},
		{"sqrt", []Type{scalar(Real)}, scalar(Real)},
		{"pred", []Type{scalar(Integer)}, scalar(Integer)},
		{"succ", []Type{scalar(Integer)}, scalar(Integer)},
	} {
		s.Declare(b.name, &Symbol{
			Name: b.name, Kind: SymBuiltin, Builtin: b.name,
			Params: b.params, Return: b.ret, Type: b.ret,
		})
	}
}
