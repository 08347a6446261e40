package ast

import "fmt"

// NamedType references one of the scalar types: integer, real, boolean,
// char or string.
type NamedType struct {
	Name string
	Ln   int
}

func (n *NamedType) Line() int                       { return n.Ln }
func (n *NamedType) Walk(_ Visitor)                   {}
func (n *NamedType) typ()                             {}
func (n *NamedType) Format(f fmt.State, verb rune)    { format(f, verb, n, n.Name, nil) }

// ArrayType represents "array[Low..High] of Elem".
type ArrayType struct {
	Low, High int
	Elem      Type
	Ln        int
}

func (n *ArrayType) Line() int     { return n.Ln }
func (n *ArrayType) typ()          {}
func (n *ArrayType) Walk(v Visitor) {
	if n.Elem != nil {
		Walk(v, n.Elem)
	}
}
func (n *ArrayType) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("array[%d..%d]", n.Low, n.High), nil)
}

// VarDecl declares one or more variables sharing a type, e.g. "a, b: integer".
type VarDecl struct {
	Names []string
	Type  Type
	Ln    int
}

func (n *VarDecl) Line() int { return n.Ln }
func (n *VarDecl) decl()     {}
func (n *VarDecl) Walk(v Visitor) {
	if n.Type != nil {
		Walk(v, n.Type)
	}
}
func (n *VarDecl) Format(f fmt.State, verb rune) {
	format(f, verb, n, "var "+joinNames(n.Names), nil)
}

// Param is a single formal parameter of a function or procedure. IsVar
// marks a VAR parameter, passed by address rather than by value.
type Param struct {
	Name  string
	Type  Type
	IsVar bool
	Ln    int
}

func (n *Param) Line() int { return n.Ln }
func (n *Param) Walk(v Visitor) {
	if n.Type != nil {
		Walk(v, n.Type)
	}
}
func (n *Param) Format(f fmt.State, verb rune) {
	label := n.Name
	if n.IsVar {
		label = "var " + label
	}
	format(f, verb, n, label, nil)
}

// FuncDecl is a function or procedure declaration. ReturnType is nil for a
// procedure.
type FuncDecl struct {
	Name       string
	Params     []*Param
	ReturnType Type
	Locals     []*VarDecl
	Nested     []*FuncDecl
	Body       *CompoundStatement
	Ln         int
}

func (n *FuncDecl) Line() int { return n.Ln }
func (n *FuncDecl) decl()     {}
func (n *FuncDecl) IsFunction() bool { return n.ReturnType != nil }
func (n *FuncDecl) Walk(v Visitor) {
	for _, p := range n.Params {
		Walk(v, p)
	}
	if n.ReturnType != nil {
		Walk(v, n.ReturnType)
	}
	for _, l := range n.Locals {
		Walk(v, l)
	}
	for _, nf := range n.Nested {
		Walk(v, nf)
	}
	if n.Body != nil {
		Walk(v, n.Body)
	}
}
func (n *FuncDecl) Format(f fmt.State, verb rune) {
	kind := "procedure"
	if n.IsFunction() {
		kind = "function"
	}
	format(f, verb, n, kind+" "+n.Name, map[string]int{"params": len(n.Params), "locals": len(n.Locals), "nested": len(n.Nested)})
}

func joinNames(names []string) string {
	s := ""
	for i, nm := range names {
		if i > 0 {
			s += ", "
		}
		s += nm
	}
	return s
}
