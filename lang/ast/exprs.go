package ast

import (
	"fmt"

	"github.com/dbarros/pasvm/lang/token"
)

// Ident is a reference to a variable, parameter, constant, function or
// procedure name.
type Ident struct {
	Name string
	Ln   int
}

func (n *Ident) Line() int                     { return n.Ln }
func (n *Ident) expr()                         {}
func (n *Ident) Walk(_ Visitor)                {}
func (n *Ident) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	Ln    int
}

func (n *IntLit) Line() int                     { return n.Ln }
func (n *IntLit) expr()                         {}
func (n *IntLit) Walk(_ Visitor)                {}
func (n *IntLit) Format(f fmt.State, verb rune) { format(f, verb, n, fmt.Sprint(n.Value), nil) }

// RealLit is a real (floating-point) literal.
type RealLit struct {
	Value float64
	Ln    int
}

func (n *RealLit) Line() int                     { return n.Ln }
func (n *RealLit) expr()                         {}
func (n *RealLit) Walk(_ Visitor)                {}
func (n *RealLit) Format(f fmt.State, verb rune) { format(f, verb, n, fmt.Sprint(n.Value), nil) }

// StringLit is a string literal. When Value is exactly one character long
// it may also be used where a char is expected.
type StringLit struct {
	Value string
	Ln    int
}

func (n *StringLit) Line() int      { return n.Ln }
func (n *StringLit) expr()          {}
func (n *StringLit) Walk(_ Visitor) {}
func (n *StringLit) Format(f fmt.State, verb rune) {
	format(f, verb, n, "'"+n.Value+"'", nil)
}

// BoolLit is the "true" or "false" literal.
type BoolLit struct {
	Value bool
	Ln    int
}

func (n *BoolLit) Line() int                     { return n.Ln }
func (n *BoolLit) expr()                         {}
func (n *BoolLit) Walk(_ Visitor)                {}
func (n *BoolLit) Format(f fmt.State, verb rune) { format(f, verb, n, fmt.Sprint(n.Value), nil) }

// BinaryExpr is a binary operator expression. Op is one of the relational,
// additive or multiplicative token kinds (EQ, NEQ, LT, LE, GT, GE, PLUS,
// MINUS, OR, STAR, SLASH, DIV, MOD, AND).
type BinaryExpr struct {
	Op    token.Kind
	Left  Expr
	Right Expr
	Ln    int
}

func (n *BinaryExpr) Line() int { return n.Ln }
func (n *BinaryExpr) expr()     {}
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Op.String(), nil)
}

// UnaryExpr is a unary operator expression: "-x" or "not x".
type UnaryExpr struct {
	Op      token.Kind
	Operand Expr
	Ln      int
}

func (n *UnaryExpr) Line() int { return n.Ln }
func (n *UnaryExpr) expr()     {}
func (n *UnaryExpr) Walk(v Visitor) {
	Walk(v, n.Operand)
}
func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.String(), nil)
}

// CallExpr is a function call used as an expression, or a builtin call
// (length, abs, sqr, ...).
type CallExpr struct {
	Name string
	Args []Expr
	Ln   int
}

func (n *CallExpr) Line() int { return n.Ln }
func (n *CallExpr) expr()     {}
func (n *CallExpr) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call "+n.Name, map[string]int{"args": len(n.Args)})
}

// IndexExpr is an array element access: "Array[Index]".
type IndexExpr struct {
	Array Expr
	Index Expr
	Ln    int
}

func (n *IndexExpr) Line() int { return n.Ln }
func (n *IndexExpr) expr()     {}
func (n *IndexExpr) Walk(v Visitor) {
	Walk(v, n.Array)
	Walk(v, n.Index)
}
func (n *IndexExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "index", nil) }
