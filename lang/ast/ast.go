// Package ast defines the types that represent the abstract syntax tree of a
// Pascal program.
package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself. The only supported verbs are 'v' and 's'; the '#' flag prints
	// child-count information, and a width pads or truncates the label the
	// same way the teacher's printer does.
	fmt.Formatter

	// Line reports the 1-based source line the node starts on, or 0 if
	// unknown (synthesized nodes).
	Line() int

	// Walk visits the node's children, used by the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmt()
}

// Decl represents a top-level or nested declaration: a variable declaration
// block or a function/procedure declaration.
type Decl interface {
	Node
	decl()
}

// Type represents a type reference: either a NamedType (a scalar type) or
// an ArrayType.
type Type interface {
	Node
	typ()
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}

// Program is the root of the AST: a single Pascal "program ... ." unit.
type Program struct {
	Name  string // the program identifier
	Decls []Decl // var-declaration blocks and function/procedure declarations, in source order
	Body  *CompoundStatement
	Ln    int
}

func (n *Program) Line() int { return n.Ln }
func (n *Program) Format(f fmt.State, verb rune) {
	format(f, verb, n, "program "+n.Name, map[string]int{"decls": len(n.Decls)})
}
func (n *Program) Walk(v Visitor) {
	for _, d := range n.Decls {
		Walk(v, d)
	}
	if n.Body != nil {
		Walk(v, n.Body)
	}
}
