// Package types implements the type-classification helpers shared by the
// semantic analyzer and the code generator: resolving an AST type node to
// a canonical Kind, and the array-bounds validation both passes need. Kept
// as pure functions with no scope/symbol dependency so neither pass has to
// duplicate type logic or risk disagreeing with the other.
package types

import (
	"fmt"

	"github.com/dbarros/pasvm/lang/ast"
)

// Kind identifies a Pascal scalar type.
type Kind int8

const (
	Invalid Kind = iota
	Integer
	Real
	Boolean
	Char
	String
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Boolean:
		return "boolean"
	case Char:
		return "char"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

// Type is a fully-resolved type: either a scalar Kind, or an array of a
// scalar Kind with static, integer-literal bounds.
type Type struct {
	Kind      Kind
	IsArray   bool
	Low, High int  // only meaningful when IsArray
	Elem      Kind // only meaningful when IsArray
}

func Scalar(k Kind) Type { return Type{Kind: k} }

func (t Type) String() string {
	if t.IsArray {
		return fmt.Sprintf("array[%d..%d] of %s", t.Low, t.High, t.Elem)
	}
	return t.Kind.String()
}

// Len reports an array type's element count, high - low + 1.
func (t Type) Len() int { return t.High - t.Low + 1 }

// Equal reports whether t and o name the same type for assignment and
// parameter-passing purposes: arrays compare by element kind, scalars by
// Kind. Numeric widening (INTEGER to REAL) is the caller's concern, not
// Equal's.
func (t Type) Equal(o Type) bool {
	if t.IsArray != o.IsArray {
		return false
	}
	if t.IsArray {
		return t.Elem == o.Elem
	}
	return t.Kind == o.Kind
}

// KindFromName maps a canonicalized type-name identifier (integer, real,
// boolean, char, string) to its Kind, or Invalid if unrecognized.
func KindFromName(name string) Kind {
	switch name {
	case "integer":
		return Integer
	case "real":
		return Real
	case "boolean":
		return Boolean
	case "char":
		return Char
	case "string":
		return String
	default:
		return Invalid
	}
}

// Resolve converts an ast.Type (a NamedType or ArrayType) into a Type. It
// does not validate array bounds; use ProcessArrayType for that.
func Resolve(t ast.Type) Type {
	switch tt := t.(type) {
	case *ast.NamedType:
		return Scalar(KindFromName(tt.Name))
	case *ast.ArrayType:
		elemName := tt.Elem.(*ast.NamedType).Name
		return Type{IsArray: true, Low: tt.Low, High: tt.High, Elem: KindFromName(elemName)}
	default:
		return Type{}
	}
}

// ProcessArrayType extracts the bounds and element type from an ArrayType
// AST node, reporting an error if the upper bound precedes the lower one.
func ProcessArrayType(at *ast.ArrayType) (Type, error) {
	t := Resolve(at)
	if t.High < t.Low {
		return t, fmt.Errorf("array bounds %d..%d are invalid: high must be >= low", t.Low, t.High)
	}
	return t, nil
}
