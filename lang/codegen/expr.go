package codegen

import (
	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/types"
)

// exprType infers an expression's type for opcode selection. It trusts the
// semantic pass rather than re-validating; it only needs enough precision
// to choose between the INTEGER/REAL/STRING/CHAR/BOOLEAN instruction
// families.
func (g *generator) exprType(e ast.Expr) types.Type {
	switch ex := e.(type) {
	case *ast.IntLit:
		return types.Scalar(types.Integer)
	case *ast.RealLit:
		return types.Scalar(types.Real)
	case *ast.BoolLit:
		return types.Scalar(types.Boolean)
	case *ast.StringLit:
		return types.Scalar(types.String)
	case *ast.Ident:
		sym, ok := g.scope.Resolve(ex.Name)
		if !ok {
			g.errorf(ex.Ln, "%s is not declared", ex.Name)
		}
		return sym.Type
	case *ast.IndexExpr:
		sym := g.indexBaseSymbol(ex)
		if sym.Type.IsArray {
			return types.Scalar(sym.Type.Elem)
		}
		return types.Scalar(types.Char)
	case *ast.UnaryExpr:
		if ex.Op.String() == "not" {
			return types.Scalar(types.Boolean)
		}
		return g.exprType(ex.Operand)
	case *ast.BinaryExpr:
		return g.binaryResultType(ex)
	case *ast.CallExpr:
		sym, ok := g.scope.Resolve(ex.Name)
		if !ok {
			g.errorf(ex.Ln, "%s is not declared", ex.Name)
		}
		return sym.Return
	default:
		g.errorf(e.Line(), "unsupported expression %T", e)
		return types.Type{}
	}
}

func (g *generator) binaryResultType(ex *ast.BinaryExpr) types.Type {
	switch ex.Op.String() {
	case "=", "<>", "<", "<=", ">", ">=", "and", "or":
		return types.Scalar(types.Boolean)
	case "/":
		return types.Scalar(types.Real)
	default:
		lt, rt := g.exprType(ex.Left), g.exprType(ex.Right)
		if lt.Kind == types.String && rt.Kind == types.String {
			return types.Scalar(types.String)
		}
		if lt.Kind == types.Real || rt.Kind == types.Real {
			return types.Scalar(types.Real)
		}
		return types.Scalar(types.Integer)
	}
}

// pushExpr emits code that leaves e's value on top of stack.
func (g *generator) pushExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.IntLit:
		g.emit("PUSHI %d", ex.Value)
	case *ast.RealLit:
		g.emit("PUSHF %v", ex.Value)
	case *ast.BoolLit:
		if ex.Value {
			g.emit("PUSHI 1")
		} else {
			g.emit("PUSHI 0")
		}
	case *ast.StringLit:
		g.emit("PUSHS %q", ex.Value)
	case *ast.Ident:
		g.pushIdent(ex)
	case *ast.IndexExpr:
		g.pushIndex(ex)
	case *ast.UnaryExpr:
		g.pushUnary(ex)
	case *ast.BinaryExpr:
		g.emitBinary(ex)
	case *ast.CallExpr:
		g.emitCall(ex.Name, ex.Args, ex.Ln)
	default:
		g.errorf(e.Line(), "unsupported expression %T", e)
	}
}

func (g *generator) pushIdent(ex *ast.Ident) {
	sym, ok := g.scope.Resolve(ex.Name)
	if !ok {
		g.errorf(ex.Ln, "%s is not declared", ex.Name)
	}
	g.pushScalar(sym)
}

// pushScalar emits code that leaves sym's value (not its address) on TOS,
// dereferencing a VAR parameter where needed.
func (g *generator) pushScalar(sym *Symbol) {
	switch {
	case sym.Kind == SymParam && sym.IsVar:
		g.emit("PUSHL %d", sym.Offset)
		g.emit("LOAD 0")
	case sym.Global:
		g.emit("PUSHG %d", sym.Offset)
	default:
		g.emit("PUSHL %d", sym.Offset)
	}
}

// storeScalar emits code that pops TOS into sym.
func (g *generator) storeScalar(sym *Symbol) {
	switch {
	case sym.Kind == SymParam && sym.IsVar:
		g.pushAddressOfSymbol(sym)
		g.emit("SWAP")
		g.emit("STORE 0")
	case sym.Global:
		g.emit("STOREG %d", sym.Offset)
	default:
		g.emit("STOREL %d", sym.Offset)
	}
}

// pushAddressOfSymbol leaves sym's address on TOS: a VAR parameter is
// already an address (PUSHL), a global is GP-relative, anything else is
// FP-relative.
func (g *generator) pushAddressOfSymbol(sym *Symbol) {
	switch {
	case sym.Kind == SymParam && sym.IsVar:
		g.emit("PUSHL %d", sym.Offset)
	case sym.Global:
		g.emit("PUSHGP")
		g.emit("PUSHI %d", sym.Offset)
		g.emit("PADD")
	default:
		g.emit("PUSHFP")
		g.emit("PUSHI %d", sym.Offset)
		g.emit("PADD")
	}
}

// indexBaseSymbol resolves the symbol an IndexExpr indexes into: a true
// array, or a STRING-typed scalar (1-based character access).
func (g *generator) indexBaseSymbol(ix *ast.IndexExpr) *Symbol {
	ident, ok := ix.Array.(*ast.Ident)
	if !ok {
		g.errorf(ix.Line(), "only array or string variables can be indexed")
	}
	sym, ok := g.scope.Resolve(ident.Name)
	if !ok {
		g.errorf(ident.Ln, "%s is not declared", ident.Name)
	}
	return sym
}

func (g *generator) pushIndex(ex *ast.IndexExpr) {
	sym := g.indexBaseSymbol(ex)
	g.pushAddressOfSymbol(sym)
	g.pushExpr(ex.Index)

	if !sym.Type.IsArray && sym.Type.Kind == types.String {
		g.emit("PUSHI 1")
		g.emit("SUB")
		g.emit("CHARAT")
		return
	}

	if sym.Type.Low != 0 {
		g.emit("PUSHI %d", sym.Type.Low)
		g.emit("SUB")
	}
	g.emit("LOADN")
}

func (g *generator) pushUnary(ex *ast.UnaryExpr) {
	if ex.Op.String() == "not" {
		g.pushExpr(ex.Operand)
		g.emit("NOT")
		return
	}
	g.pushExpr(ex.Operand)
	if g.exprType(ex.Operand).Kind == types.Real {
		g.emit("PUSHF 0.0")
		g.emit("SWAP")
		g.emit("FSUB")
	} else {
		g.emit("PUSHI 0")
		g.emit("SWAP")
		g.emit("SUB")
	}
}

func (g *generator) emitBinary(ex *ast.BinaryExpr) {
	switch ex.Op.String() {
	case "+":
		g.emitAdditive(ex, "ADD", "FADD")
	case "-":
		g.emitAdditive(ex, "SUB", "FSUB")
	case "*":
		g.emitAdditive(ex, "MUL", "FMUL")
	case "/":
		g.pushDivisionOperands(ex.Left, ex.Right)
		g.emit("FDIV")
	case "div":
		g.pushExpr(ex.Left)
		g.pushExpr(ex.Right)
		g.emit("DIV")
	case "mod":
		g.pushExpr(ex.Left)
		g.pushExpr(ex.Right)
		g.emit("MOD")
	case "and":
		g.pushExpr(ex.Left)
		g.pushExpr(ex.Right)
		g.emit("AND")
	case "or":
		g.pushExpr(ex.Left)
		g.pushExpr(ex.Right)
		g.emit("OR")
	case "=":
		g.emitEquality(ex, false)
	case "<>":
		g.emitEquality(ex, true)
	case "<":
		g.emitRelational(ex, "INF", "FINF")
	case "<=":
		g.emitRelational(ex, "INFEQ", "FINFEQ")
	case ">":
		g.emitRelational(ex, "SUP", "FSUP")
	case ">=":
		g.emitRelational(ex, "SUPEQ", "FSUPEQ")
	default:
		g.errorf(ex.Ln, "unsupported operator %s", ex.Op)
	}
}

func (g *generator) emitAdditive(ex *ast.BinaryExpr, intOp, floatOp string) {
	lt := g.exprType(ex.Left)
	rt := g.exprType(ex.Right)
	if ex.Op.String() == "+" && lt.Kind == types.String && rt.Kind == types.String {
		g.errorf(ex.Ln, "string concatenation has no emission path")
		return
	}
	if g.pushNumericOperands(ex.Left, ex.Right) {
		g.emit(floatOp)
	} else {
		g.emit(intOp)
	}
}

func (g *generator) emitRelational(ex *ast.BinaryExpr, intOp, floatOp string) {
	if g.pushNumericOperands(ex.Left, ex.Right) {
		g.emit(floatOp)
	} else {
		g.emit(intOp)
	}
}

func (g *generator) emitEquality(ex *ast.BinaryExpr, negate bool) {
	if !g.emitCharLiteralCompare(ex) {
		if g.pushNumericOperands(ex.Left, ex.Right) {
			g.emit("FEQUAL")
		} else {
			g.emit("EQUAL")
		}
	}
	if negate {
		g.emit("NOT")
	}
}

// emitCharLiteralCompare implements the special case of comparing a
// CHAR-typed expression (typically an indexed string character) against a
// single-character string literal: the literal's ASCII code is pushed
// directly with PUSHI rather than boxed as a full string constant.
func (g *generator) emitCharLiteralCompare(ex *ast.BinaryExpr) bool {
	lit, other, ok := splitCharLiteral(ex.Left, ex.Right)
	if !ok {
		return false
	}
	if g.exprType(other).Kind != types.Char {
		return false
	}
	g.pushExpr(other)
	g.emit("PUSHI %d", lit.Value[0])
	g.emit("EQUAL")
	return true
}

func splitCharLiteral(left, right ast.Expr) (lit *ast.StringLit, other ast.Expr, ok bool) {
	if l, isLit := left.(*ast.StringLit); isLit && len(l.Value) == 1 {
		return l, right, true
	}
	if r, isLit := right.(*ast.StringLit); isLit && len(r.Value) == 1 {
		return r, left, true
	}
	return nil, nil, false
}

// pushNumericOperands evaluates left then right, widening whichever side is
// INTEGER to REAL (via ITOF, with SWAP to reach the buried operand) when the
// other side is REAL. It reports whether the pair ended up REAL.
func (g *generator) pushNumericOperands(left, right ast.Expr) bool {
	lt := g.exprType(left)
	rt := g.exprType(right)
	g.pushExpr(left)
	g.pushExpr(right)

	real := lt.Kind == types.Real || rt.Kind == types.Real
	if !real {
		return false
	}
	if rt.Kind != types.Real {
		g.emit("ITOF")
	}
	if lt.Kind != types.Real {
		g.emit("SWAP")
		g.emit("ITOF")
		g.emit("SWAP")
	}
	return true
}

// pushDivisionOperands is pushNumericOperands's unconditional twin: "/"
// always targets FDIV, so both sides are forced to REAL regardless of
// whether either one started out REAL.
func (g *generator) pushDivisionOperands(left, right ast.Expr) {
	lt := g.exprType(left)
	rt := g.exprType(right)
	g.pushExpr(left)
	g.pushExpr(right)
	if rt.Kind != types.Real {
		g.emit("ITOF")
	}
	if lt.Kind != types.Real {
		g.emit("SWAP")
		g.emit("ITOF")
		g.emit("SWAP")
	}
}
