package codegen

import (
	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/types"
)

// emitCall dispatches a call (expression or statement position) by name:
// a builtin goes through emitBuiltinCall, anything else through
// emitUserCall.
func (g *generator) emitCall(name string, args []ast.Expr, line int) {
	sym, ok := g.scope.Resolve(name)
	if !ok {
		g.errorf(line, "%s is not declared", name)
	}
	if sym.Kind == SymBuiltin {
		g.emitBuiltinCall(sym, args, line)
		return
	}
	if sym.Kind != SymFunction && sym.Kind != SymProcedure {
		g.errorf(line, "%s is not callable", name)
	}
	g.emitUserCall(sym, args, line)
}

// emitUserCall evaluates each argument left to right, pushing an address
// for a VAR parameter and a value otherwise, then calls through the
// callable's entry label.
func (g *generator) emitUserCall(sym *Symbol, args []ast.Expr, line int) {
	if len(args) != len(sym.Params) {
		g.errorf(line, "%s expects %d argument(s), got %d", sym.Name, len(sym.Params), len(args))
	}
	for i, arg := range args {
		if i < len(sym.ParamsVar) && sym.ParamsVar[i] {
			ident, ok := arg.(*ast.Ident)
			if !ok {
				g.errorf(arg.Line(), "VAR argument must be a variable")
			}
			argSym, ok := g.scope.Resolve(ident.Name)
			if !ok {
				g.errorf(ident.Ln, "%s is not declared", ident.Name)
			}
			g.pushAddressOfSymbol(argSym)
			continue
		}
		g.pushExpr(arg)
	}
	g.emit("PUSHA %s", sym.Label)
	g.emit("CALL")
}

// emitBuiltinCall handles the builtins that actually emit code (length,
// abs, sqr). The others (uppercase, lowercase, sqrt, pred, succ) type-check
// in the semantic pass but leave no emission path here: the call site
// produces no instructions, a comment marks the gap.
func (g *generator) emitBuiltinCall(sym *Symbol, args []ast.Expr, line int) {
	switch sym.Name {
	case "length":
		if len(args) != 1 {
			g.errorf(line, "length expects 1 argument, got %d", len(args))
		}
		if lit, ok := args[0].(*ast.StringLit); ok {
			g.emit("PUSHI %d", len(lit.Value))
			return
		}
		g.pushExpr(args[0])
		g.emit("STRLEN")

	case "abs":
		g.requireInteger("abs", args[0], line)
		g.pushExpr(args[0])
		g.emitAbs()

	case "sqr":
		g.requireInteger("sqr", args[0], line)
		g.pushExpr(args[0])
		g.emit("DUP 1")
		g.emit("MUL")

	default:
		g.lines = append(g.lines, "    // unsupported builtin "+sym.Name)
	}
}

// requireInteger rejects a non-INTEGER argument to a builtin whose emitted
// opcode sequence (INF/SUB for abs, MUL for sqr) only makes sense on
// INTEGER operands. Argument types aren't enforced by the semantic pass, so
// this is the last point that can catch a REAL argument before it gets the
// wrong opcodes.
func (g *generator) requireInteger(builtin string, arg ast.Expr, line int) {
	if t := g.exprType(arg); t.Kind != types.Integer {
		g.errorf(line, "%s expects an INTEGER argument, got %s", builtin, t)
	}
}

// emitAbs duplicates the INTEGER value, tests it against zero, and negates
// it in place when negative, using the same PUSHI 0; SWAP; SUB shape as
// unary minus.
func (g *generator) emitAbs() {
	end := g.freshLabel("ABS_END")
	g.emit("DUP 1")
	g.emit("PUSHI 0")
	g.emit("INF")
	g.emit("JZ %s", end)
	g.emit("PUSHI 0")
	g.emit("SWAP")
	g.emit("SUB")
	g.label(end)
}
