package codegen

import (
	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/types"
)

func (g *generator) stmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.CompoundStatement:
		for _, inner := range st.Stmts {
			g.stmt(inner)
		}
	case *ast.AssignStmt:
		g.assign(st)
	case *ast.IfStmt:
		g.emitIf(st)
	case *ast.WhileStmt:
		g.emitWhile(st)
	case *ast.ForStmt:
		g.emitFor(st)
	case *ast.IOStmt:
		g.emitIO(st)
	case *ast.CallStmt:
		g.emitCall(st.Name, st.Args, st.Ln)
	default:
		g.errorf(s.Line(), "unsupported statement %T", s)
	}
}

// assign handles the three assignment target shapes: a plain identifier, a
// function's own name used as its return slot (value left on TOS, no
// store), and an array or string-character element.
func (g *generator) assign(st *ast.AssignStmt) {
	switch target := st.Target.(type) {
	case *ast.Ident:
		g.pushExpr(st.Value)

		if g.currentFunc != nil && g.currentFunc.Name == target.Name {
			if _, shadowed := g.scope.ResolveLocal(target.Name); !shadowed {
				return
			}
		}

		sym, ok := g.scope.Resolve(target.Name)
		if !ok {
			g.errorf(target.Ln, "%s is not declared", target.Name)
		}
		g.storeScalar(sym)

	case *ast.IndexExpr:
		g.pushExpr(st.Value)
		temp := g.newTemp()
		g.emit("STOREL %d", temp)

		sym := g.indexBaseSymbol(target)
		g.pushAddressOfSymbol(sym)
		g.pushExpr(target.Index)
		if sym.Type.IsArray {
			if sym.Type.Low != 0 {
				g.emit("PUSHI %d", sym.Type.Low)
				g.emit("SUB")
			}
		} else {
			g.emit("PUSHI 1")
			g.emit("SUB")
		}
		g.emit("PUSHL %d", temp)
		g.emit("STOREN")

	default:
		g.errorf(st.Ln, "invalid assignment target")
	}
}

func (g *generator) emitIf(st *ast.IfStmt) {
	g.pushExpr(st.Cond)

	if st.Else == nil {
		end := g.freshLabel("ENDIF")
		g.emit("JZ %s", end)
		g.stmt(st.Then)
		g.label(end)
		return
	}

	elseLabel := g.freshLabel("ELSE")
	end := g.freshLabel("ENDIF")
	g.emit("JZ %s", elseLabel)
	g.stmt(st.Then)
	g.emit("JUMP %s", end)
	g.label(elseLabel)
	g.stmt(st.Else)
	g.label(end)
}

func (g *generator) emitWhile(st *ast.WhileStmt) {
	start := g.freshLabel("WHILE")
	end := g.freshLabel("ENDWHILE")
	g.label(start)
	g.pushExpr(st.Cond)
	g.emit("JZ %s", end)
	g.stmt(st.Body)
	g.emit("JUMP %s", start)
	g.label(end)
}

func (g *generator) emitFor(st *ast.ForStmt) {
	sym, ok := g.scope.Resolve(st.Var)
	if !ok {
		g.errorf(st.Ln, "%s is not declared", st.Var)
	}

	temp := g.newTemp()
	g.pushExpr(st.End)
	g.emit("STOREL %d", temp)

	g.pushExpr(st.Start)
	g.storeScalar(sym)

	check := g.freshLabel("FORCHECK")
	end := g.freshLabel("ENDFOR")
	g.label(check)
	g.pushScalar(sym)
	g.emit("PUSHL %d", temp)
	if st.Down {
		g.emit("SUPEQ")
	} else {
		g.emit("INFEQ")
	}
	g.emit("JZ %s", end)

	g.stmt(st.Body)

	g.pushScalar(sym)
	g.emit("PUSHI 1")
	if st.Down {
		g.emit("SUB")
	} else {
		g.emit("ADD")
	}
	g.storeScalar(sym)
	g.emit("JUMP %s", check)
	g.label(end)
}

func (g *generator) emitIO(st *ast.IOStmt) {
	switch st.Kind {
	case ast.IOWrite, ast.IOWriteln:
		for _, arg := range st.Args {
			g.pushExpr(arg)
			g.emit(writeOpcode(g.exprType(arg)))
		}
		if st.Kind == ast.IOWriteln {
			g.emit("WRITELN")
		}
	case ast.IORead, ast.IOReadln:
		for _, arg := range st.Args {
			g.emitRead(arg)
		}
	}
}

func writeOpcode(t types.Type) string {
	switch t.Kind {
	case types.String:
		return "WRITES"
	case types.Real:
		return "WRITEF"
	case types.Integer:
		return "WRITEI"
	default: // Boolean, Char
		return "WRITECHR"
	}
}

// emitRead handles a single read/readln destination: an identifier or an
// array/string element. An element's base address and index are computed
// before READ runs, so the converted value can be stored with one STOREN.
func (g *generator) emitRead(target ast.Expr) {
	switch t := target.(type) {
	case *ast.Ident:
		sym, ok := g.scope.Resolve(t.Name)
		if !ok {
			g.errorf(t.Ln, "%s is not declared", t.Name)
		}
		g.emit("READ")
		g.emitReadConversion(sym.Type)
		g.storeScalar(sym)

	case *ast.IndexExpr:
		sym := g.indexBaseSymbol(t)
		g.pushAddressOfSymbol(sym)
		g.pushExpr(t.Index)

		elemKind := types.Char
		if sym.Type.IsArray {
			elemKind = sym.Type.Elem
			if sym.Type.Low != 0 {
				g.emit("PUSHI %d", sym.Type.Low)
				g.emit("SUB")
			}
		} else {
			g.emit("PUSHI 1")
			g.emit("SUB")
		}

		g.emit("READ")
		g.emitReadConversion(types.Scalar(elemKind))
		g.emit("STOREN")

	default:
		g.errorf(target.Line(), "read/readln argument must be a variable")
	}
}

// emitReadConversion converts the string READ just pushed to t's runtime
// representation: ATOI for an integer, ATOF for a real, a CHARAT-based
// extraction for a char. A string destination takes the raw value as is.
func (g *generator) emitReadConversion(t types.Type) {
	switch t.Kind {
	case types.Integer, types.Boolean:
		g.emit("ATOI")
	case types.Real:
		g.emit("ATOF")
	case types.Char:
		g.emit("PUSHI 0")
		g.emit("CHARAT")
	}
}
