package semantic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/scanner"
	"github.com/dbarros/pasvm/lang/token"
)

// errHalt unwinds the recursive walk on the first semantic error; Check
// recovers it and returns the single recorded diagnostic. This mirrors the
// original implementation, which halts semantic checking at the first
// error rather than attempting recovery.
var errHalt = errors.New("semantic error")

// Check type-checks prog and validates every declaration and scoping rule.
// The error, if non-nil, is guaranteed to be a scanner.ErrorList containing
// exactly one error.
func Check(filename string, prog *ast.Program) error {
	return check(filename, prog, nil)
}

// CheckAndDump behaves like Check, and additionally writes the program's
// global symbol names to dump once checking succeeds, for a driver's
// debug output.
func CheckAndDump(filename string, prog *ast.Program, dump io.Writer) error {
	return check(filename, prog, dump)
}

func check(filename string, prog *ast.Program, dump io.Writer) error {
	a := &analyzer{filename: filename, root: NewRootScope()}
	a.checkOrRecover(prog)
	if err := a.errors.Err(); err != nil {
		return err
	}
	if dump != nil {
		fmt.Fprintf(dump, "%s: globals: %s\n", filename, strings.Join(a.root.Names(), ", "))
	}
	return nil
}

type analyzer struct {
	filename string
	root     *Scope
	errors   scanner.ErrorList

	scope       *Scope
	currentFunc *Symbol // non-nil while checking a function's body
}

func (a *analyzer) checkOrRecover(prog *ast.Program) {
	defer func() {
		if r := recover(); r != nil && r != errHalt {
			panic(r)
		}
	}()
	a.scope = a.root
	a.declareBlock(prog.Decls)
	a.checkBlock(prog.Decls)
	a.stmt(prog.Body)
}

func (a *analyzer) errorf(line int, format string, args ...any) {
	a.errors.Add(token.Position{Filename: a.filename, Line: line}, fmt.Sprintf(format, args...))
	panic(errHalt)
}

// declareBlock declares every name introduced directly in decls (vars,
// function/procedure names) into the current scope, without descending
// into function bodies. Declaring a callable's name before checking any
// body allows (mutual and direct) recursion.
func (a *analyzer) declareBlock(decls []ast.Decl) {
	for _, d := range decls {
		switch dd := d.(type) {
		case *ast.VarDecl:
			a.declareVar(dd)
		case *ast.FuncDecl:
			a.declareFunc(dd)
		}
	}
}

func (a *analyzer) declareVar(vd *ast.VarDecl) {
	typ := resolveType(vd.Type)
	if typ.IsArray && typ.High < typ.Low {
		a.errorf(vd.Line(), "array bounds %d..%d are invalid: high must be >= low", typ.Low, typ.High)
	}
	for _, name := range vd.Names {
		if !a.scope.Declare(name, &Symbol{Name: name, Kind: SymVar, Type: typ}) {
			a.errorf(vd.Line(), "%s is already declared in this scope", name)
		}
	}
}

func (a *analyzer) declareFunc(fd *ast.FuncDecl) {
	sym := &Symbol{Name: fd.Name, Params: paramTypes(fd.Params)}
	if fd.IsFunction() {
		sym.Kind = SymFunction
		sym.Return = resolveType(fd.ReturnType)
		sym.Type = sym.Return
	} else {
		sym.Kind = SymProcedure
	}
	if !a.scope.Declare(fd.Name, sym) {
		a.errorf(fd.Line(), "%s is already declared in this scope", fd.Name)
	}
}

func paramTypes(params []*ast.Param) []Type {
	ts := make([]Type, len(params))
	for i, p := range params {
		ts[i] = resolveType(p.Type)
	}
	return ts
}

// checkBlock descends into every function/procedure declared in decls and
// checks its body in its own child scope.
func (a *analyzer) checkBlock(decls []ast.Decl) {
	for _, d := range decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		a.checkFunc(fd)
	}
}

func (a *analyzer) checkFunc(fd *ast.FuncDecl) {
	outerScope, outerFunc := a.scope, a.currentFunc
	sym, _ := outerScope.ResolveLocal(fd.Name)

	a.scope = NewChildScope(outerScope)
	a.currentFunc = sym

	for i, p := range fd.Params {
		a.scope.Declare(p.Name, &Symbol{Name: p.Name, Kind: SymParam, Type: sym.Params[i], IsVar: p.IsVar})
	}
	for _, vd := range fd.Locals {
		a.declareVar(vd)
	}
	for _, nf := range fd.Nested {
		a.declareFunc(nf)
	}
	a.checkBlock(declsOf(fd))
	a.stmt(fd.Body)

	a.scope, a.currentFunc = outerScope, outerFunc
}

func declsOf(fd *ast.FuncDecl) []ast.Decl {
	decls := make([]ast.Decl, 0, len(fd.Nested))
	for _, nf := range fd.Nested {
		decls = append(decls, nf)
	}
	return decls
}

// stmt type-checks a single statement, descending into its children.
func (a *analyzer) stmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.CompoundStatement:
		for _, inner := range st.Stmts {
			a.stmt(inner)
		}

	case *ast.AssignStmt:
		a.checkAssign(st)

	case *ast.IfStmt:
		if t := a.expr(st.Cond); t.Kind != Boolean {
			a.errorf(st.Cond.Line(), "if condition must be boolean, got %s", t)
		}
		a.stmt(st.Then)
		if st.Else != nil {
			a.stmt(st.Else)
		}

	case *ast.WhileStmt:
		if t := a.expr(st.Cond); t.Kind != Boolean {
			a.errorf(st.Cond.Line(), "while condition must be boolean, got %s", t)
		}
		a.stmt(st.Body)

	case *ast.ForStmt:
		a.checkFor(st)

	case *ast.IOStmt:
		a.checkIO(st)

	case *ast.CallStmt:
		a.checkCall(st.Name, st.Args, st.Ln)

	default:
		a.errorf(s.Line(), "unsupported statement %T", s)
	}
}

func (a *analyzer) checkAssign(st *ast.AssignStmt) {
	targetType, ok := a.targetType(st.Target)
	if !ok {
		return
	}
	valType := a.expr(st.Value)
	if !assignable(targetType, valType) {
		a.errorf(st.Ln, "cannot assign %s to %s", valType, targetType)
	}
}

// targetType resolves the type of an assignment target: an identifier (a
// variable, VAR parameter, or — inside a function body — the function's
// own name, which denotes its return-value slot), or an array element.
func (a *analyzer) targetType(target ast.Expr) (Type, bool) {
	switch t := target.(type) {
	case *ast.Ident:
		if a.currentFunc != nil && a.currentFunc.Name == t.Name {
			if _, shadowed := a.scope.ResolveLocal(t.Name); !shadowed {
				return a.currentFunc.Return, true
			}
		}
		sym, ok := a.scope.Resolve(t.Name)
		if !ok {
			a.errorf(t.Ln, "%s is not declared", t.Name)
		}
		if sym.Kind == SymFunction || sym.Kind == SymProcedure || sym.Kind == SymBuiltin {
			a.errorf(t.Ln, "%s is not a variable", t.Name)
		}
		if sym.Kind == SymParam && !sym.IsVar {
			a.errorf(t.Ln, "%s is a value parameter and cannot be assigned", t.Name)
		}
		return sym.Type, true

	case *ast.IndexExpr:
		elem := a.indexElemType(t)
		if idxType := a.expr(t.Index); idxType.Kind != Integer {
			a.errorf(t.Index.Line(), "array index must be integer, got %s", idxType)
		}
		return scalar(elem), true

	default:
		a.errorf(target.Line(), "invalid assignment target")
		return Type{}, false
	}
}

// indexElemType resolves the element type of an IndexExpr's base: a true
// array yields its declared element type; a STRING-typed scalar variable
// is indexable too (Pascal's 1-based character access) and yields CHAR.
func (a *analyzer) indexElemType(idx *ast.IndexExpr) Kind {
	ident, ok := idx.Array.(*ast.Ident)
	if !ok {
		a.errorf(idx.Line(), "only array or string variables can be indexed")
	}
	sym, ok := a.scope.Resolve(ident.Name)
	if !ok {
		a.errorf(ident.Ln, "%s is not declared", ident.Name)
	}
	if sym.Type.IsArray {
		return sym.Type.Elem
	}
	if sym.Type.Kind == String {
		return Char
	}
	a.errorf(ident.Ln, "%s is not an array or string", ident.Name)
	return Invalid
}

func (a *analyzer) checkFor(st *ast.ForStmt) {
	sym, ok := a.scope.Resolve(st.Var)
	if !ok {
		a.errorf(st.Ln, "%s is not declared", st.Var)
	}
	if sym.Kind == SymFunction || sym.Kind == SymProcedure || sym.Kind == SymBuiltin {
		a.errorf(st.Ln, "%s is not a variable", st.Var)
	}
	if sym.Type.Kind != Integer {
		a.errorf(st.Ln, "for-loop control variable %s must be integer, got %s", st.Var, sym.Type)
	}
	if t := a.expr(st.Start); t.Kind != Integer {
		a.errorf(st.Start.Line(), "for-loop start value must be integer, got %s", t)
	}
	if t := a.expr(st.End); t.Kind != Integer {
		a.errorf(st.End.Line(), "for-loop end value must be integer, got %s", t)
	}
	a.stmt(st.Body)
}

func (a *analyzer) checkIO(st *ast.IOStmt) {
	for _, arg := range st.Args {
		switch st.Kind {
		case ast.IORead, ast.IOReadln:
			if _, ok := a.targetType(arg); !ok {
				a.errorf(arg.Line(), "read/readln argument must be a variable")
			}
		default: // IOWrite, IOWriteln
			a.expr(arg)
		}
	}
}

func (a *analyzer) checkCall(name string, args []ast.Expr, line int) Type {
	if a.currentFunc != nil && a.currentFunc.Name == name {
		if _, shadowed := a.scope.ResolveLocal(name); !shadowed {
			// a bare recursive call by the function's own name, used as a
			// procedure-style call statement or as an rvalue
			for _, arg := range args {
				a.expr(arg)
			}
			if len(args) != len(a.currentFunc.Params) {
				a.errorf(line, "%s expects %d argument(s), got %d", name, len(a.currentFunc.Params), len(args))
			}
			return a.currentFunc.Return
		}
	}

	sym, ok := a.scope.Resolve(name)
	if !ok {
		a.errorf(line, "%s is not declared", name)
	}
	if sym.Kind != SymFunction && sym.Kind != SymProcedure && sym.Kind != SymBuiltin {
		a.errorf(line, "%s is not callable", name)
	}
	for _, arg := range args {
		a.expr(arg)
	}
	if len(args) != len(sym.Params) {
		a.errorf(line, "%s expects %d argument(s), got %d", name, len(sym.Params), len(args))
	}
	return sym.Return
}

// expr type-checks an expression and returns its resolved Type.
func (a *analyzer) expr(e ast.Expr) Type {
	switch ex := e.(type) {
	case *ast.IntLit:
		return scalar(Integer)
	case *ast.RealLit:
		return scalar(Real)
	case *ast.BoolLit:
		return scalar(Boolean)
	case *ast.StringLit:
		return scalar(String)

	case *ast.Ident:
		if a.currentFunc != nil && a.currentFunc.Name == ex.Name {
			if _, shadowed := a.scope.ResolveLocal(ex.Name); !shadowed {
				return a.currentFunc.Return
			}
		}
		sym, ok := a.scope.Resolve(ex.Name)
		if !ok {
			a.errorf(ex.Ln, "%s is not declared", ex.Name)
		}
		if sym.Kind == SymProcedure {
			a.errorf(ex.Ln, "%s is a procedure, it has no value", ex.Name)
		}
		return sym.Type

	case *ast.IndexExpr:
		elem := a.indexElemType(ex)
		if idxType := a.expr(ex.Index); idxType.Kind != Integer {
			a.errorf(ex.Index.Line(), "array index must be integer, got %s", idxType)
		}
		return scalar(elem)

	case *ast.UnaryExpr:
		return a.unaryType(ex)

	case *ast.BinaryExpr:
		return a.binaryType(ex)

	case *ast.CallExpr:
		return a.checkCall(ex.Name, ex.Args, ex.Ln)

	default:
		a.errorf(e.Line(), "unsupported expression %T", e)
		return Type{}
	}
}

func (a *analyzer) unaryType(ex *ast.UnaryExpr) Type {
	t := a.expr(ex.Operand)
	switch ex.Op.String() {
	case "not":
		if t.Kind != Boolean {
			a.errorf(ex.Ln, "not requires a boolean operand, got %s", t)
		}
		return scalar(Boolean)
	default: // unary minus
		if t.Kind != Integer && t.Kind != Real {
			a.errorf(ex.Ln, "unary - requires a numeric operand, got %s", t)
		}
		return t
	}
}

func (a *analyzer) binaryType(ex *ast.BinaryExpr) Type {
	lt := a.expr(ex.Left)
	rt := a.expr(ex.Right)
	op := ex.Op.String()

	switch op {
	case "=", "<>", "<", "<=", ">", ">=":
		if !comparable(lt, rt) {
			a.errorf(ex.Ln, "cannot compare %s and %s", lt, rt)
		}
		if lt.Kind != rt.Kind && (lt.Kind == Char || rt.Kind == Char) {
			// the string side of a char comparison must be a one-character literal
			other := ex.Right
			if rt.Kind == Char {
				other = ex.Left
			}
			if lit, ok := other.(*ast.StringLit); !ok || len(lit.Value) != 1 {
				a.errorf(ex.Ln, "cannot compare %s and %s", lt, rt)
			}
		}
		return scalar(Boolean)

	case "and", "or":
		if lt.Kind != Boolean || rt.Kind != Boolean {
			a.errorf(ex.Ln, "%s requires boolean operands, got %s and %s", op, lt, rt)
		}
		return scalar(Boolean)

	case "+":
		if lt.Kind == String && rt.Kind == String {
			return scalar(String) // concatenation: type-checks, no codegen path
		}
		return numericBinary(a, ex, lt, rt)

	case "/":
		if !isNumeric(lt) || !isNumeric(rt) {
			a.errorf(ex.Ln, "/ requires numeric operands, got %s and %s", lt, rt)
		}
		return scalar(Real)

	case "div", "mod":
		if lt.Kind != Integer || rt.Kind != Integer {
			a.errorf(ex.Ln, "%s requires INTEGER operands, got %s and %s", op, lt, rt)
		}
		return scalar(Integer)

	default: // "-", "*"
		return numericBinary(a, ex, lt, rt)
	}
}

func numericBinary(a *analyzer, ex *ast.BinaryExpr, lt, rt Type) Type {
	if !isNumeric(lt) || !isNumeric(rt) {
		a.errorf(ex.Ln, "%s requires numeric operands, got %s and %s", ex.Op, lt, rt)
	}
	if lt.Kind == Real || rt.Kind == Real {
		return scalar(Real)
	}
	return scalar(Integer)
}

func isNumeric(t Type) bool { return t.Kind == Integer || t.Kind == Real }

// comparable reports whether lt and rt can appear on either side of a
// relational operator: same scalar kind, numeric-numeric (with widening),
// or a char variable against a one-character string literal.
func comparable(lt, rt Type) bool {
	if lt.Equal(rt) {
		return true
	}
	if isNumeric(lt) && isNumeric(rt) {
		return true
	}
	if (lt.Kind == Char && rt.Kind == String) || (lt.Kind == String && rt.Kind == Char) {
		return true
	}
	return false
}

// assignable reports whether a value of type val can be stored into a
// target of type dst: exact match, or INTEGER widening to REAL.
func assignable(dst, val Type) bool {
	if dst.Equal(val) {
		return true
	}
	return dst.Kind == Real && val.Kind == Integer
}
