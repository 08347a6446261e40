// Package codegen implements the code generator: a second walk of the AST,
// with its own fresh scope chain (never shared with package semantic),
// that emits a textual listing for the target stack machine. Generation
// trusts the semantic pass for type-correctness and only guards against
// AST shapes it does not know how to emit.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dbarros/pasvm/lang/ast"
	"github.com/dbarros/pasvm/lang/scanner"
	"github.com/dbarros/pasvm/lang/token"
)

// errHalt unwinds generation on the first fatal error (undeclared
// reference, kind mismatch, unsupported construct). There is no partial
// recovery: generation of the current unit is abandoned.
var errHalt = errors.New("codegen error")

// Generate walks prog and returns the emitted instruction listing. A
// non-nil error is a scanner.ErrorList with exactly one entry.
func Generate(filename string, prog *ast.Program) ([]string, error) {
	g := &generator{filename: filename, root: NewRootScope()}
	g.scope = g.root
	g.runOrRecover(prog)
	return g.lines, g.errors.Err()
}

type generator struct {
	filename string
	root     *Scope
	errors   scanner.ErrorList

	lines  []string
	labelN int

	scope       *Scope
	currentFunc *Symbol // non-nil while emitting a function's body
}

func (g *generator) runOrRecover(prog *ast.Program) {
	defer func() {
		if r := recover(); r != nil && r != errHalt {
			panic(r)
		}
	}()
	g.run(prog)
}

func (g *generator) errorf(line int, format string, args ...any) {
	g.errors.Add(token.Position{Filename: g.filename, Line: line}, fmt.Sprintf(format, args...))
	panic(errHalt)
}

func (g *generator) emit(format string, args ...any) {
	g.lines = append(g.lines, "    "+fmt.Sprintf(format, args...))
}

func (g *generator) label(name string) {
	g.lines = append(g.lines, name+":")
}

// freshLabel returns a unique label built from prefix. The label counter
// is monotone across the whole emission, guaranteeing global uniqueness.
func (g *generator) freshLabel(prefix string) string {
	g.labelN++
	return fmt.Sprintf("%s_%d", prefix, g.labelN)
}

func (g *generator) run(prog *ast.Program) {
	vds, fds := splitDecls(prog.Decls)

	for _, vd := range vds {
		g.declareGlobalVar(vd)
	}
	for _, fd := range fds {
		g.declareCallable(g.scope, fd)
	}

	g.emitGlobalInit(vds)
	g.emit("START")
	g.emitBlockBody(fds, prog.Body)
	g.emit("STOP")
}

func splitDecls(decls []ast.Decl) ([]*ast.VarDecl, []*ast.FuncDecl) {
	var vds []*ast.VarDecl
	var fds []*ast.FuncDecl
	for _, d := range decls {
		switch dd := d.(type) {
		case *ast.VarDecl:
			vds = append(vds, dd)
		case *ast.FuncDecl:
			fds = append(fds, dd)
		}
	}
	return vds, fds
}

func (g *generator) declareGlobalVar(vd *ast.VarDecl) {
	typ := resolveType(vd.Type)
	for _, name := range vd.Names {
		n := 1
		if typ.IsArray {
			n = typ.Len()
		}
		off := g.root.allocGlobal(n)
		g.scope.Declare(name, &Symbol{Name: name, Kind: SymVar, Type: typ, Global: true, Offset: off})
	}
}

func (g *generator) declareCallable(scope *Scope, fd *ast.FuncDecl) *Symbol {
	sym := &Symbol{
		Name:      fd.Name,
		Label:     g.freshLabel(strings.ToUpper(fd.Name)),
		Params:    paramTypes(fd.Params),
		ParamsVar: paramVarFlags(fd.Params),
	}
	if fd.IsFunction() {
		sym.Kind = SymFunction
		sym.Return = resolveType(fd.ReturnType)
		sym.Type = sym.Return
	} else {
		sym.Kind = SymProcedure
	}
	scope.Declare(fd.Name, sym)
	return sym
}

// emitGlobalInit materializes every program-level variable before START:
// PUSHI 0 for a scalar, PUSHN n for an array of n elements.
func (g *generator) emitGlobalInit(vds []*ast.VarDecl) {
	for _, vd := range vds {
		typ := resolveType(vd.Type)
		for range vd.Names {
			if typ.IsArray {
				g.emit("PUSHN %d", typ.Len())
			} else {
				g.emit("PUSHI 0")
			}
		}
	}
}

// emitBlockBody emits a block's callables (hoisted behind a JUMP over
// them, per the generator's hoisting technique) followed by its compound
// statement. When there are no callables to hoist, no JUMP/label pair is
// emitted at all: execution falls straight into body.
func (g *generator) emitBlockBody(fds []*ast.FuncDecl, body *ast.CompoundStatement) {
	if len(fds) == 0 {
		g.stmt(body)
		return
	}

	mainLabel := g.freshLabel("MAIN")
	g.emit("JUMP %s", mainLabel)
	for _, fd := range fds {
		sym, _ := g.scope.ResolveLocal(fd.Name)
		g.emitCallable(fd, sym)
	}
	g.label(mainLabel)
	g.stmt(body)
}

func (g *generator) emitCallable(fd *ast.FuncDecl, sym *Symbol) {
	g.label(sym.Label)

	outerScope, outerFunc := g.scope, g.currentFunc
	g.scope = NewChildScope(outerScope)
	g.currentFunc = sym

	// Parameters occupy descending offsets starting at -1; the first
	// declared parameter ends up deepest below FP, matching the
	// left-to-right push order callers use.
	offset := -1
	for i := len(fd.Params) - 1; i >= 0; i-- {
		p := fd.Params[i]
		g.scope.Declare(p.Name, &Symbol{Name: p.Name, Kind: SymParam, Type: resolveType(p.Type), IsVar: p.IsVar, Offset: offset})
		offset--
	}

	for _, vd := range fd.Locals {
		typ := resolveType(vd.Type)
		for _, name := range vd.Names {
			n := 1
			if typ.IsArray {
				n = typ.Len()
			}
			off := g.scope.allocLocal(n)
			g.scope.Declare(name, &Symbol{Name: name, Kind: SymVar, Type: typ, Offset: off})
		}
	}

	for _, nf := range fd.Nested {
		g.declareCallable(g.scope, nf)
	}

	g.emitBlockBody(fd.Nested, fd.Body)
	g.emit("RETURN")

	g.scope, g.currentFunc = outerScope, outerFunc
}

// newTemp reserves one FP-relative scratch slot in the current scope, used
// by array-element assignment and FOR-loop bookkeeping.
func (g *generator) newTemp() int {
	return g.scope.allocLocal(1)
}
