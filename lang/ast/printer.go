package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer controls pretty-printing of AST nodes, one indented line per
// node, depth-first.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// ShowLines prints each node's source line number alongside its label.
	ShowLines bool

	// NodeFmt is the format string used to print each node's label. The verb
	// must be 's' or 'v'; a width and the '#'/'-' flags are supported, same
	// as the underlying Node.Format. Defaults to "%v".
	NodeFmt string
}

// Print pretty-prints the AST rooted at n.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, showLines: p.ShowLines, nodeFmt: p.NodeFmt}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w         io.Writer
	showLines bool
	nodeFmt   string
	depth     int
	err       error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.showLines {
		format += "[%d] "
		args = append(args, n.Line())
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}
