package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders an indented one-line-per-node dump of an AST, used by the
// --show-parser-output and --show-decorator-output CLI flags.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer
	// ShowPos includes each node's source range in the output.
	ShowPos bool
	// ShowTypes includes each expression's resolved type, if any.
	ShowTypes bool
}

// Print writes an indented dump of n and its descendants to p.Output.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, showPos: p.ShowPos, showTypes: p.ShowTypes}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w         io.Writer
	showPos   bool
	showTypes bool
	depth     int
	err       error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		p.depth--
		return nil
	}
	if p.err != nil {
		return nil
	}

	indent := strings.Repeat(". ", p.depth)
	p.depth++

	if p.showPos {
		_, p.err = fmt.Fprintf(p.w, "%s[%s] %v", indent, n.Range().Start, n)
	} else {
		_, p.err = fmt.Fprintf(p.w, "%s%v", indent, n)
	}
	if p.err == nil && p.showTypes {
		if e, ok := n.(Expr); ok && e.Type() != nil {
			_, p.err = fmt.Fprintf(p.w, " : %s", e.Type())
		}
	}
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w)
	}
	return p
}
