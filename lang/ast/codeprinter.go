package ast

import (
	"fmt"
	"strings"
)

// PrintCode renders root back into malin source text, normalized (no
// original comments, fixed indentation). It backs the --show-ast-as-code
// and --save-ast-as-code CLI flags.
func PrintCode(root *Root) string {
	p := &codePrinter{}
	p.printRoot(root)
	return p.sb.String()
}

type codePrinter struct {
	sb strings.Builder
}

func (p *codePrinter) ind(depth int) {
	p.sb.WriteString(strings.Repeat("  ", depth))
}

func (p *codePrinter) printRoot(root *Root) {
	for _, c := range root.Classes {
		p.printClass(c)
		p.sb.WriteString("\n\n")
	}
	for _, g := range root.Globals {
		p.printVariableDecl(g, true)
		p.sb.WriteString(";\n")
	}
	if len(root.Globals) > 0 {
		p.sb.WriteString("\n")
	}
	for i, fn := range root.Funcs {
		if i > 0 {
			p.sb.WriteString("\n")
		}
		p.printFunctionDecl(fn, 0)
		p.sb.WriteString("\n")
	}
}

func (p *codePrinter) printClass(c *ClassDecl) {
	fmt.Fprintf(&p.sb, "class %s {\n", c.Name)
	for _, m := range c.Members {
		p.ind(1)
		p.printVariableDecl(m, false)
		p.sb.WriteString(";\n")
	}
	for _, m := range c.Methods {
		p.sb.WriteString("\n")
		p.ind(1)
		p.printFunctionDecl(m, 1)
		p.sb.WriteString("\n")
	}
	p.sb.WriteString("}")
}

func (p *codePrinter) printVariableDecl(v *VariableDecl, withLet bool) {
	if withLet {
		p.sb.WriteString("let ")
	}
	p.sb.WriteString(v.Name)
	if v.TyName != "" {
		fmt.Fprintf(&p.sb, ": %s", v.TyName)
	}
	if v.Init != nil {
		p.sb.WriteString(" = ")
		p.printExpr(v.Init)
	}
}

func (p *codePrinter) printFunctionDecl(fn *FunctionDecl, depth int) {
	p.sb.WriteString("fun ")
	if fn.Extern {
		p.sb.WriteString("extern ")
	}
	p.sb.WriteString(fn.Name)
	p.sb.WriteString("(")
	for i, param := range fn.Params {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.printParam(param)
	}
	p.sb.WriteString(")")
	if fn.ReturnTyName != "" {
		fmt.Fprintf(&p.sb, ": %s", fn.ReturnTyName)
	}
	if fn.Body != nil {
		p.sb.WriteString(" ")
		p.printCompound(fn.Body, depth)
	} else {
		p.sb.WriteString(";")
	}
}

func (p *codePrinter) printParam(param *FunctionParamDecl) {
	fmt.Fprintf(&p.sb, "%s: %s", param.Name, param.TyName)
	if param.Default != nil {
		p.sb.WriteString(" = ")
		p.printExpr(param.Default)
	}
}

func (p *codePrinter) printCompound(c *Compound, depth int) {
	p.sb.WriteString("{\n")
	for _, s := range c.Stmts {
		p.ind(depth + 1)
		p.printStmt(s, depth+1)
		p.sb.WriteString(";\n")
	}
	p.ind(depth)
	p.sb.WriteString("}")
}

func (p *codePrinter) printStmt(s Stmt, depth int) {
	switch s := s.(type) {
	case *VariableDecl:
		p.printVariableDecl(s, true)
	case *Return:
		p.sb.WriteString("return")
		if s.Expr != nil {
			p.sb.WriteString(" ")
			p.printExpr(s.Expr)
		}
	case *If:
		p.sb.WriteString("if ")
		p.printExpr(s.Cond)
		p.sb.WriteString(" ")
		p.printCompound(s.Then, depth)
		if s.Else != nil {
			p.sb.WriteString("\n")
			p.ind(depth)
			p.sb.WriteString("else ")
			p.printCompound(s.Else, depth)
		}
	case *While:
		p.sb.WriteString("while ")
		p.printExpr(s.Cond)
		p.sb.WriteString(" ")
		p.printCompound(s.Body, depth)
	case *VariableAssign:
		p.printExpr(s.Target)
		p.sb.WriteString(" = ")
		p.printExpr(s.Value)
	case *ExprStmt:
		p.printExpr(s.Expr)
	case *Compound:
		p.printCompound(s, depth)
	default:
		fmt.Fprintf(&p.sb, "/* unknown statement %T */", s)
	}
}

func (p *codePrinter) printExpr(e Expr) {
	switch e := e.(type) {
	case *IntLit:
		p.sb.WriteString(e.Raw)
	case *FloatLit:
		p.sb.WriteString(e.Raw)
	case *BoolLit:
		if e.Value {
			p.sb.WriteString("true")
		} else {
			p.sb.WriteString("false")
		}
	case *StringLit:
		p.sb.WriteString(e.Raw)
	case *Variable:
		p.sb.WriteString(e.Name)
	case *MemberVariable:
		p.printExpr(e.Parent)
		fmt.Fprintf(&p.sb, ".%s", e.Name)
	case *Call:
		p.printCallArgs(e.Name, e.Args)
	case *MemberCall:
		p.printExpr(e.Parent)
		p.sb.WriteString(".")
		p.printCallArgs(e.Name, e.Args)
	case *Unary:
		fmt.Fprintf(&p.sb, "(%s", e.Op)
		p.printExpr(e.Inner)
		p.sb.WriteString(")")
	case *Binary:
		p.sb.WriteString("(")
		p.printExpr(e.LHS)
		fmt.Fprintf(&p.sb, " %s ", e.Op)
		p.printExpr(e.RHS)
		p.sb.WriteString(")")
	default:
		fmt.Fprintf(&p.sb, "/* unknown expr %T */", e)
	}
}

func (p *codePrinter) printCallArgs(name string, args []*CallArg) {
	p.sb.WriteString(name)
	p.sb.WriteString("(")
	for i, a := range args {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		if a.Name != "" {
			fmt.Fprintf(&p.sb, "%s = ", a.Name)
		}
		p.printExpr(a.Expr)
	}
	p.sb.WriteString(")")
}
