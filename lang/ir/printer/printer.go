// Package printer renders a lang/ir.Module as deterministic, human-readable
// text, used by the --show-llvm-ir-equivalent family of CLI flags (see
// internal/maincmd) to inspect the module lang/ir/gen produced and
// lang/ir/pass cleaned up. Grounded on original_source's IRPrinter.h and
// ValueNamesScope, generalized the way lang/ast.Printer generalizes
// AstDecorator's dump into a reusable Visitor-driven Printer type.
package printer

import (
	"fmt"
	"io"

	"github.com/mna/malinc/lang/ir"
)

// Printer renders an ir.Module to Output.
type Printer struct {
	Output io.Writer
}

// Print writes a textual dump of mod to p.Output.
func (p *Printer) Print(mod *ir.Module) error {
	pp := &printer{w: p.Output, globals: newNameScope('@'), locals: newNameScope('%')}
	return pp.print(mod)
}

type printer struct {
	w       io.Writer
	globals *nameScope
	locals  *nameScope
	err     error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) print(mod *ir.Module) error {
	p.printf("IR module (source: %s):\n\n", mod.SourceName)

	for _, g := range mod.Globals {
		p.globals.declare(g, g.Name)
	}
	for _, fn := range mod.Funcs {
		p.globals.declare(fn, fn.Name)
	}

	for _, g := range mod.Globals {
		p.printGlobal(g)
		p.printf("\n")
	}
	for _, fn := range mod.Funcs {
		p.printFunction(fn)
		p.printf("\n")
	}

	return p.err
}

func (p *printer) printGlobal(g *ir.GlobalVar) {
	name, _ := p.globals.ref(g)
	p.printf("%s: %s = globalVar( %s )\n", name, g.IRType(), p.operand(g.Init))
}

func (p *printer) printFunction(fn *ir.Function) {
	name, _ := p.globals.ref(fn)

	if fn.Extern {
		p.printf("function %s() : %s [extern]\n", name, fn.ReturnType)
		return
	}

	p.locals = newNameScope('%')

	p.printf("function %s(): %s {\n", name, fn.ReturnType)
	for _, bb := range fn.Blocks {
		p.printBlock(bb)
	}
	p.printf("}\n")
}

func (p *printer) printBlock(bb *ir.BasicBlock) {
	p.printf(" %s:\n", bb.Name)
	for _, instr := range bb.Instr {
		if isInlinedConstant(instr) {
			continue
		}
		p.printInstr(instr)
	}
}

// printInstr prints one instruction's own line: a "%name: type = " prefix
// for any value-producing (non-void) instruction, none for void ones
// (Store, Jump, CondJump, Return), mirroring createValueDeclStr's
// empty-string result for void-typed values.
func (p *printer) printInstr(v ir.Value) {
	text := p.instrText(v)
	if _, void := v.IRType().(ir.VoidType); void {
		p.printf("    %s\n", text)
		return
	}
	name := p.locals.declare(v, declBase(v))
	p.printf("    %s: %s = %s\n", name, v.IRType(), text)
}

func (p *printer) instrText(v ir.Value) string {
	switch val := v.(type) {
	case *ir.AllocBuiltin:
		return fmt.Sprintf("allocBuildIn( %s )", val.Elem)
	case *ir.Load:
		return fmt.Sprintf("load( %s )", p.operand(val.Ptr))
	case *ir.Store:
		return fmt.Sprintf("store( %s, %s )", p.operand(val.Val), p.operand(val.Dest))
	case *ir.NumCalcBinary:
		return fmt.Sprintf("numberCalculationBinary( %s, %s, %s )", p.operand(val.LHS), val.Op, p.operand(val.RHS))
	case *ir.NumCompareBinary:
		return fmt.Sprintf("numberCompareBinary( %s, %s, %s )", p.operand(val.LHS), val.Op, p.operand(val.RHS))
	case *ir.BoolBinary:
		return fmt.Sprintf("boolBinary( %s, %s, %s )", p.operand(val.LHS), val.Op, p.operand(val.RHS))
	case *ir.LogicalNot:
		return fmt.Sprintf("logicalNot( %s )", p.operand(val.Operand))
	case *ir.Return:
		if val.Val == nil {
			return "return()"
		}
		return fmt.Sprintf("return( %s )", p.operand(val.Val))
	case *ir.Jump:
		return fmt.Sprintf("jump( %s )", val.Target.Name)
	case *ir.CondJump:
		return fmt.Sprintf("condJump( %s, %s, %s )", p.operand(val.Cond), val.Then.Name, val.Else.Name)
	case *ir.Call:
		args := make([]string, len(val.Args))
		for i, a := range val.Args {
			if a == nil {
				args[i] = "<invalid>"
				continue
			}
			args[i] = p.operand(a)
		}
		fnName, _ := p.globals.ref(val.Func)
		out := "call( " + fnName
		for _, a := range args {
			out += ", " + a
		}
		return out + " )"
	case *ir.Comment:
		return "// " + val.Text
	case *ir.Invalid:
		return "invalid()"
	default:
		return "<unknown instruction>"
	}
}

// operand formats v as it appears inside another instruction's argument
// list: a constant prints its type and literal value inline, every other
// value prints its type and the name already assigned to it by declare.
func (p *printer) operand(v ir.Value) string {
	if v == nil {
		return "<invalid>"
	}
	switch val := v.(type) {
	case *ir.ConstI32:
		return fmt.Sprintf("%s %d", val.IRType(), val.Value)
	case *ir.ConstF32:
		return fmt.Sprintf("%s %g", val.IRType(), val.Value)
	case *ir.ConstBool:
		return fmt.Sprintf("%s %t", val.IRType(), val.Value)
	case *ir.Invalid:
		return "<invalid>"
	case *ir.FunctionArgument:
		// a parameter's raw value is referenced exactly once, by the Store
		// that copies it into its AllocBuiltin slot in the function's entry
		// block preamble; print it by its own parameter name directly
		// rather than registering it in the name scope, so it never steals
		// the bare base name the corresponding AllocBuiltin should get.
		return fmt.Sprintf("%s %%%s", val.IRType(), val.Name)
	}

	if name, ok := p.locals.ref(v); ok {
		return fmt.Sprintf("%s %s", v.IRType(), name)
	}
	if name, ok := p.globals.ref(v); ok {
		return fmt.Sprintf("%s %s", v.IRType(), name)
	}

	// A value with no declared name never gets a printed line of its own:
	// a binary/unary expression chain lowered into the module's holding
	// block for a global initializer or a defaulted call argument. Inline
	// its instruction text in place of a name reference.
	return fmt.Sprintf("%s (%s)", v.IRType(), p.instrText(v))
}

// declBase picks the base name an instruction's result is deduplicated
// under: an AllocBuiltin keeps the source variable/parameter name it backs,
// every other value-producing instruction is anonymous and gets numbered.
func declBase(v ir.Value) string {
	if a, ok := v.(*ir.AllocBuiltin); ok {
		return a.Name
	}
	return ""
}

func isInlinedConstant(v ir.Value) bool {
	switch v.(type) {
	case *ir.ConstI32, *ir.ConstF32, *ir.ConstBool:
		return true
	default:
		return false
	}
}
