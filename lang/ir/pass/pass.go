// Package pass implements transformations over a lowered ir.Module, run
// after lang/ir/gen and before lang/ir/printer. The walking order --
// globals, then functions, then each function's basic blocks -- and the
// three-level split between a module-wide pass and a per-block pass are
// generalized from original_source's IRFunctionAndGlobalsPass and
// IRBasicBlockPass template classes, a level-by-level descent like
// lang/ast.Visitor/Walk's but with no enter/exit split.
package pass

import "github.com/mna/malinc/lang/ir"

// Visitor is a transformation over an ir.Module. A pass that only cares
// about one level embeds NopPass and overrides the methods it needs,
// the same embed-to-override shape the original's empty virtual methods
// provide in its template base classes.
type Visitor interface {
	VisitGlobal(g *ir.GlobalVar)
	VisitFunction(fn *ir.Function)
	VisitBasicBlock(fn *ir.Function, bb *ir.BasicBlock)
}

// NopPass implements Visitor with no-op methods.
type NopPass struct{}

func (NopPass) VisitGlobal(*ir.GlobalVar)                    {}
func (NopPass) VisitFunction(*ir.Function)                   {}
func (NopPass) VisitBasicBlock(*ir.Function, *ir.BasicBlock) {}

// Run walks mod with v: every global variable, then every function and,
// for each non-extern function, every one of its basic blocks.
func Run(mod *ir.Module, v Visitor) {
	for _, g := range mod.Globals {
		v.VisitGlobal(g)
	}
	for _, fn := range mod.Funcs {
		v.VisitFunction(fn)
		if fn.Extern {
			continue
		}
		for _, bb := range fn.Blocks {
			v.VisitBasicBlock(fn, bb)
		}
	}
}

// RunAll runs each of vs over mod in order; internal/maincmd runs the one
// shipped pass through it after lowering.
func RunAll(mod *ir.Module, vs ...Visitor) {
	for _, v := range vs {
		Run(mod, v)
	}
}
