// Package gen lowers a decorated AST into the lang/ir model, the way
// original_source's IRGenerator walks RootDeclarations with a builder
// holding the current function and basic block. Only built-in scalar
// values are lowered; classes and strings are reported as diagnostics and
// skipped, matching the original generator's "classes are not implemented
// yet in IR" restriction -- the IR exists for didactic inspection, the
// native backend is expected to handle classes directly off the decorated
// AST.
package gen

import (
	"github.com/mna/malinc/lang/ast"
	"github.com/mna/malinc/lang/diag"
	"github.com/mna/malinc/lang/ir"
)

// Generate lowers root into an IR module. root must already be decorated
// without errors, including root.Main set to the entry point; passing a
// root that failed decoration is undefined behavior, the same precondition
// the teacher's CompileFiles places on a resolved AST.
func Generate(root *ast.Root, bag *diag.Bag) *ir.Module {
	p := &pgen{mod: ir.NewModule(root.Name), bag: bag}

	for _, c := range root.Classes {
		p.bag.Add(c.Rng, "class '%s' cannot be lowered to ir, classes are not yet implemented in the ir generator", c.Name)
	}

	for _, g := range root.Globals {
		p.declareGlobal(g)
	}
	for _, fn := range root.Funcs {
		p.declareFunction(fn)
	}
	for _, g := range root.Globals {
		p.genGlobalInit(g)
	}
	for _, fn := range root.Funcs {
		p.genFunctionBody(fn)
	}

	return p.mod
}

// pgen holds module-level generation state, the way the original
// implementation's IRGenerator owns a single IRModule/IRBuilder pair plus a
// "globalVarInitValueHoldingFunc" pseudo-function used to lower constant
// initializers outside of any real function.
type pgen struct {
	mod *ir.Module
	bag *diag.Bag
}

// declareGlobal emits a GlobalVar with no initializer yet, mirroring
// genGlobalVariableDefinition: the storage is created before any
// initializer expression is lowered, so forward references between
// globals resolve to a real *ir.GlobalVar pointer.
func (p *pgen) declareGlobal(g *ast.VariableDecl) {
	elem := ir.FromLangType(g.Type)
	if _, ok := elem.(ir.InvalidType); ok {
		p.bag.Add(g.Rng, "global '%s' has a type that cannot be lowered to ir", g.Name)
		return
	}
	gv := ir.NewGlobalVar(g.Name, elem)
	p.mod.AddGlobal(gv)
	g.IR = gv
}

// genGlobalInit lowers g's initializer into the module's holding block and
// attaches the resulting value to g's already-declared GlobalVar, the same
// two-step split as genGlobalVariableDefinition/visitGlobalVariableDecl in
// the original.
func (p *pgen) genGlobalInit(g *ast.VariableDecl) {
	gv, ok := g.IR.(*ir.GlobalVar)
	if !ok {
		return
	}
	gv.Init = p.genInHoldingBlock(g.Init)
}

// genInHoldingBlock lowers e into the module's holding block and returns
// the resulting value without leaving the instruction attached to any
// emitted function -- the holding block is never printed or walked by
// later passes. Used for global initializers and for defaulted call
// arguments, both of which decoration restricts to constant expressions.
func (p *pgen) genInHoldingBlock(e ast.Expr) ir.Value {
	fg := &fgen{pgen: p, cur: p.mod.Holding()}
	return fg.genExpr(e, false)
}

// declareFunction emits a function's signature -- name, return type,
// parameters -- before any body is generated, so that a call appearing
// before its callee's definition in the source still resolves to a real
// *ir.Function. This mirrors genFunctionDefinition, which the original
// runs as its own pass over every function before visiting any body.
func (p *pgen) declareFunction(fn *ast.FunctionDecl) {
	f := ir.NewFunction(fn.Name, ir.FromLangType(fn.ReturnType), fn.Extern)
	p.mod.AddFunc(f)
	fn.IR = f

	if fn.Extern {
		return
	}

	entry := f.AddBlock("entry")
	fg := &fgen{pgen: p, fn: f, cur: entry}
	for i, param := range fn.Params {
		typ := ir.FromLangType(param.Type)
		arg := ir.NewFunctionArgument(param.Name, i, typ)
		f.Args = append(f.Args, arg)

		ptr := ir.NewAllocBuiltin(param.Name, typ)
		fg.emit(ptr)
		fg.emit(ir.NewStore(ptr, arg))
		param.IR = ptr
	}
}

// genFunctionBody lowers fn's statements into the entry block declared by
// declareFunction, appending any control-flow blocks it needs as it goes.
func (p *pgen) genFunctionBody(fn *ast.FunctionDecl) {
	if fn.Extern {
		return
	}
	fg := &fgen{pgen: p, fn: fn.IR, cur: fn.IR.Entry()}
	fg.genCompound(fn.Body)
	if !fg.cur.IsTerminated() {
		fg.emit(ir.NewReturn(nil))
	}
}
