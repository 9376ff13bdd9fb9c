package gen

import (
	"github.com/mna/malinc/lang/ast"
	"github.com/mna/malinc/lang/ir"
)

func (f *fgen) genCompound(c *ast.Compound) {
	for _, s := range c.Stmts {
		f.genStmt(s)
	}
}

func (f *fgen) genStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VariableDecl:
		f.genLocalVarDecl(st)
	case *ast.Return:
		f.genReturn(st)
	case *ast.If:
		f.genIf(st)
	case *ast.While:
		f.genWhile(st)
	case *ast.VariableAssign:
		f.genAssign(st)
	case *ast.ExprStmt:
		f.genExpr(st.Expr, false)
	default:
		f.pgen.bag.Add(s.Range(), "statement cannot be lowered to ir")
	}
}

// genLocalVarDecl implements "let x = e": AllocBuiltin reserves x's
// storage, e is lowered to a value, then Store writes it. x's allocation
// is recorded on the declaration so later references can find it.
func (f *fgen) genLocalVarDecl(v *ast.VariableDecl) {
	typ := ir.FromLangType(v.Type)
	if _, ok := typ.(ir.InvalidType); ok {
		f.pgen.bag.Add(v.Rng, "variable '%s' has a type that cannot be lowered to ir", v.Name)
		return
	}
	ptr := f.emit(ir.NewAllocBuiltin(v.Name, typ))
	val := f.genExpr(v.Init, false)
	f.emit(ir.NewStore(ptr, val))
	v.IR = ptr
}

func (f *fgen) genReturn(r *ast.Return) {
	var val ir.Value
	if r.Expr != nil {
		val = f.genExpr(r.Expr, false)
	}
	f.emit(ir.NewReturn(val))
}

// genAssign lowers the target as a pointer value and the value side
// normally, then stores one into the other.
func (f *fgen) genAssign(a *ast.VariableAssign) {
	ptr := f.genExpr(a.Target, true)
	val := f.genExpr(a.Value, false)
	f.emit(ir.NewStore(ptr, val))
}

// genIf lowers a CondJump to bbThen/bbElseOrMerge, fills each branch and
// unconditionally closes it with a Jump to bbMerge -- even a branch that
// already ended in a Return gets one, exactly as the original generator
// does, relying on the redundant-terminator pass to trim the resulting
// dead instruction afterward.
func (f *fgen) genIf(st *ast.If) {
	cond := f.genExpr(st.Cond, false)
	condJump := ir.NewCondJump(cond, nil, nil)
	f.emit(condJump)

	bbThen := f.newBlock("ifThen")
	condJump.Then = bbThen
	f.cur = bbThen
	f.genCompound(st.Then)
	bbEndOfThen := f.cur

	var bbEndOfElse *ir.BasicBlock
	if st.Else != nil {
		bbElse := f.newBlock("ifElse")
		condJump.Else = bbElse
		f.cur = bbElse
		f.genCompound(st.Else)
		bbEndOfElse = f.cur
	}

	bbMerge := f.newBlock("ifMerge")
	if st.Else != nil {
		f.cur = bbEndOfElse
		f.emit(ir.NewJump(bbMerge))
	} else {
		condJump.Else = bbMerge
	}

	f.cur = bbEndOfThen
	f.emit(ir.NewJump(bbMerge))

	f.cur = bbMerge
}

// genWhile lowers the full check/body/merge shape: Jump into bbCheck,
// evaluate the condition there and branch into bbBody or bbMerge, run the
// body and loop back to bbCheck, continue generation from bbMerge.
func (f *fgen) genWhile(st *ast.While) {
	bbCheck := f.newBlock("whileCheck")
	bbBody := f.newBlock("whileBody")
	bbMerge := f.newBlock("whileMerge")

	f.emit(ir.NewJump(bbCheck))

	f.cur = bbCheck
	cond := f.genExpr(st.Cond, false)
	f.emit(ir.NewCondJump(cond, bbBody, bbMerge))

	f.cur = bbBody
	f.genCompound(st.Body)
	f.emit(ir.NewJump(bbCheck))

	f.cur = bbMerge
}
