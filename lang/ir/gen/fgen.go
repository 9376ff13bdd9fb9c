package gen

import "github.com/mna/malinc/lang/ir"

// fgen holds per-function generation state: the basic block new
// instructions are appended to, and (except while lowering into the
// module's holding block) the function those blocks belong to. It plays
// the same role as the original implementation's IRBuilder, minus the
// module-wide bookkeeping that lives on pgen instead.
type fgen struct {
	pgen *pgen
	fn   *ir.Function // nil while lowering into the module's holding block
	cur  *ir.BasicBlock
}

// emit appends v to the current block and returns it, so call sites can
// both attach the instruction and use its result value in one line.
func (f *fgen) emit(v ir.Value) ir.Value {
	f.cur.Append(v)
	return v
}

// newBlock allocates a new basic block on the current function. Only
// called while lowering a real function body: default-argument and global
// initializer expressions never branch, since decoration restricts them to
// constant expressions.
func (f *fgen) newBlock(name string) *ir.BasicBlock {
	return f.fn.AddBlock(name)
}
