package pass

import "github.com/mna/malinc/lang/ir"

// RemoveRedundantTerminators truncates each basic block at its first
// terminator (Return, Jump or CondJump), dropping whatever instructions
// lang/ir/gen left after it: genIf and genWhile always close a branch
// with a Jump to the merge block even when that branch already ended in
// a Return, relying on this pass to clean up the resulting dead
// instructions. Grounded on
// original_source/src/ir/passes/IRRemoveBBRedundantTermPass.hpp, which
// does the same first-terminator truncation over every basic block of
// every function.
type RemoveRedundantTerminators struct{ NopPass }

func (RemoveRedundantTerminators) VisitBasicBlock(_ *ir.Function, bb *ir.BasicBlock) {
	for i, instr := range bb.Instr {
		if isTerminator(instr) {
			bb.Instr = bb.Instr[:i+1]
			return
		}
	}
}

func isTerminator(v ir.Value) bool {
	switch v.(type) {
	case *ir.Return, *ir.Jump, *ir.CondJump:
		return true
	default:
		return false
	}
}
