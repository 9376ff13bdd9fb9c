package pass_test

import (
	"testing"

	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/decorator"
	"github.com/mna/malinc/lang/diag"
	"github.com/mna/malinc/lang/ir"
	"github.com/mna/malinc/lang/ir/gen"
	"github.com/mna/malinc/lang/ir/pass"
	"github.com/mna/malinc/lang/parser"
	"github.com/mna/malinc/lang/types"
	"github.com/stretchr/testify/require"
)

func TestRunVisitsGlobalsFunctionsAndBlocks(t *testing.T) {
	mod := ir.NewModule("test")
	gv := ir.NewGlobalVar("x", ir.BuiltinType{Builtin: types.I32})
	mod.AddGlobal(gv)

	fn := ir.NewFunction("f", ir.VoidType{}, false)
	mod.AddFunc(fn)
	bb1 := fn.AddBlock("entry")
	bb2 := fn.AddBlock("more")

	var globals []*ir.GlobalVar
	var funcs []*ir.Function
	var blocks []*ir.BasicBlock
	rec := recordingVisitor{
		onGlobal: func(g *ir.GlobalVar) { globals = append(globals, g) },
		onFunc:   func(f *ir.Function) { funcs = append(funcs, f) },
		onBlock:  func(_ *ir.Function, bb *ir.BasicBlock) { blocks = append(blocks, bb) },
	}
	pass.Run(mod, rec)

	require.Equal(t, []*ir.GlobalVar{gv}, globals)
	require.Equal(t, []*ir.Function{fn}, funcs)
	require.Equal(t, []*ir.BasicBlock{bb1, bb2}, blocks)
}

func TestRunSkipsBlocksOfExternFunction(t *testing.T) {
	mod := ir.NewModule("test")
	fn := ir.NewFunction("puts", ir.BuiltinType{Builtin: types.I32}, true)
	mod.AddFunc(fn)

	var visited int
	rec := recordingVisitor{onBlock: func(*ir.Function, *ir.BasicBlock) { visited++ }}
	pass.Run(mod, rec)

	require.Zero(t, visited)
}

func TestRemoveRedundantTerminatorsTruncatesAfterFirstTerminator(t *testing.T) {
	fn := ir.NewFunction("f", ir.VoidType{}, false)
	bb := fn.AddBlock("entry")
	ret := ir.NewReturn(nil)
	bb.Append(ret)
	bb.Append(ir.NewJump(bb)) // dead instruction left by an unconditional closing jump

	pass.RemoveRedundantTerminators{}.VisitBasicBlock(fn, bb)

	require.Len(t, bb.Instr, 1)
	require.Same(t, ret, bb.Instr[0])
}

func TestRemoveRedundantTerminatorsLeavesUnterminatedBlockUntouched(t *testing.T) {
	fn := ir.NewFunction("f", ir.VoidType{}, false)
	bb := fn.AddBlock("entry")
	c := ir.NewConstI32(1)
	bb.Append(c)

	pass.RemoveRedundantTerminators{}.VisitBasicBlock(fn, bb)

	require.Len(t, bb.Instr, 1)
	require.Same(t, c, bb.Instr[0])
}

func TestRemoveRedundantTerminatorsOverGeneratedIfElse(t *testing.T) {
	mgr := source.NewManagerFromSource("test.malin", `
		fun f(): i32 {
			if true {
				return 1;
			} else {
				return 2;
			}
		}
		fun main(): i32 { return 0; }
	`)
	bag := diag.NewBag(mgr.Path())
	root := parser.Parse(mgr, bag)
	require.NotNil(t, root)
	decorator.Decorate(root, bag)
	require.False(t, bag.HasErrors())
	mod := gen.Generate(root, bag)

	var f *ir.Function
	for _, fn := range mod.Funcs {
		if fn.Name == "f" {
			f = fn
		}
	}
	require.NotNil(t, f)

	// before cleanup, the "then" block holds the returned constant, then a
	// Return followed by a dead Jump.
	thenBlock := f.Blocks[1]
	require.Len(t, thenBlock.Instr, 3)
	require.IsType(t, &ir.Return{}, thenBlock.Instr[1])
	require.IsType(t, &ir.Jump{}, thenBlock.Instr[2])

	pass.RunAll(mod, pass.RemoveRedundantTerminators{})

	require.Len(t, thenBlock.Instr, 2)
	require.IsType(t, &ir.Return{}, thenBlock.Instr[1])
}

type recordingVisitor struct {
	pass.NopPass
	onGlobal func(*ir.GlobalVar)
	onFunc   func(*ir.Function)
	onBlock  func(*ir.Function, *ir.BasicBlock)
}

func (r recordingVisitor) VisitGlobal(g *ir.GlobalVar) {
	if r.onGlobal != nil {
		r.onGlobal(g)
	}
}

func (r recordingVisitor) VisitFunction(f *ir.Function) {
	if r.onFunc != nil {
		r.onFunc(f)
	}
}

func (r recordingVisitor) VisitBasicBlock(f *ir.Function, bb *ir.BasicBlock) {
	if r.onBlock != nil {
		r.onBlock(f, bb)
	}
}
