package ir_test

import (
	"testing"

	"github.com/mna/malinc/lang/ir"
	"github.com/mna/malinc/lang/types"
	"github.com/stretchr/testify/require"
)

func TestFromLangType(t *testing.T) {
	require.Equal(t, ir.BuiltinType{Builtin: types.I32}, ir.FromLangType(types.I32))
	require.Equal(t, ir.VoidType{}, ir.FromLangType(types.Void))
	require.IsType(t, ir.InvalidType{}, ir.FromLangType(&types.Reference{Inner: types.I32}))
}

func TestPointerTypeString(t *testing.T) {
	pt := &ir.PointerType{Elem: ir.BuiltinType{Builtin: types.I32}}
	require.Equal(t, "*i32", pt.String())
}

func TestAllocBuiltinProducesPointer(t *testing.T) {
	alloc := ir.NewAllocBuiltin("x", ir.BuiltinType{Builtin: types.I32})
	pt, ok := alloc.IRType().(*ir.PointerType)
	require.True(t, ok)
	require.Equal(t, ir.BuiltinType{Builtin: types.I32}, pt.Elem)
}

func TestLoadTypeFollowsPointerElem(t *testing.T) {
	alloc := ir.NewAllocBuiltin("x", ir.BuiltinType{Builtin: types.F32})
	load := ir.NewLoad(alloc)
	require.Equal(t, ir.BuiltinType{Builtin: types.F32}, load.IRType())
}

func TestLoadOfNonPointerIsInvalid(t *testing.T) {
	c := ir.NewConstI32(1)
	load := ir.NewLoad(c)
	require.IsType(t, ir.InvalidType{}, load.IRType())
}

func TestStoreIsVoid(t *testing.T) {
	alloc := ir.NewAllocBuiltin("x", ir.BuiltinType{Builtin: types.I32})
	store := ir.NewStore(alloc, ir.NewConstI32(1))
	require.Equal(t, ir.VoidType{}, store.IRType())
}

func TestNumCalcBinaryTakesOperandType(t *testing.T) {
	lhs := ir.NewConstI32(1)
	rhs := ir.NewConstI32(2)
	bin := ir.NewNumCalcBinary(ir.NumAdd, lhs, rhs)
	require.Equal(t, ir.BuiltinType{Builtin: types.I32}, bin.IRType())
	require.Equal(t, "add", bin.Op.String())
}

func TestNumCompareBinaryProducesBool(t *testing.T) {
	cmp := ir.NewNumCompareBinary(ir.NumLT, ir.NewConstI32(1), ir.NewConstI32(2))
	require.Equal(t, ir.BuiltinType{Builtin: types.Bool}, cmp.IRType())
	require.Equal(t, "less", cmp.Op.String())
}

func TestBasicBlockTerminator(t *testing.T) {
	b := ir.NewBasicBlock("entry")
	require.False(t, b.IsTerminated())
	require.Nil(t, b.Terminator())

	b.Append(ir.NewConstI32(1))
	require.False(t, b.IsTerminated())

	ret := ir.NewReturn(nil)
	b.Append(ret)
	require.True(t, b.IsTerminated())
	require.Equal(t, ir.Value(ret), b.Terminator())
}

func TestFunctionAddBlockLinksFunc(t *testing.T) {
	fn := ir.NewFunction("f", ir.BuiltinType{Builtin: types.I32}, false)
	b := fn.AddBlock("entry")
	require.Same(t, fn, b.Func)
	require.Same(t, b, fn.Entry())
}

func TestFunctionEntryNilWhenNoBlocks(t *testing.T) {
	fn := ir.NewFunction("f", ir.VoidType{}, true)
	require.Nil(t, fn.Entry())
}

func TestModuleHoldingBlockIsSeparateFromFuncs(t *testing.T) {
	mod := ir.NewModule("test.malin")
	require.NotNil(t, mod.Holding())
	require.Equal(t, "$init", mod.Holding().Name)
	require.Empty(t, mod.Funcs)

	fn := ir.NewFunction("main", ir.VoidType{}, false)
	mod.AddFunc(fn)
	require.Len(t, mod.Funcs, 1)

	g := ir.NewGlobalVar("counter", ir.BuiltinType{Builtin: types.I32})
	mod.AddGlobal(g)
	require.Len(t, mod.Globals, 1)
}
