package ir

import "github.com/mna/malinc/lang/types"

// Value is any result-producing or effectful IR instruction. The set of
// implementations is closed, mirroring the original implementation's
// IRValueVar variant: Invalid, Comment, ConstI32, ConstF32, ConstBool,
// AllocBuiltin, Load, Store, NumCalcBinary, NumCompareBinary, BoolBinary,
// LogicalNot, Return, Jump, CondJump, Call, FunctionArgument, GlobalVar.
type Value interface {
	// IRType returns the type this value produces. Instructions with no
	// result (Store, Jump, CondJump, Return) report VoidType.
	IRType() Type
	isValue()
}

type valueBase struct {
	Typ Type
}

func (v *valueBase) IRType() Type { return v.Typ }

// Invalid is the zero value substituted wherever lowering could not
// determine a real instruction, so later passes never dereference nil.
type Invalid struct{ valueBase }

func (*Invalid) isValue() {}

// Comment is a non-executable annotation emitted into a basic block, used
// by the printer and by passes that want to leave a trace of a lowering
// decision.
type Comment struct {
	valueBase
	Text string
}

func (*Comment) isValue() {}

// ConstI32 is a constant 32-bit signed integer value.
type ConstI32 struct {
	valueBase
	Value int32
}

func NewConstI32(v int32) *ConstI32 {
	return &ConstI32{valueBase: valueBase{Typ: BuiltinType{Builtin: types.I32}}, Value: v}
}

func (*ConstI32) isValue() {}

// ConstF32 is a constant 32-bit floating point value.
type ConstF32 struct {
	valueBase
	Value float32
}

func NewConstF32(v float32) *ConstF32 {
	return &ConstF32{valueBase: valueBase{Typ: BuiltinType{Builtin: types.F32}}, Value: v}
}

func (*ConstF32) isValue() {}

// ConstBool is a constant boolean value.
type ConstBool struct {
	valueBase
	Value bool
}

func NewConstBool(v bool) *ConstBool {
	return &ConstBool{valueBase: valueBase{Typ: BuiltinType{Builtin: types.Bool}}, Value: v}
}

func (*ConstBool) isValue() {}

// AllocBuiltin reserves storage for a single value of a built-in type and
// produces a pointer to it. Name is the source identifier this storage
// backs (a local variable or a function parameter), used by the printer
// to name the slot instead of an anonymous counter; it is empty for an
// alloc with no corresponding source name.
type AllocBuiltin struct {
	valueBase
	Name string
	Elem Type
}

func NewAllocBuiltin(name string, elem Type) *AllocBuiltin {
	return &AllocBuiltin{valueBase: valueBase{Typ: &PointerType{Elem: elem}}, Name: name, Elem: elem}
}

func (*AllocBuiltin) isValue() {}

// Load reads the value pointed to by Ptr.
type Load struct {
	valueBase
	Ptr Value
}

func NewLoad(ptr Value) *Load {
	elem := Type(InvalidType{})
	if pt, ok := ptr.IRType().(*PointerType); ok {
		elem = pt.Elem
	}
	return &Load{valueBase: valueBase{Typ: elem}, Ptr: ptr}
}

func (*Load) isValue() {}

// Store writes Val to the location pointed to by Dest.
type Store struct {
	valueBase
	Dest Value
	Val  Value
}

func NewStore(dest, val Value) *Store {
	return &Store{valueBase: valueBase{Typ: VoidType{}}, Dest: dest, Val: val}
}

func (*Store) isValue() {}

// NumCalcOp identifies a numeric arithmetic binary operator.
type NumCalcOp int8

const (
	NumCalcInvalid NumCalcOp = iota
	NumAdd
	NumSub
	NumMul
	NumDiv
)

func (op NumCalcOp) String() string {
	switch op {
	case NumAdd:
		return "add"
	case NumSub:
		return "subtract"
	case NumMul:
		return "multiply"
	case NumDiv:
		return "divide"
	default:
		return "invalid"
	}
}

// NumCalcBinary computes an arithmetic operation over two numeric operands.
type NumCalcBinary struct {
	valueBase
	Op       NumCalcOp
	LHS, RHS Value
}

func NewNumCalcBinary(op NumCalcOp, lhs, rhs Value) *NumCalcBinary {
	return &NumCalcBinary{valueBase: valueBase{Typ: lhs.IRType()}, Op: op, LHS: lhs, RHS: rhs}
}

func (*NumCalcBinary) isValue() {}

// NumCmpOp identifies a numeric comparison binary operator.
type NumCmpOp int8

const (
	NumCmpInvalid NumCmpOp = iota
	NumEQ
	NumNEQ
	NumGT
	NumGE
	NumLT
	NumLE
)

func (op NumCmpOp) String() string {
	switch op {
	case NumEQ:
		return "equals"
	case NumNEQ:
		return "notEquals"
	case NumGT:
		return "greater"
	case NumGE:
		return "greaterEquals"
	case NumLT:
		return "less"
	case NumLE:
		return "lessEquals"
	default:
		return "invalid"
	}
}

// NumCompareBinary compares two numeric operands and produces a bool.
type NumCompareBinary struct {
	valueBase
	Op       NumCmpOp
	LHS, RHS Value
}

func NewNumCompareBinary(op NumCmpOp, lhs, rhs Value) *NumCompareBinary {
	return &NumCompareBinary{valueBase: valueBase{Typ: BuiltinType{Builtin: types.Bool}}, Op: op, LHS: lhs, RHS: rhs}
}

func (*NumCompareBinary) isValue() {}

// BoolOp identifies a logical binary operator.
type BoolOp int8

const (
	BoolInvalid BoolOp = iota
	BoolAnd
	BoolOr
)

func (op BoolOp) String() string {
	switch op {
	case BoolAnd:
		return "and"
	case BoolOr:
		return "or"
	default:
		return "invalid"
	}
}

// BoolBinary combines two boolean operands.
type BoolBinary struct {
	valueBase
	Op       BoolOp
	LHS, RHS Value
}

func NewBoolBinary(op BoolOp, lhs, rhs Value) *BoolBinary {
	return &BoolBinary{valueBase: valueBase{Typ: BuiltinType{Builtin: types.Bool}}, Op: op, LHS: lhs, RHS: rhs}
}

func (*BoolBinary) isValue() {}

// LogicalNot negates a boolean operand.
type LogicalNot struct {
	valueBase
	Operand Value
}

func NewLogicalNot(operand Value) *LogicalNot {
	return &LogicalNot{valueBase: valueBase{Typ: BuiltinType{Builtin: types.Bool}}, Operand: operand}
}

func (*LogicalNot) isValue() {}

// Return terminates a function, optionally with a value.
type Return struct {
	valueBase
	Val Value // nil for a void return
}

func NewReturn(val Value) *Return {
	return &Return{valueBase: valueBase{Typ: VoidType{}}, Val: val}
}

func (*Return) isValue() {}

// Jump terminates a block with an unconditional branch.
type Jump struct {
	valueBase
	Target *BasicBlock
}

func NewJump(target *BasicBlock) *Jump {
	return &Jump{valueBase: valueBase{Typ: VoidType{}}, Target: target}
}

func (*Jump) isValue() {}

// CondJump terminates a block with a two-way branch.
type CondJump struct {
	valueBase
	Cond        Value
	Then, Else  *BasicBlock
}

func NewCondJump(cond Value, then, els *BasicBlock) *CondJump {
	return &CondJump{valueBase: valueBase{Typ: VoidType{}}, Cond: cond, Then: then, Else: els}
}

func (*CondJump) isValue() {}

// Call invokes Func with Args in parameter-index order; Args[i] is nil only
// if argument i was not provided and has no default (a decoration error). A
// defaulted argument holds the value lowered from the parameter's default
// into the module's holding block.
type Call struct {
	valueBase
	Func *Function
	Args []Value
}

func NewCall(fn *Function, args []Value) *Call {
	return &Call{valueBase: valueBase{Typ: fn.ReturnType}, Func: fn, Args: args}
}

func (*Call) isValue() {}

// FunctionArgument is the value of one formal parameter inside a function
// body.
type FunctionArgument struct {
	valueBase
	Name  string
	Index int
}

func NewFunctionArgument(name string, index int, typ Type) *FunctionArgument {
	return &FunctionArgument{valueBase: valueBase{Typ: typ}, Name: name, Index: index}
}

func (*FunctionArgument) isValue() {}

// GlobalVar is a module-level storage location. Its initializer is lowered
// separately into the module's holding block and referenced here so the
// printer can show it.
type GlobalVar struct {
	valueBase
	Name string
	Init Value
}

func NewGlobalVar(name string, elem Type) *GlobalVar {
	return &GlobalVar{valueBase: valueBase{Typ: &PointerType{Elem: elem}}, Name: name}
}

func (*GlobalVar) isValue() {}
