package gen

import (
	"github.com/mna/malinc/lang/ast"
	"github.com/mna/malinc/lang/ir"
)

// genExpr lowers e to a value. wantPointer requests the address of a
// variable rather than its loaded value, used for the target side of an
// assignment; every other position passes false.
func (f *fgen) genExpr(e ast.Expr, wantPointer bool) ir.Value {
	switch ex := e.(type) {
	case *ast.IntLit:
		return f.emit(ir.NewConstI32(ex.Value))
	case *ast.FloatLit:
		return f.emit(ir.NewConstF32(ex.Value))
	case *ast.BoolLit:
		return f.emit(ir.NewConstBool(ex.Value))
	case *ast.StringLit:
		f.pgen.bag.Add(ex.Rng, "string literals cannot be lowered to ir")
		return &ir.Invalid{}
	case *ast.Variable:
		return f.genVariable(ex, wantPointer)
	case *ast.MemberVariable:
		f.pgen.bag.Add(ex.Rng, "member access cannot be lowered to ir, classes are not yet implemented in the ir generator")
		return &ir.Invalid{}
	case *ast.Call:
		return f.genCall(ex)
	case *ast.MemberCall:
		f.pgen.bag.Add(ex.Rng, "method calls cannot be lowered to ir, classes are not yet implemented in the ir generator")
		return &ir.Invalid{}
	case *ast.Unary:
		return f.genUnary(ex)
	case *ast.Binary:
		return f.genBinary(ex)
	default:
		f.pgen.bag.Add(e.Range(), "expression cannot be lowered to ir")
		return &ir.Invalid{}
	}
}

// genVariable loads (or, with wantPointer, returns the address of) the
// storage a name resolved to during decoration. Both globals and locals
// use the same VariableDecl.IR/FunctionParamDecl.IR pointer slot, since
// both a *ir.GlobalVar and a *ir.AllocBuiltin are pointer-typed values.
func (f *fgen) genVariable(v *ast.Variable, wantPointer bool) ir.Value {
	var ptr ir.Value
	switch decl := v.Decl.(type) {
	case *ast.VariableDecl:
		ptr = decl.IR
	case *ast.FunctionParamDecl:
		ptr = decl.IR
	}
	if ptr == nil {
		f.pgen.bag.Add(v.Rng, "variable '%s' has no ir allocation, cannot be lowered", v.Name)
		return &ir.Invalid{}
	}
	if wantPointer {
		return ptr
	}
	return f.emit(ir.NewLoad(ptr))
}

// genCall lowers each argument in the decorator's already-normalized
// positional order. A defaulted argument's constant expression is lowered
// into the module's holding block instead of the caller's own block, the
// same trick the original generator uses to keep a pure, side-effect-free
// initializer out of the function it is used in.
func (f *fgen) genCall(call *ast.Call) ir.Value {
	if call.Decl == nil || call.Decl.IR == nil {
		f.pgen.bag.Add(call.Rng, "call to '%s' cannot be lowered to ir", call.Name)
		return &ir.Invalid{}
	}
	args := make([]ir.Value, len(call.Args))
	for i, a := range call.Args {
		if a == nil {
			continue
		}
		if a.Defaulted {
			args[i] = f.pgen.genInHoldingBlock(a.Expr)
			continue
		}
		args[i] = f.genExpr(a.Expr, false)
	}
	return f.emit(ir.NewCall(call.Decl.IR, args))
}

func (f *fgen) genUnary(u *ast.Unary) ir.Value {
	v := f.genExpr(u.Inner, false)
	return f.emit(ir.NewLogicalNot(v))
}

func (f *fgen) genBinary(b *ast.Binary) ir.Value {
	lhs := f.genExpr(b.LHS, false)
	rhs := f.genExpr(b.RHS, false)

	switch b.Op {
	case ast.Add:
		return f.emit(ir.NewNumCalcBinary(ir.NumAdd, lhs, rhs))
	case ast.Sub:
		return f.emit(ir.NewNumCalcBinary(ir.NumSub, lhs, rhs))
	case ast.Mul:
		return f.emit(ir.NewNumCalcBinary(ir.NumMul, lhs, rhs))
	case ast.Div:
		return f.emit(ir.NewNumCalcBinary(ir.NumDiv, lhs, rhs))
	case ast.Eq:
		return f.emit(ir.NewNumCompareBinary(ir.NumEQ, lhs, rhs))
	case ast.Neq:
		return f.emit(ir.NewNumCompareBinary(ir.NumNEQ, lhs, rhs))
	case ast.Gt:
		return f.emit(ir.NewNumCompareBinary(ir.NumGT, lhs, rhs))
	case ast.Ge:
		return f.emit(ir.NewNumCompareBinary(ir.NumGE, lhs, rhs))
	case ast.Lt:
		return f.emit(ir.NewNumCompareBinary(ir.NumLT, lhs, rhs))
	case ast.Le:
		return f.emit(ir.NewNumCompareBinary(ir.NumLE, lhs, rhs))
	case ast.Or:
		return f.emit(ir.NewBoolBinary(ir.BoolOr, lhs, rhs))
	case ast.And:
		return f.emit(ir.NewBoolBinary(ir.BoolAnd, lhs, rhs))
	default:
		f.pgen.bag.Add(b.Rng, "binary operator cannot be lowered to ir")
		return &ir.Invalid{}
	}
}
