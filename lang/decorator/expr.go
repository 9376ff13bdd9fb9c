package decorator

import (
	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/ast"
	"github.com/mna/malinc/lang/types"
)

// checkExpr type-checks e in scope sc, records its resolved type via
// ast.SetResolvedType and returns that type. isolated mirrors the original
// implementation's doExpression(expr, isolated) flag: true inside global
// and default-argument initializers, where neither variable references nor
// calls are allowed.
func (d *decorator) checkExpr(e ast.Expr, sc *scope, isolated bool) types.Type {
	switch ex := e.(type) {
	case *ast.IntLit:
		ast.SetResolvedType(ex, types.I32)
		return types.I32
	case *ast.FloatLit:
		ast.SetResolvedType(ex, types.F32)
		return types.F32
	case *ast.BoolLit:
		ast.SetResolvedType(ex, types.Bool)
		return types.Bool
	case *ast.StringLit:
		ast.SetResolvedType(ex, types.Str)
		return types.Str
	case *ast.Variable:
		return d.checkVariable(ex, sc, isolated)
	case *ast.MemberVariable:
		return d.checkMemberVariable(ex, sc, isolated)
	case *ast.Call:
		return d.checkCall(ex, sc, isolated)
	case *ast.MemberCall:
		return d.checkMemberCall(ex, sc, isolated)
	case *ast.Unary:
		return d.checkUnary(ex, sc, isolated)
	case *ast.Binary:
		return d.checkBinary(ex, sc, isolated)
	default:
		d.bag.Add(e.Range(), "unsupported expression")
		ast.SetResolvedType(e, types.Invalid{})
		return types.Invalid{}
	}
}

func (d *decorator) checkVariable(v *ast.Variable, sc *scope, isolated bool) types.Type {
	if isolated {
		d.bag.Add(v.Rng, "usage of other variables is not allowed here")
		ast.SetResolvedType(v, types.Invalid{})
		return types.Invalid{}
	}

	decl := sc.lookup(v.Name)
	if decl == nil {
		d.bag.Add(v.Rng, "name '%s' not found in current scope", v.Name)
		ast.SetResolvedType(v, types.Invalid{})
		return types.Invalid{}
	}

	switch dn := decl.(type) {
	case *ast.VariableDecl:
		v.Decl = dn
		if d.curThis != nil && dn.Parent() == ast.Node(d.curClass) {
			mv := d.rewriteAsMember(v, dn)
			return mv.Type()
		}
		ast.SetResolvedType(v, dn.Type)
		return dn.Type
	case *ast.FunctionParamDecl:
		v.Decl = dn
		ast.SetResolvedType(v, dn.Type)
		return dn.Type
	default:
		d.bag.Add(v.Rng, "'%s' is not a declared variable", v.Name)
		ast.SetResolvedType(v, types.Invalid{})
		return types.Invalid{}
	}
}

// rewriteAsMember is the one place the self-slot mechanism is exercised:
// a bare reference to a class member is spliced, in place, into a
// MemberVariable whose parent is a synthetic "this" variable.
func (d *decorator) rewriteAsMember(v *ast.Variable, member *ast.VariableDecl) *ast.MemberVariable {
	thisVar := &ast.Variable{Name: "this", Decl: d.curThis, Rng: v.Rng}
	ast.SetResolvedType(thisVar, &types.Class{Decl: d.curClass})

	mv := &ast.MemberVariable{Parent: thisVar, Name: v.Name, Decl: member, Rng: v.Rng}
	ast.SetResolvedType(mv, member.Type)

	if parent, ok := v.Parent().(ast.ExprParent); ok {
		parent.ReplaceChild(v, mv)
	}
	return mv
}

func (d *decorator) checkMemberVariable(mv *ast.MemberVariable, sc *scope, isolated bool) types.Type {
	parentType := d.checkExpr(mv.Parent, sc, isolated)
	cls, ok := parentType.(*types.Class)
	if !ok {
		if !isInvalid(parentType) {
			d.bag.Add(mv.Rng, "member access requires a class type, got '%s'", parentType)
		}
		ast.SetResolvedType(mv, types.Invalid{})
		return types.Invalid{}
	}
	classDecl, _ := cls.Decl.(*ast.ClassDecl)
	member := findMember(classDecl, mv.Name)
	if member == nil {
		d.bag.Add(mv.Rng, "class '%s' has no member named '%s'", classDecl.Name, mv.Name)
		ast.SetResolvedType(mv, types.Invalid{})
		return types.Invalid{}
	}
	mv.Decl = member
	ast.SetResolvedType(mv, member.Type)
	return member.Type
}

func (d *decorator) checkUnary(u *ast.Unary, sc *scope, isolated bool) types.Type {
	t := d.checkExpr(u.Inner, sc, isolated)
	if isInvalid(t) {
		ast.SetResolvedType(u, types.Invalid{})
		return types.Invalid{}
	}
	if !t.IsBoolean() {
		d.bag.Add(u.Inner.Range(), "operand of '!' must be 'bool', got '%s'", t)
		ast.SetResolvedType(u, types.Invalid{})
		return types.Invalid{}
	}
	ast.SetResolvedType(u, types.Bool)
	return types.Bool
}

func (d *decorator) checkBinary(b *ast.Binary, sc *scope, isolated bool) types.Type {
	lt := d.checkExpr(b.LHS, sc, isolated)
	rt := d.checkExpr(b.RHS, sc, isolated)
	if isInvalid(lt) || isInvalid(rt) {
		ast.SetResolvedType(b, types.Invalid{})
		return types.Invalid{}
	}
	if !lt.Equal(rt) {
		d.bag.Add(b.Rng, "types of binary expression do not match: lhs type '%s' and rhs type '%s'", lt, rt)
		ast.SetResolvedType(b, types.Invalid{})
		return types.Invalid{}
	}

	switch b.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		if !lt.IsNumeric() {
			d.bag.Add(b.Rng, "arithmetic operator '%s' requires numeric operands, got '%s'", b.Op, lt)
			ast.SetResolvedType(b, types.Invalid{})
			return types.Invalid{}
		}
		ast.SetResolvedType(b, lt)
		return lt
	case ast.Eq, ast.Neq, ast.Gt, ast.Ge, ast.Lt, ast.Le:
		if !lt.IsNumeric() {
			d.bag.Add(b.Rng, "comparison operator '%s' requires numeric operands, got '%s'", b.Op, lt)
			ast.SetResolvedType(b, types.Invalid{})
			return types.Invalid{}
		}
		ast.SetResolvedType(b, types.Bool)
		return types.Bool
	case ast.Or, ast.And:
		if !lt.IsBoolean() {
			d.bag.Add(b.Rng, "logical operator '%s' requires 'bool' operands, got '%s'", b.Op, lt)
			ast.SetResolvedType(b, types.Invalid{})
			return types.Invalid{}
		}
		ast.SetResolvedType(b, types.Bool)
		return types.Bool
	default:
		d.bag.Add(b.Rng, "unsupported binary operator '%s'", b.Op)
		ast.SetResolvedType(b, types.Invalid{})
		return types.Invalid{}
	}
}

func (d *decorator) checkCall(call *ast.Call, sc *scope, isolated bool) types.Type {
	if isolated {
		d.bag.Add(call.Rng, "usage of function calls is not allowed here")
		ast.SetResolvedType(call, types.Invalid{})
		return types.Invalid{}
	}

	decl := d.global.lookup(call.Name)
	switch dn := decl.(type) {
	case *ast.FunctionDecl:
		call.Decl = dn
		if !d.bindArgs(call.Rng, call.Name, dn.Params, &call.Args, sc) {
			ast.SetResolvedType(call, types.Invalid{})
			return types.Invalid{}
		}
		ast.SetResolvedType(call, dn.ReturnType)
		return dn.ReturnType
	case *ast.ClassDecl:
		ctor := findConstructor(dn)
		call.Decl = ctor
		if ctor == nil || !d.bindArgs(call.Rng, call.Name, ctor.Params, &call.Args, sc) {
			ast.SetResolvedType(call, types.Invalid{})
			return types.Invalid{}
		}
		ast.SetResolvedType(call, ctor.ReturnType)
		return ctor.ReturnType
	default:
		d.bag.Add(call.Rng, "function with name '%s' not declared", call.Name)
		ast.SetResolvedType(call, types.Invalid{})
		return types.Invalid{}
	}
}

func (d *decorator) checkMemberCall(mc *ast.MemberCall, sc *scope, isolated bool) types.Type {
	parentType := d.checkExpr(mc.Parent, sc, isolated)
	cls, ok := parentType.(*types.Class)
	if !ok {
		if !isInvalid(parentType) {
			d.bag.Add(mc.Rng, "method call requires a class type, got '%s'", parentType)
		}
		ast.SetResolvedType(mc, types.Invalid{})
		return types.Invalid{}
	}
	classDecl, _ := cls.Decl.(*ast.ClassDecl)
	method := findMethod(classDecl, mc.Name)
	if method == nil {
		d.bag.Add(mc.Rng, "class '%s' has no method named '%s'", classDecl.Name, mc.Name)
		ast.SetResolvedType(mc, types.Invalid{})
		return types.Invalid{}
	}
	mc.Decl = method
	if !d.bindArgs(mc.Rng, mc.Name, method.Params, &mc.Args, sc) {
		ast.SetResolvedType(mc, types.Invalid{})
		return types.Invalid{}
	}
	ast.SetResolvedType(mc, method.ReturnType)
	return method.ReturnType
}

func findMember(c *ast.ClassDecl, name string) *ast.VariableDecl {
	if c == nil {
		return nil
	}
	for _, m := range c.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func findMethod(c *ast.ClassDecl, name string) *ast.FunctionDecl {
	if c == nil {
		return nil
	}
	for _, m := range c.Methods {
		if !m.IsConstructor && m.Name == name {
			return m
		}
	}
	return nil
}

func findConstructor(c *ast.ClassDecl) *ast.FunctionDecl {
	for _, m := range c.Methods {
		if m.IsConstructor {
			return m
		}
	}
	return nil
}

// bindArgs implements the argument binding algorithm: positional arguments
// first, then named ones, then defaults for anything still empty. On
// success *argsPtr is replaced with exactly len(params) positional
// CallArgs in parameter order.
func (d *decorator) bindArgs(rng source.Range, name string, params []*ast.FunctionParamDecl, argsPtr *[]*ast.CallArg, sc *scope) bool {
	args := *argsPtr
	for _, a := range args {
		d.checkExpr(a.Expr, sc, false)
	}

	slots := make([]*ast.CallArg, len(params))
	ok := true

	idx := 0
	for _, a := range args {
		if a.Name != "" {
			continue
		}
		if idx >= len(params) {
			d.bag.Add(a.Rng, "function '%s' has only %d arguments, but a %d. argument has been provided at the function call", name, len(params), idx+1)
			ok = false
			break
		}
		a.Param = params[idx]
		slots[idx] = a
		idx++
	}

	for _, a := range args {
		if a.Name == "" {
			continue
		}
		pi := paramIndex(params, a.Name)
		if pi < 0 {
			d.bag.Add(a.Rng, "function '%s' does not have an argument with name '%s'", name, a.Name)
			ok = false
			continue
		}
		if slots[pi] != nil {
			d.bag.Add(a.Rng, "function argument '%s' of function '%s' was already assigned by another argument before", a.Name, name).
				Notef(slots[pi].Rng, "first assign of argument '%s'", a.Name)
			ok = false
			continue
		}
		a.Param = params[pi]
		slots[pi] = a
	}

	for i, p := range params {
		if slots[i] != nil {
			at := slots[i].Expr.Type()
			if at != nil && !isInvalid(at) && !isInvalid(p.Type) && !at.Equal(p.Type) {
				d.bag.Add(slots[i].Rng, "argument type '%s' does not match parameter '%s' type '%s'", at, p.Name, p.Type)
				ok = false
			}
			continue
		}
		if p.Default == nil {
			d.bag.Add(rng, "function argument '%s' of function '%s' is required but has not been provided at function call", p.Name, name).
				Notef(p.Rng, "definition of argument '%s'", p.Name)
			ok = false
			continue
		}
		clone := cloneExpr(p.Default)
		ast.SetResolvedType(clone, p.Default.Type())
		slots[i] = &ast.CallArg{Expr: clone, Param: p, Rng: rng, Defaulted: true}
	}

	if !ok {
		return false
	}
	*argsPtr = slots
	return true
}

func paramIndex(params []*ast.FunctionParamDecl, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// cloneExpr makes a deep structural copy of a constant expression so the
// same default-value AST can be spliced into multiple call sites. Default
// expressions are already restricted (by the isolated check) to literals
// and unary/binary combinations of literals.
func cloneExpr(e ast.Expr) ast.Expr {
	switch ex := e.(type) {
	case *ast.IntLit:
		c := &ast.IntLit{Value: ex.Value, Raw: ex.Raw, Rng: ex.Rng}
		return c
	case *ast.FloatLit:
		c := &ast.FloatLit{Value: ex.Value, Raw: ex.Raw, Rng: ex.Rng}
		return c
	case *ast.BoolLit:
		c := &ast.BoolLit{Value: ex.Value, Rng: ex.Rng}
		return c
	case *ast.StringLit:
		c := &ast.StringLit{Value: ex.Value, Raw: ex.Raw, Rng: ex.Rng}
		return c
	case *ast.Unary:
		return &ast.Unary{Op: ex.Op, Inner: cloneExpr(ex.Inner), Rng: ex.Rng}
	case *ast.Binary:
		c := &ast.Binary{Op: ex.Op, LHS: cloneExpr(ex.LHS), RHS: cloneExpr(ex.RHS), Rng: ex.Rng}
		return c
	default:
		return e
	}
}
