// Package decorator implements malin's combined name-resolution and
// type-checking pass: it walks a parsed Root three times (declarations,
// globals, bodies) exactly as original_source/src/decorator/AstDecorator.h
// does, generalized from a single interleaved pass into three explicit
// ones because malin's forward-reference rules require every class,
// function and global name to be visible before any body is checked.
package decorator

import (
	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/ast"
	"github.com/mna/malinc/lang/diag"
	"github.com/mna/malinc/lang/types"
)

// Decorate runs the three-pass decoration of root, reporting every error or
// warning to bag. Callers should stop before IR generation if bag has
// errors; warnings (e.g. dead code) never prevent generation.
func Decorate(root *ast.Root, bag *diag.Bag) {
	d := &decorator{bag: bag}
	d.passA(root)
	d.passB(root)
	d.passC(root)
}

type decorator struct {
	bag    *diag.Bag
	global *scope

	// curClass is non-nil while checking a method body or a class member
	// initializer, curThis only while checking a method body, so that bare
	// variable references resolving to a member can be rewritten into
	// MemberVariable("this", name).
	curClass *ast.ClassDecl
	curThis  *ast.VariableDecl
}

func isInvalid(t types.Type) bool {
	_, ok := t.(types.Invalid)
	return ok
}

// resolveType maps a declared type name to a types.Type, diagnosing unknown
// names. Built-ins are recognized first; anything else is looked up as a
// class name in the global scope.
func (d *decorator) resolveType(name string, rng source.Range) types.Type {
	switch name {
	case "i32":
		return types.I32
	case "f32":
		return types.F32
	case "bool":
		return types.Bool
	case "void":
		return types.Void
	case "str":
		return types.Str
	}
	if n := d.global.lookup(name); n != nil {
		if c, ok := n.(*ast.ClassDecl); ok {
			return &types.Class{Decl: c}
		}
	}
	d.bag.Add(rng, "type '%s' is not declared", name)
	return types.Invalid{}
}

// --- Pass A: declarations ---

func (d *decorator) passA(root *ast.Root) {
	d.global = newScope(nil)

	for _, c := range root.Classes {
		d.define(c.Name, c)
	}
	for _, g := range root.Globals {
		d.define(g.Name, g)
	}
	for _, fn := range root.Funcs {
		d.define(fn.Name, fn)
	}

	for _, c := range root.Classes {
		d.declareClass(c)
	}
	for _, fn := range root.Funcs {
		d.declareFunction(fn)
	}
	for _, c := range root.Classes {
		d.checkClassLoop(c, nil)
	}
}

func (d *decorator) define(name string, n ast.Node) {
	if d.global.define(name, n) {
		return
	}
	prev := d.global.lookup(name)
	diagnostic := d.bag.Add(n.Range(), "name '%s' already declared", name)
	if prev != nil {
		diagnostic.Notef(prev.Range(), "name '%s' previously declared here", name)
	}
}

func (d *decorator) declareClass(c *ast.ClassDecl) {
	for _, m := range c.Members {
		m.Type = d.resolveType(m.TyName, m.Rng)
		if m.Init != nil {
			d.curClass = c
			t := d.checkExpr(m.Init, d.global, true)
			d.curClass = nil
			if !isInvalid(t) && !isInvalid(m.Type) && !t.Equal(m.Type) {
				d.bag.Add(m.Rng, "specified type of member '%s' ('%s') does not match type of init expression ('%s')", m.Name, m.Type, t)
			}
		}
	}

	classType := &types.Class{Decl: c}
	c.This = &ast.VariableDecl{Name: "this", TyName: c.Name, Type: classType, Rng: c.Rng}

	ctor := &ast.FunctionDecl{
		Name:          c.Name,
		IsConstructor: true,
		Class:         c,
		ReturnTyName:  c.Name,
		ReturnType:    classType,
		Rng:           c.Rng,
	}
	c.Methods = append(c.Methods, ctor)

	for _, m := range c.Methods {
		d.declareFunction(m)
	}
}

func (d *decorator) declareFunction(fn *ast.FunctionDecl) {
	fn.ReturnType = d.resolveType(fn.ReturnTyName, fn.Rng)
	for _, p := range fn.Params {
		p.Type = d.resolveType(p.TyName, p.Rng)
		if p.Default == nil {
			continue
		}
		t := d.checkExpr(p.Default, d.global, true)
		if !isInvalid(t) && !isInvalid(p.Type) && !t.Equal(p.Type) {
			d.bag.Add(p.Rng, "default value of parameter '%s' has type '%s' which does not match declared type '%s'", p.Name, t, p.Type)
		}
	}
}

// checkClassLoop is grounded on CodeGenerator::checkClassDecl_member_loop:
// a depth-first walk that fails if a value-typed member's class transitively
// contains cur again.
func (d *decorator) checkClassLoop(cur *ast.ClassDecl, path []*ast.ClassDecl) {
	for _, m := range cur.Members {
		cls, ok := m.Type.(*types.Class)
		if !ok {
			continue
		}
		mcd, ok := cls.Decl.(*ast.ClassDecl)
		if !ok {
			continue
		}
		if classInPath(path, mcd) {
			diagnostic := d.bag.Add(m.Rng, "loop in class '%s' declaration: member '%s' has type of class that contains '%s' indirectly", cur.Name, m.Name, cur.Name)
			for _, p := range path {
				diagnostic.Notef(p.Rng, "previously referenced from this class")
			}
			continue
		}
		next := make([]*ast.ClassDecl, len(path)+1)
		copy(next, path)
		next[len(path)] = mcd
		d.checkClassLoop(mcd, next)
	}
}

func classInPath(path []*ast.ClassDecl, c *ast.ClassDecl) bool {
	for _, p := range path {
		if p == c {
			return true
		}
	}
	return false
}

// --- Pass B: globals ---

func (d *decorator) passB(root *ast.Root) {
	for _, g := range root.Globals {
		d.checkGlobalVarDecl(g)
	}
}

func (d *decorator) checkGlobalVarDecl(g *ast.VariableDecl) {
	if g.TyName != "" {
		g.Type = d.resolveType(g.TyName, g.Rng)
		if _, isClass := g.Type.(*types.Class); isClass {
			d.bag.Add(g.Rng, "global variables of class type are not supported")
			d.checkExpr(g.Init, d.global, true)
			g.Type = types.Invalid{}
			return
		}
		initType := d.checkExpr(g.Init, d.global, true)
		if !isInvalid(initType) && !isInvalid(g.Type) && !initType.Equal(g.Type) {
			d.bag.Add(g.Rng, "specified type of variable '%s' ('%s') does not match type of init expression ('%s')", g.Name, g.Type, initType)
		}
		return
	}

	initType := d.checkExpr(g.Init, d.global, true)
	if isInvalid(initType) {
		g.Type = types.Invalid{}
		return
	}
	if _, isClass := initType.(*types.Class); isClass {
		d.bag.Add(g.Rng, "global variables of class type are not supported")
		g.Type = types.Invalid{}
		return
	}
	g.Type = initType
}

// --- Pass C: bodies ---

func (d *decorator) passC(root *ast.Root) {
	for _, c := range root.Classes {
		d.checkClassBody(c)
	}
	for _, fn := range root.Funcs {
		d.checkFunctionBody(fn)
	}

	main := d.global.lookup("main")
	fn, ok := main.(*ast.FunctionDecl)
	if !ok || len(fn.Params) != 0 || fn.ReturnType == nil || !fn.ReturnType.Equal(types.I32) {
		d.bag.Add(root.Rng, "no 'main' function with signature '() -> i32' has been provided")
		return
	}
	root.Main = fn
}

func (d *decorator) checkClassBody(c *ast.ClassDecl) {
	classScope := newScope(d.global)
	for _, m := range c.Members {
		classScope.define(m.Name, m)
	}
	for _, m := range c.Methods {
		classScope.define(m.Name, m)
	}
	classScope.define("this", c.This)

	d.curClass = c
	d.curThis = c.This
	for _, m := range c.Methods {
		d.checkFunctionBodyIn(m, classScope)
	}
	d.curClass = nil
	d.curThis = nil
}

func (d *decorator) checkFunctionBody(fn *ast.FunctionDecl) {
	d.checkFunctionBodyIn(fn, d.global)
}

func (d *decorator) checkFunctionBodyIn(fn *ast.FunctionDecl, outer *scope) {
	if fn.Body == nil {
		// extern function or synthesized constructor with no user body.
		return
	}

	fnScope := newScope(outer)
	for _, p := range fn.Params {
		fnScope.define(p.Name, p)
	}

	returns := d.checkCompound(fn, fn.Body, fnScope)
	if fn.ReturnType.IsVoid() {
		if !returns {
			fn.Body.Stmts = append(fn.Body.Stmts, &ast.Return{Rng: fn.Body.Rng})
		}
		return
	}
	if !returns {
		d.bag.Add(fn.Rng, "function '%s' does not return a value on every path", fn.Name)
	}
}

// checkCompound checks every statement of c in order and reports whether c
// is guaranteed to return. Once a statement is known to return, any
// following statements are flagged as dead code; they are still checked.
func (d *decorator) checkCompound(fn *ast.FunctionDecl, c *ast.Compound, sc *scope) bool {
	returned := false
	for _, s := range c.Stmts {
		if returned {
			// still decorated below (the IR generator lowers it before the
			// redundant-terminator pass truncates the block), but flagged as
			// dead here since control can never reach it.
			d.bag.AddWarning(s.Range(), "unreachable code")
		}
		if d.checkStmt(fn, s, sc) {
			returned = true
		}
	}
	return returned
}

func (d *decorator) checkStmt(fn *ast.FunctionDecl, s ast.Stmt, sc *scope) bool {
	switch st := s.(type) {
	case *ast.VariableDecl:
		d.checkLocalVarDecl(st, sc)
		return false

	case *ast.Return:
		d.checkReturn(fn, st, sc)
		return true

	case *ast.If:
		d.checkCondition(st.Cond, sc)
		thenReturns := d.checkCompound(fn, st.Then, newScope(sc))
		elseReturns := false
		if st.Else != nil {
			elseReturns = d.checkCompound(fn, st.Else, newScope(sc))
		}
		return thenReturns && st.Else != nil && elseReturns

	case *ast.While:
		d.checkCondition(st.Cond, sc)
		// conservatively non-returning, per spec.
		d.checkCompound(fn, st.Body, newScope(sc))
		return false

	case *ast.VariableAssign:
		d.checkAssign(st, sc)
		return false

	case *ast.ExprStmt:
		d.checkExpr(st.Expr, sc, false)
		return false

	default:
		d.bag.Add(s.Range(), "unsupported statement")
		return false
	}
}

func (d *decorator) checkLocalVarDecl(v *ast.VariableDecl, sc *scope) {
	initType := d.checkExpr(v.Init, sc, false)

	if v.TyName != "" {
		v.Type = d.resolveType(v.TyName, v.Rng)
		if !isInvalid(initType) && !isInvalid(v.Type) && !initType.Equal(v.Type) {
			d.bag.Add(v.Rng, "specified type of variable '%s' ('%s') does not match type of init expression ('%s')", v.Name, v.Type, initType)
		}
	} else {
		v.Type = initType
	}

	if !sc.define(v.Name, v) {
		prev := sc.lookup(v.Name)
		diagnostic := d.bag.Add(v.Rng, "name '%s' already declared", v.Name)
		if prev != nil {
			diagnostic.Notef(prev.Range(), "name '%s' previously declared here", v.Name)
		}
	}
}

func (d *decorator) checkReturn(fn *ast.FunctionDecl, r *ast.Return, sc *scope) {
	if fn.ReturnType.IsVoid() {
		if r.Expr != nil {
			d.bag.Add(r.Rng, "function '%s' returns void, but a value was returned", fn.Name)
		}
		return
	}
	if r.Expr == nil {
		d.bag.Add(r.Rng, "expected return type '%s' for function '%s' but no value was returned", fn.ReturnType, fn.Name)
		return
	}
	t := d.checkExpr(r.Expr, sc, false)
	if !isInvalid(t) && !t.Equal(fn.ReturnType) {
		d.bag.Add(r.Rng, "expected return type '%s' for function '%s' does not match given return type '%s'", fn.ReturnType, fn.Name, t)
	}
}

func (d *decorator) checkCondition(cond ast.Expr, sc *scope) {
	t := d.checkExpr(cond, sc, false)
	if !isInvalid(t) && !t.IsBoolean() {
		d.bag.Add(cond.Range(), "condition must have type 'bool', got '%s'", t)
	}
}

func (d *decorator) checkAssign(a *ast.VariableAssign, sc *scope) {
	targetType := d.checkExpr(a.Target, sc, false)
	switch a.Target.(type) {
	case *ast.Variable, *ast.MemberVariable:
	default:
		d.bag.Add(a.Target.Range(), "assignment target must be a variable or member variable")
	}
	valType := d.checkExpr(a.Value, sc, false)
	if !isInvalid(targetType) && !isInvalid(valType) && !targetType.Equal(valType) {
		d.bag.Add(a.Rng, "assignment type '%s' does not match variable type '%s'", valType, targetType)
	}
}
