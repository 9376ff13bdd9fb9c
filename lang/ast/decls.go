package ast

import (
	"fmt"

	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/ir"
	"github.com/mna/malinc/lang/types"
)

// Root is the top-level node of a parsed file: an unordered sequence of
// class, global variable and function declarations.
type Root struct {
	node
	Name    string // source path, may be empty
	Classes []*ClassDecl
	Globals []*VariableDecl
	Funcs   []*FunctionDecl
	// Main is set by decoration to the entry-point function, i.e. the
	// zero-argument function named "main".
	Main *FunctionDecl
	Rng  source.Range
}

func (n *Root) Format(f fmt.State, verb rune) {
	format(f, verb, n, "root", map[string]int{
		"classes": len(n.Classes), "globals": len(n.Globals), "funcs": len(n.Funcs),
	})
}
func (n *Root) Range() source.Range { return n.Rng }
func (n *Root) Walk(v Visitor) {
	for _, c := range n.Classes {
		Walk(v, c)
	}
	for _, g := range n.Globals {
		Walk(v, g)
	}
	for _, fn := range n.Funcs {
		Walk(v, fn)
	}
}

// ClassDecl declares a class: a name, ordered member variables and member
// functions. Decoration synthesizes a "this" variable and a default
// constructor for every class.
type ClassDecl struct {
	node
	Name    string
	Members []*VariableDecl
	Methods []*FunctionDecl
	Rng     source.Range

	// This is the synthesized receiver variable, filled in by decoration.
	This *VariableDecl
}

// ClassName satisfies types.ClassDecl, letting *ClassDecl back a
// *types.Class without lang/types importing lang/ast.
func (n *ClassDecl) ClassName() string { return n.Name }

func (n *ClassDecl) Format(f fmt.State, verb rune) {
	format(f, verb, n, "class "+n.Name, map[string]int{"members": len(n.Members), "methods": len(n.Methods)})
}
func (n *ClassDecl) Range() source.Range { return n.Rng }
func (n *ClassDecl) Walk(v Visitor) {
	for _, m := range n.Members {
		Walk(v, m)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}
func (*ClassDecl) declNode() {}

// FunctionDecl declares a function or method: a name, ordered parameters, a
// declared return-type name and an optional compound body. The body is
// absent for an extern function and for a class's synthesized default
// constructor.
type FunctionDecl struct {
	node
	Name         string
	Extern       bool
	Params       []*FunctionParamDecl
	ReturnTyName string
	Body         *Compound // nil if Extern or IsConstructor
	Rng          source.Range

	// Class is the declaring class, non-nil iff this is a member function.
	Class *ClassDecl
	// IsConstructor is true for a class's synthesized default constructor.
	IsConstructor bool

	// ReturnType is the resolved return type, filled in by decoration.
	ReturnType types.Type
	// IR is filled in by IR generation with this function's lowered form.
	IR *ir.Function
}

func (n *FunctionDecl) Format(f fmt.State, verb rune) {
	lbl := "fun " + n.Name
	if n.Extern {
		lbl += " extern"
	}
	format(f, verb, n, lbl, map[string]int{"params": len(n.Params)})
}
func (n *FunctionDecl) Range() source.Range { return n.Rng }
func (n *FunctionDecl) Walk(v Visitor) {
	for _, p := range n.Params {
		Walk(v, p)
	}
	if n.Body != nil {
		Walk(v, n.Body)
	}
}
func (*FunctionDecl) declNode() {}

// FunctionParamDecl declares one function parameter: a name, a declared
// type name and an optional default-value expression, which must be a
// constant expression.
type FunctionParamDecl struct {
	node
	Name        string
	TyName      string
	Default     Expr // nil if no default value
	Rng         source.Range

	Type types.Type
	// IR is filled in by IR generation: the *ir.AllocBuiltin pointer backing
	// this parameter once it has been materialized as an addressable local
	// in the function's entry block.
	IR ir.Value
}

func (n *FunctionParamDecl) Format(f fmt.State, verb rune) {
	format(f, verb, n, "param "+n.Name+": "+n.TyName, nil)
}
func (n *FunctionParamDecl) Range() source.Range { return n.Rng }
func (n *FunctionParamDecl) Walk(v Visitor) {
	if n.Default != nil {
		Walk(v, n.Default)
	}
}
func (n *FunctionParamDecl) ReplaceChild(old, nw Expr) bool {
	if n.Default == old {
		n.Default = nw
		return true
	}
	return false
}

// VariableDecl declares a variable, either as a global ("let" at the top
// level) or as a local ("let" statement inside a function body). Exactly
// one of TyName or Init may be absent, never both.
type VariableDecl struct {
	node
	Name   string
	TyName string // "" if the type is inferred from Init
	Init   Expr   // nil if TyName is set without an initializer... always set in malin's grammar, kept optional for supplemented declaration-only cases
	Rng    source.Range

	Type types.Type
	// IR is filled in by IR generation: an *ir.GlobalVar for a global, or the
	// *ir.AllocBuiltin instruction for a local.
	IR ir.Value
}

func (n *VariableDecl) Format(f fmt.State, verb rune) {
	format(f, verb, n, "let "+n.Name, nil)
}
func (n *VariableDecl) Range() source.Range { return n.Rng }
func (n *VariableDecl) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (*VariableDecl) declNode() {}
func (*VariableDecl) stmtNode() {}
func (n *VariableDecl) ReplaceChild(old, nw Expr) bool {
	if n.Init == old {
		n.Init = nw
		return true
	}
	return false
}
