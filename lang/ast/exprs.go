package ast

import (
	"fmt"

	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/token"
)

// IntLit is a constant integer literal, e.g. 42.
type IntLit struct {
	exprBase
	Value int32
	Raw   string
	Rng   source.Range
}

func (n *IntLit) Format(f fmt.State, verb rune) { format(f, verb, n, "int "+n.Raw, nil) }
func (n *IntLit) Range() source.Range            { return n.Rng }
func (n *IntLit) Walk(Visitor)                   {}

// FloatLit is a constant floating point literal, e.g. 4.2.
type FloatLit struct {
	exprBase
	Value float32
	Raw   string
	Rng   source.Range
}

func (n *FloatLit) Format(f fmt.State, verb rune) { format(f, verb, n, "float "+n.Raw, nil) }
func (n *FloatLit) Range() source.Range            { return n.Rng }
func (n *FloatLit) Walk(Visitor)                   {}

// BoolLit is a constant boolean literal, true or false.
type BoolLit struct {
	exprBase
	Value bool
	Rng   source.Range
}

func (n *BoolLit) Format(f fmt.State, verb rune) {
	lbl := "false"
	if n.Value {
		lbl = "true"
	}
	format(f, verb, n, lbl, nil)
}
func (n *BoolLit) Range() source.Range { return n.Rng }
func (n *BoolLit) Walk(Visitor)        {}

// StringLit is a constant string literal, e.g. "foo". Decoration gives it
// type str; malin's IR generator does not support lowering strings and
// reports a diagnostic for each one it meets.
type StringLit struct {
	exprBase
	Value string
	Raw   string
	Rng   source.Range
}

func (n *StringLit) Format(f fmt.State, verb rune) { format(f, verb, n, "string "+n.Raw, nil) }
func (n *StringLit) Range() source.Range            { return n.Rng }
func (n *StringLit) Walk(Visitor)                   {}

// Variable references a named variable, resolved by decoration to either a
// local, a global or a function parameter.
type Variable struct {
	exprBase
	Name string
	Rng  source.Range

	// Decl is filled in by decoration: the *VariableDecl, *FunctionParamDecl
	// or *ClassDecl.This this name resolved to.
	Decl Node
}

func (n *Variable) Format(f fmt.State, verb rune) { format(f, verb, n, "var "+n.Name, nil) }
func (n *Variable) Range() source.Range            { return n.Rng }
func (n *Variable) Walk(Visitor)                   {}

// MemberVariable references a member of a class instance, e.g. parent.name.
type MemberVariable struct {
	exprBase
	Parent Expr
	Name   string
	Rng    source.Range

	// Decl is filled in by decoration: the *VariableDecl of the member.
	Decl *VariableDecl
}

func (n *MemberVariable) Format(f fmt.State, verb rune) {
	format(f, verb, n, "member ."+n.Name, nil)
}
func (n *MemberVariable) Range() source.Range { return n.Rng }
func (n *MemberVariable) Walk(v Visitor)      { Walk(v, n.Parent) }
func (n *MemberVariable) ReplaceChild(old, nw Expr) bool {
	if n.Parent == old {
		n.Parent = nw
		return true
	}
	return false
}

// CallArg is one argument of a Call or MemberCall, optionally named.
type CallArg struct {
	Name string // "" if positional
	Expr Expr
	Rng  source.Range

	// Param is filled in by decoration: the parameter this argument binds
	// to.
	Param *FunctionParamDecl
	// Defaulted is true if decoration filled this slot from the parameter's
	// default-value expression because the call site did not provide it.
	Defaulted bool
}

// Call invokes a free function by name.
type Call struct {
	exprBase
	Name     string
	Args     []*CallArg
	Rng      source.Range

	// Decl is filled in by decoration: the resolved *FunctionDecl.
	Decl *FunctionDecl
}

func (n *Call) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call "+n.Name, map[string]int{"args": len(n.Args)})
}
func (n *Call) Range() source.Range { return n.Rng }
func (n *Call) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a.Expr)
	}
}
func (n *Call) ReplaceChild(old, nw Expr) bool {
	for _, a := range n.Args {
		if a.Expr == old {
			a.Expr = nw
			return true
		}
	}
	return false
}

// MemberCall invokes a method on a class instance.
type MemberCall struct {
	exprBase
	Parent Expr
	Name   string
	Args   []*CallArg
	Rng    source.Range

	Decl *FunctionDecl
}

func (n *MemberCall) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call ."+n.Name, map[string]int{"args": len(n.Args)})
}
func (n *MemberCall) Range() source.Range { return n.Rng }
func (n *MemberCall) Walk(v Visitor) {
	Walk(v, n.Parent)
	for _, a := range n.Args {
		Walk(v, a.Expr)
	}
}
func (n *MemberCall) ReplaceChild(old, nw Expr) bool {
	if n.Parent == old {
		n.Parent = nw
		return true
	}
	for _, a := range n.Args {
		if a.Expr == old {
			a.Expr = nw
			return true
		}
	}
	return false
}

// UnaryOp identifies a unary operator.
type UnaryOp int8

// The complete set of unary operators.
const (
	UnaryInvalid UnaryOp = iota
	LogicNot             // !
)

func (op UnaryOp) String() string {
	if op == LogicNot {
		return "!"
	}
	return "<invalid>"
}

// Unary applies a unary operator to Inner.
type Unary struct {
	exprBase
	Op    UnaryOp
	Inner Expr
	Rng   source.Range
}

func (n *Unary) Format(f fmt.State, verb rune) { format(f, verb, n, "unary "+n.Op.String(), nil) }
func (n *Unary) Range() source.Range            { return n.Rng }
func (n *Unary) Walk(v Visitor)                 { Walk(v, n.Inner) }
func (n *Unary) ReplaceChild(old, nw Expr) bool {
	if n.Inner == old {
		n.Inner = nw
		return true
	}
	return false
}

// BinaryOp identifies a binary operator, with the grammar's precedence
// climbing table keyed by these same constants in lang/parser.
type BinaryOp int8

//nolint:revive
const (
	BinaryInvalid BinaryOp = iota
	Add
	Sub
	Mul
	Div
	Eq
	Neq
	Gt
	Ge
	Lt
	Le
	Or
	And
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Or:
		return "||"
	case And:
		return "&&"
	default:
		return "<invalid>"
	}
}

// BinaryOpFromToken maps a lexical operator token to its BinaryOp, or
// BinaryInvalid if k is not a binary operator token.
func BinaryOpFromToken(k token.Kind) BinaryOp {
	switch k {
	case token.PLUS:
		return Add
	case token.MINUS:
		return Sub
	case token.STAR:
		return Mul
	case token.SLASH:
		return Div
	case token.EQ:
		return Eq
	case token.NEQ:
		return Neq
	case token.GT:
		return Gt
	case token.GE:
		return Ge
	case token.LT:
		return Lt
	case token.LE:
		return Le
	case token.OROR:
		return Or
	case token.ANDAND:
		return And
	default:
		return BinaryInvalid
	}
}

// Binary applies a binary operator to LHS and RHS.
type Binary struct {
	exprBase
	Op       BinaryOp
	LHS, RHS Expr
	Rng      source.Range
}

func (n *Binary) Format(f fmt.State, verb rune) { format(f, verb, n, "binary "+n.Op.String(), nil) }
func (n *Binary) Range() source.Range            { return n.Rng }
func (n *Binary) Walk(v Visitor) {
	Walk(v, n.LHS)
	Walk(v, n.RHS)
}
func (n *Binary) ReplaceChild(old, nw Expr) bool {
	switch old {
	case n.LHS:
		n.LHS = nw
	case n.RHS:
		n.RHS = nw
	default:
		return false
	}
	return true
}
