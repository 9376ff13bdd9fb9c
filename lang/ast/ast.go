// Package ast defines the abstract syntax tree produced by lang/parser and
// consumed by lang/decorator and lang/ir/gen. Every node closes over a
// small, explicit set of implementations -- there is no generic untyped
// node -- so every traversal in the compiler is an exhaustive Go type
// switch instead of a chain of dynamic casts.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/types"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself. The only supported verbs are 'v' and 's'; the '#' flag prints
	// count information about children, mirroring lang/ast's Format
	// convention in the teacher repository.
	fmt.Formatter

	// Range reports the source range spanned by the node.
	Range() source.Range

	// Walk enters each child node to implement the Visitor pattern.
	Walk(v Visitor)

	// Parent returns the node that directly contains this one, or nil for
	// the root. It is populated by a call to SetParentAndSelf and is the Go
	// analog to the original implementation's back-pointer plus "self slot":
	// instead of handing a node a pointer into its parent's storage, the
	// parent itself exposes ReplaceChild so a rewrite stays type-safe.
	Parent() Node
	setParent(Node)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	exprNode()
	// Type returns the expression's resolved result type. Before decoration
	// runs it is nil; types.Invalid{} is used once decoration fails to
	// determine a real type, so that later stages never see a nil Type.
	Type() types.Type
	setType(types.Type)
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents a top-level declaration: ClassDecl, FunctionDecl or
// VariableDecl.
type Decl interface {
	Node
	declNode()
}

// ExprParent is implemented by any node that holds Expr children and can
// replace one of them in place, e.g. when decoration rewrites a bare
// reference to a class member into a MemberVariable.
// This is the zipper-style analog of the original implementation's
// pointer-to-unique_ptr "self" slot.
type ExprParent interface {
	ReplaceChild(old, new Expr) bool
}

type node struct {
	parent Node
}

func (n *node) Parent() Node     { return n.parent }
func (n *node) setParent(p Node) { n.parent = p }

type exprBase struct {
	node
	typ types.Type
}

func (e *exprBase) Type() types.Type     { return e.typ }
func (e *exprBase) setType(t types.Type) { e.typ = t }
func (*exprBase) exprNode()              {}

// SetResolvedType records e's resolved type. It is called by lang/decorator
// once type checking determines e's result type.
func SetResolvedType(e Expr, t types.Type) { e.setType(t) }

// SetParentAndSelf walks root and populates every node's Parent link. It
// must be run once after parsing completes and before decoration begins.
func SetParentAndSelf(root Node) {
	var v VisitorFunc
	v = func(n Node, dir VisitDirection) Visitor {
		if dir != VisitEnter {
			return nil
		}
		setChildParents(n)
		return v
	}
	Walk(v, root)
}

// setChildParents is intentionally shallow: Walk's recursion handles depth,
// this only needs to stamp the immediate children of n.
func setChildParents(n Node) {
	n.Walk(VisitorFunc(func(child Node, dir VisitDirection) Visitor {
		if dir == VisitEnter {
			child.setParent(n)
		}
		return nil
	}))
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		switch {
		case len(runes) >= w:
			runes = runes[:w]
		case minus:
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		case !plus:
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
