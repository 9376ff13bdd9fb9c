package ast_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/ast"
	"github.com/mna/malinc/lang/types"
	"github.com/stretchr/testify/require"
)

func rng() source.Range {
	p := source.Pos{Line: 1, Col: 1, Byte: 0}
	return source.Range{Start: p, End: p}
}

func TestSetParentAndSelf(t *testing.T) {
	v := &ast.Variable{Name: "x", Rng: rng()}
	ret := &ast.Return{Expr: v, Rng: rng()}
	body := &ast.Compound{Stmts: []ast.Stmt{ret}, Rng: rng()}
	fn := &ast.FunctionDecl{Name: "f", Body: body, Rng: rng()}
	root := &ast.Root{Funcs: []*ast.FunctionDecl{fn}, Rng: rng()}

	ast.SetParentAndSelf(root)

	require.Nil(t, root.Parent())
	require.Equal(t, root, ast.Node(fn).Parent())
	require.Equal(t, ast.Node(fn), body.Parent())
	require.Equal(t, ast.Node(body), ast.Node(ret).Parent())
	require.Equal(t, ast.Node(ret), v.Parent())
}

func TestReplaceChildBinary(t *testing.T) {
	lhs := &ast.IntLit{Value: 1, Raw: "1", Rng: rng()}
	rhs := &ast.IntLit{Value: 2, Raw: "2", Rng: rng()}
	bin := &ast.Binary{Op: ast.Add, LHS: lhs, RHS: rhs, Rng: rng()}

	replacement := &ast.IntLit{Value: 3, Raw: "3", Rng: rng()}
	ok := bin.ReplaceChild(rhs, replacement)
	require.True(t, ok)
	require.Equal(t, ast.Expr(replacement), bin.RHS)

	ok = bin.ReplaceChild(lhs, replacement)
	require.True(t, ok)
	require.Equal(t, ast.Expr(replacement), bin.LHS)

	ok = bin.ReplaceChild(lhs, replacement)
	require.False(t, ok)
}

func TestReplaceChildCallArgs(t *testing.T) {
	a1 := &ast.IntLit{Value: 1, Raw: "1", Rng: rng()}
	call := &ast.Call{Name: "f", Args: []*ast.CallArg{{Expr: a1, Rng: rng()}}, Rng: rng()}

	a2 := &ast.IntLit{Value: 2, Raw: "2", Rng: rng()}
	require.True(t, call.ReplaceChild(a1, a2))
	require.Equal(t, ast.Expr(a2), call.Args[0].Expr)
}

func TestWalkVisitsEveryNode(t *testing.T) {
	cond := &ast.BoolLit{Value: true, Rng: rng()}
	thenBlk := &ast.Compound{Rng: rng()}
	ifStmt := &ast.If{Cond: cond, Then: thenBlk, Rng: rng()}
	body := &ast.Compound{Stmts: []ast.Stmt{ifStmt}, Rng: rng()}
	fn := &ast.FunctionDecl{Name: "f", Body: body, Rng: rng()}
	root := &ast.Root{Funcs: []*ast.FunctionDecl{fn}, Rng: rng()}

	var visited []string
	var visit ast.VisitorFunc
	visit = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		visited = append(visited, fmt.Sprintf("%T", n))
		return visit
	}
	ast.Walk(visit, root)

	require.Contains(t, visited, "*ast.FunctionDecl")
	require.Contains(t, visited, "*ast.Compound")
	require.Contains(t, visited, "*ast.If")
	require.Contains(t, visited, "*ast.BoolLit")
}

func TestFormatIncludesLabel(t *testing.T) {
	v := &ast.Variable{Name: "counter", Rng: rng()}
	require.Equal(t, "var counter", fmt.Sprintf("%v", v))
}

func TestFormatCountsFlag(t *testing.T) {
	fn := &ast.FunctionDecl{Name: "f", Params: []*ast.FunctionParamDecl{
		{Name: "a", TyName: "i32", Rng: rng()},
		{Name: "b", TyName: "i32", Rng: rng()},
	}, Rng: rng()}
	out := fmt.Sprintf("%#v", fn)
	require.Equal(t, "fun f {params=2}", out)
}

func TestPrinterShowsIndentedTree(t *testing.T) {
	ret := &ast.Return{Expr: &ast.IntLit{Value: 1, Raw: "1", Rng: rng()}, Rng: rng()}
	body := &ast.Compound{Stmts: []ast.Stmt{ret}, Rng: rng()}
	fn := &ast.FunctionDecl{Name: "f", Body: body, Rng: rng()}

	var buf strings.Builder
	p := &ast.Printer{Output: &buf}
	require.NoError(t, p.Print(fn))

	out := buf.String()
	require.Contains(t, out, "fun f")
	require.Contains(t, out, ". compound")
	require.Contains(t, out, ". . return")
	require.Contains(t, out, ". . . int 1")
}

func TestPrinterShowsTypes(t *testing.T) {
	lit := &ast.IntLit{Value: 1, Raw: "1", Rng: rng()}
	ast.SetResolvedType(lit, types.I32)

	var buf strings.Builder
	p := &ast.Printer{Output: &buf, ShowTypes: true}
	require.NoError(t, p.Print(lit))
	require.Contains(t, buf.String(), "int 1 : i32")
}

func TestPrintCodeFunction(t *testing.T) {
	ret := &ast.Return{
		Expr: &ast.Binary{
			Op:  ast.Add,
			LHS: &ast.Variable{Name: "a", Rng: rng()},
			RHS: &ast.Variable{Name: "b", Rng: rng()},
			Rng: rng(),
		},
		Rng: rng(),
	}
	fn := &ast.FunctionDecl{
		Name: "add",
		Params: []*ast.FunctionParamDecl{
			{Name: "a", TyName: "i32", Rng: rng()},
			{Name: "b", TyName: "i32", Rng: rng()},
		},
		ReturnTyName: "i32",
		Body:         &ast.Compound{Stmts: []ast.Stmt{ret}, Rng: rng()},
		Rng:          rng(),
	}
	root := &ast.Root{Funcs: []*ast.FunctionDecl{fn}, Rng: rng()}

	out := ast.PrintCode(root)
	require.Contains(t, out, "fun add(a: i32, b: i32): i32 {")
	require.Contains(t, out, "return (a + b);")
}

func TestPrintCodeClassOmitsLetForMembers(t *testing.T) {
	member := &ast.VariableDecl{Name: "x", TyName: "i32", Rng: rng()}
	class := &ast.ClassDecl{Name: "Point", Members: []*ast.VariableDecl{member}, Rng: rng()}
	root := &ast.Root{Classes: []*ast.ClassDecl{class}, Rng: rng()}

	out := ast.PrintCode(root)
	require.Contains(t, out, "class Point {")
	require.Contains(t, out, "x: i32;")
	require.NotContains(t, out, "let x")
}

func TestPrintCodeGlobalUsesLet(t *testing.T) {
	g := &ast.VariableDecl{Name: "counter", TyName: "i32", Init: &ast.IntLit{Value: 0, Raw: "0", Rng: rng()}, Rng: rng()}
	root := &ast.Root{Globals: []*ast.VariableDecl{g}, Rng: rng()}

	out := ast.PrintCode(root)
	require.Contains(t, out, "let counter: i32 = 0;")
}

func TestIsValidStmtExpr(t *testing.T) {
	call := &ast.Call{Name: "f", Rng: rng()}
	require.True(t, ast.IsValidStmtExpr(call))

	negated := &ast.Unary{Op: ast.LogicNot, Inner: call, Rng: rng()}
	require.True(t, ast.IsValidStmtExpr(negated))

	lit := &ast.IntLit{Value: 1, Raw: "1", Rng: rng()}
	require.False(t, ast.IsValidStmtExpr(lit))
}
