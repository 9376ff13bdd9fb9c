package decorator_test

import (
	"testing"

	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/ast"
	"github.com/mna/malinc/lang/decorator"
	"github.com/mna/malinc/lang/diag"
	"github.com/mna/malinc/lang/parser"
	"github.com/mna/malinc/lang/types"
	"github.com/stretchr/testify/require"
)

func decorate(t *testing.T, src string) (*ast.Root, *diag.Bag) {
	t.Helper()
	mgr := source.NewManagerFromSource("test.malin", src)
	bag := diag.NewBag(mgr.Path())
	root := parser.Parse(mgr, bag)
	require.NotNil(t, root, "parse errors: %v", bag.Diagnostics)
	decorator.Decorate(root, bag)
	return root, bag
}

func messages(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Diagnostics {
		out = append(out, d.Message)
	}
	return out
}

func TestDecorateSimpleFunction(t *testing.T) {
	_, bag := decorate(t, `
		fun add(a: i32, b: i32): i32 {
			return a + b;
		}
		fun main(): i32 {
			return add(1, 2);
		}
	`)
	require.Empty(t, bag.Diagnostics)
}

func TestDecorateDuplicateGlobalName(t *testing.T) {
	_, bag := decorate(t, `
		let x: i32 = 1;
		let x: i32 = 2;
		fun main(): i32 { return 0; }
	`)
	require.NotEmpty(t, bag.Diagnostics)
	require.Contains(t, messages(bag)[0], "already declared")
}

func TestDecorateUndeclaredVariable(t *testing.T) {
	_, bag := decorate(t, `
		fun main(): i32 {
			return y;
		}
	`)
	require.NotEmpty(t, bag.Diagnostics)
	require.Contains(t, messages(bag)[0], "not found in current scope")
}

func TestDecorateBinaryTypeMismatch(t *testing.T) {
	_, bag := decorate(t, `
		fun f(): i32 {
			return 1 + true;
		}
		fun main(): i32 { return 0; }
	`)
	require.NotEmpty(t, bag.Diagnostics)
	require.Contains(t, messages(bag)[0], "do not match")
}

func TestDecorateMissingMain(t *testing.T) {
	_, bag := decorate(t, `
		fun f(): i32 { return 0; }
	`)
	found := false
	for _, m := range messages(bag) {
		if m == "no 'main' function with signature '() -> i32' has been provided" {
			found = true
		}
	}
	require.True(t, found)
}

func TestDecorateMainWrongSignature(t *testing.T) {
	_, bag := decorate(t, `
		fun main(a: i32): i32 { return 0; }
	`)
	require.NotEmpty(t, bag.Diagnostics)
}

func TestDecorateClassMemberAccessRewrittenToMemberVariable(t *testing.T) {
	root, bag := decorate(t, `
		class Point {
			x: i32 = 0;

			fun getX(): i32 {
				return x;
			}
		}
		fun main(): i32 { return 0; }
	`)
	require.Empty(t, bag.Diagnostics)

	class := root.Classes[0]
	var getX *ast.FunctionDecl
	for _, m := range class.Methods {
		if m.Name == "getX" {
			getX = m
		}
	}
	require.NotNil(t, getX)

	ret := getX.Body.Stmts[0].(*ast.Return)
	mv, ok := ret.Expr.(*ast.MemberVariable)
	require.True(t, ok, "expected return expression to be rewritten into a MemberVariable, got %T", ret.Expr)
	require.Equal(t, "x", mv.Name)

	thisVar, ok := mv.Parent.(*ast.Variable)
	require.True(t, ok)
	require.Equal(t, "this", thisVar.Name)
}

func TestDecorateConstructorCallResolvesToSynthesizedCtor(t *testing.T) {
	root, bag := decorate(t, `
		class Point {
			x: i32 = 0;
		}
		fun main(): i32 {
			let p: Point = Point();
			return 0;
		}
	`)
	require.Empty(t, bag.Diagnostics)

	fn := root.Funcs[0]
	vd := fn.Body.Stmts[0].(*ast.VariableDecl)
	call := vd.Init.(*ast.Call)
	require.NotNil(t, call.Decl)
	require.True(t, call.Decl.IsConstructor)
	require.IsType(t, &types.Class{}, vd.Type)
}

func TestDecorateArgBindingNamedAndDefault(t *testing.T) {
	root, bag := decorate(t, `
		fun f(a: i32, b: i32 = 10): i32 {
			return a + b;
		}
		fun main(): i32 {
			return f(a = 1);
		}
	`)
	require.Empty(t, bag.Diagnostics)

	fn := root.Funcs[1]
	ret := fn.Body.Stmts[0].(*ast.Return)
	call := ret.Expr.(*ast.Call)
	require.Len(t, call.Args, 2)
	require.Equal(t, "a", call.Args[0].Param.Name)
	require.Equal(t, "b", call.Args[1].Param.Name)
	require.IsType(t, &ast.IntLit{}, call.Args[1].Expr)
}

func TestDecorateArgBindingTooManyPositional(t *testing.T) {
	_, bag := decorate(t, `
		fun f(a: i32): i32 { return a; }
		fun main(): i32 { return f(1, 2); }
	`)
	require.NotEmpty(t, bag.Diagnostics)
	require.Contains(t, messages(bag)[0], "has only 1 arguments")
}

func TestDecorateMissingRequiredArgument(t *testing.T) {
	_, bag := decorate(t, `
		fun f(a: i32): i32 { return a; }
		fun main(): i32 { return f(); }
	`)
	require.NotEmpty(t, bag.Diagnostics)
	require.Contains(t, messages(bag)[0], "is required but has not been provided")
}

func TestDecorateReturnReachabilityIfElse(t *testing.T) {
	_, bag := decorate(t, `
		fun f(): i32 {
			if true {
				return 1;
			} else {
				return 2;
			}
		}
		fun main(): i32 { return 0; }
	`)
	require.Empty(t, bag.Diagnostics)
}

func TestDecorateMissingReturnIsError(t *testing.T) {
	_, bag := decorate(t, `
		fun f(): i32 {
			if true {
				return 1;
			}
		}
		fun main(): i32 { return 0; }
	`)
	require.NotEmpty(t, bag.Diagnostics)
	require.Contains(t, messages(bag)[0], "does not return a value on every path")
}

func TestDecorateVoidFunctionGetsImplicitReturn(t *testing.T) {
	root, bag := decorate(t, `
		fun f(): void {
			let x: i32 = 1;
		}
		fun main(): i32 { return 0; }
	`)
	require.Empty(t, bag.Diagnostics)

	fn := root.Funcs[0]
	last := fn.Body.Stmts[len(fn.Body.Stmts)-1]
	ret, ok := last.(*ast.Return)
	require.True(t, ok)
	require.Nil(t, ret.Expr)
}

func TestDecorateDeadCodeWarning(t *testing.T) {
	_, bag := decorate(t, `
		fun f(): i32 {
			return 1;
			return 2;
		}
		fun main(): i32 { return 0; }
	`)
	require.False(t, bag.HasErrors())
	require.Len(t, bag.Diagnostics, 1)
	require.Equal(t, diag.Warning, bag.Diagnostics[0].Severity)
}

func TestDecorateClassMemberLoop(t *testing.T) {
	_, bag := decorate(t, `
		class A {
			b: B;
		}
		class B {
			a: A;
		}
		fun main(): i32 { return 0; }
	`)
	require.NotEmpty(t, bag.Diagnostics)
	found := false
	for _, m := range messages(bag) {
		if m != "" && (m[0] == 'l') {
			found = true
		}
	}
	require.True(t, found, "expected a class-loop diagnostic, got %v", messages(bag))
}

func TestDecorateGlobalClassTypeRejected(t *testing.T) {
	_, bag := decorate(t, `
		class Point {
			x: i32 = 0;
		}
		let p: Point = Point();
		fun main(): i32 { return 0; }
	`)
	require.NotEmpty(t, bag.Diagnostics)
	require.Contains(t, messages(bag)[0], "global variables of class type are not supported")
}

func TestDecorateIsolatedGlobalInitForbidsCalls(t *testing.T) {
	_, bag := decorate(t, `
		fun f(): i32 { return 1; }
		let x: i32 = f();
		fun main(): i32 { return 0; }
	`)
	require.NotEmpty(t, bag.Diagnostics)
	require.Contains(t, messages(bag)[0], "usage of function calls is not allowed here")
}
