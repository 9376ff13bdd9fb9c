package types_test

import (
	"testing"

	"github.com/mna/malinc/lang/types"
	"github.com/stretchr/testify/require"
)

func TestBuiltinEqual(t *testing.T) {
	require.True(t, types.I32.Equal(types.I32))
	require.False(t, types.I32.Equal(types.F32))
	require.False(t, types.I32.Equal(types.Invalid{}))
}

func TestBuiltinPredicates(t *testing.T) {
	require.True(t, types.I32.IsNumeric())
	require.True(t, types.F32.IsNumeric())
	require.False(t, types.Bool.IsNumeric())
	require.True(t, types.Bool.IsBoolean())
	require.True(t, types.Void.IsVoid())
}

func TestReferenceEqual(t *testing.T) {
	a := &types.Reference{Inner: types.I32}
	b := &types.Reference{Inner: types.I32}
	c := &types.Reference{Inner: types.F32}
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.Equal(t, "&i32", a.String())
}

type fakeClassDecl struct{ name string }

func (f fakeClassDecl) ClassName() string { return f.name }

func TestClassEqualByDecl(t *testing.T) {
	d1 := &fakeClassDecl{name: "Foo"}
	d2 := &fakeClassDecl{name: "Foo"}
	c1 := &types.Class{Decl: d1}
	c2 := &types.Class{Decl: d1}
	c3 := &types.Class{Decl: d2}
	require.True(t, c1.Equal(c2))
	require.False(t, c1.Equal(c3), "classes are identified by declaration, not name")
}
