package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		require.NotEmpty(t, k.String())
	}
}

func TestKindGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
	require.Equal(t, "while", WHILE.GoString())
}

func TestKindIsKeyword(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		expect := k >= LET && k < maxKind
		require.Equal(t, expect, k.IsKeyword())
	}
}

func TestLookupIdent(t *testing.T) {
	require.Equal(t, WHILE, LookupIdent("while"))
	require.Equal(t, CLASS, LookupIdent("class"))
	require.Equal(t, IDENT, LookupIdent("whileLoop"))
	require.Equal(t, IDENT, LookupIdent("x"))
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: IDENT, Text: "x"}
	require.Equal(t, "identifier x", tok.String())

	long := Token{Kind: STRING, Text: "0123456789012345678901234"}
	require.Equal(t, "string literal 01234567890123456...", long.String())
}
