package lexer_test

import (
	"testing"

	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/diag"
	"github.com/mna/malinc/lang/lexer"
	"github.com/mna/malinc/lang/token"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	mgr := source.NewManagerFromSource("test.malin", src)
	bag := diag.NewBag(mgr.Path())
	return lexer.ScanAll(mgr, bag), bag
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks, bag := scan(t, "let x = fun while true false")
	require.Empty(t, bag.Diagnostics)
	require.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.FUN, token.WHILE, token.TRUE, token.FALSE, token.EOF,
	}, kinds(toks))
	require.Equal(t, "x", toks[1].Text)
}

func TestScanNumbers(t *testing.T) {
	toks, bag := scan(t, "123 1.5 .5")
	require.Empty(t, bag.Diagnostics)
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
	require.Equal(t, "123", toks[0].Text)
	require.Equal(t, "1.5", toks[1].Text)
	require.Equal(t, ".5", toks[2].Text)
}

func TestScanOperators(t *testing.T) {
	toks, bag := scan(t, "== != >= <= > < || && = + - * /")
	require.Empty(t, bag.Diagnostics)
	require.Equal(t, []token.Kind{
		token.EQ, token.NEQ, token.GE, token.LE, token.GT, token.LT, token.OROR, token.ANDAND,
		token.ASSIGN, token.PLUS, token.MINUS, token.STAR, token.SLASH, token.EOF,
	}, kinds(toks))
}

func TestScanString(t *testing.T) {
	toks, bag := scan(t, `"hello world"`)
	require.Empty(t, bag.Diagnostics)
	require.Equal(t, []token.Kind{token.STRING, token.EOF}, kinds(toks))
	require.Equal(t, `"hello world"`, toks[0].Text)
}

func TestScanUnterminatedString(t *testing.T) {
	toks, bag := scan(t, `"hello`)
	require.Len(t, bag.Diagnostics, 1)
	require.Contains(t, bag.Diagnostics[0].Message, "unterminated string")
	require.Equal(t, token.STRING, toks[0].Kind)
}

func TestScanComments(t *testing.T) {
	toks, bag := scan(t, "let // a line comment\nx /* a\nblock comment */ = 1")
	require.Empty(t, bag.Diagnostics)
	require.Equal(t, []token.Kind{token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.EOF}, kinds(toks))
}

func TestScanUnterminatedBlockComment(t *testing.T) {
	_, bag := scan(t, "/* never closed")
	require.Len(t, bag.Diagnostics, 1)
	require.Contains(t, bag.Diagnostics[0].Message, "unterminated block comment")
}

func TestScanIllegalCharacter(t *testing.T) {
	toks, bag := scan(t, "let x = @")
	require.Len(t, bag.Diagnostics, 1)
	require.Contains(t, bag.Diagnostics[0].Message, "unexpected character")
	require.Equal(t, token.ILLEGAL, toks[len(toks)-2].Kind)
}

func TestScanPositions(t *testing.T) {
	toks, bag := scan(t, "let\nx")
	require.Empty(t, bag.Diagnostics)
	require.Equal(t, 1, toks[0].Range.Start.Line)
	require.Equal(t, 1, toks[0].Range.Start.Col)
	require.Equal(t, 2, toks[1].Range.Start.Line)
	require.Equal(t, 1, toks[1].Range.Start.Col)
}
