// Package token defines the closed set of lexical token kinds malin source
// is scanned into, modeled on the teacher's lang/token package but carrying
// a full line:column:byte source.Range instead of a packed line/column Pos.
package token

import "github.com/mna/malinc/internal/source"

// Kind identifies the lexical category of a Token.
type Kind int8

//nolint:revive
const (
	ILLEGAL Kind = iota
	EOF

	// Tokens with values
	IDENT   // x
	NUMBER  // 123 or 1.5
	STRING  // "foo"
	COMMENT // // foo or /* foo */

	// Punctuation
	SEMI   // ;
	COLON  // :
	COMMA  // ,
	DOT    // .
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }

	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /

	ASSIGN // =
	EQ     // ==
	NEQ    // !=
	GT     // >
	GE     // >=
	LT     // <
	LE     // <=
	OROR   // ||
	ANDAND // &&
	NOT    // !

	// Keywords, kept in the range [LET, maxKind) so Kind.IsKeyword can test
	// with a single range comparison.
	LET
	FUN
	EXTERN
	RETURN
	IF
	ELSE
	WHILE
	TRUE
	FALSE
	CLASS

	maxKind
)

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "<invalid token kind>"
	}
	return kindNames[k]
}

// GoString is like String but quotes punctuation kinds. Use Sprintf("%#v",
// k) when constructing diagnostic messages.
func (k Kind) GoString() string {
	if k >= SEMI && k <= NOT {
		return "'" + kindNames[k] + "'"
	}
	return kindNames[k]
}

// IsKeyword reports whether k is one of malin's reserved words.
func (k Kind) IsKeyword() bool { return k >= LET && k < maxKind }

var kindNames = [...]string{
	ILLEGAL: "illegal token",
	EOF:     "end of file",
	IDENT:   "identifier",
	NUMBER:  "number literal",
	STRING:  "string literal",
	COMMENT: "comment",
	SEMI:    ";",
	COLON:   ":",
	COMMA:   ",",
	DOT:     ".",
	LPAREN:  "(",
	RPAREN:  ")",
	LBRACE:  "{",
	RBRACE:  "}",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	ASSIGN:  "=",
	EQ:      "==",
	NEQ:     "!=",
	GT:      ">",
	GE:      ">=",
	LT:      "<",
	LE:      "<=",
	OROR:    "||",
	ANDAND:  "&&",
	NOT:     "!",
	LET:     "let",
	FUN:     "fun",
	EXTERN:  "extern",
	RETURN:  "return",
	IF:      "if",
	ELSE:    "else",
	WHILE:   "while",
	TRUE:    "true",
	FALSE:   "false",
	CLASS:   "class",
}

var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, int(maxKind-LET))
	for k := LET; k < maxKind; k++ {
		keywords[kindNames[k]] = k
	}
}

// LookupIdent returns the keyword Kind for lit, or IDENT if lit is not a
// reserved word.
func LookupIdent(lit string) Kind {
	if k, ok := keywords[lit]; ok {
		return k
	}
	return IDENT
}

// Token is a single lexeme: its kind, the exact matched text and the
// source range it occupies.
type Token struct {
	Kind  Kind
	Text  string
	Range source.Range
}

func (t Token) String() string {
	if len(t.Text) > 20 {
		return t.Kind.String() + " " + t.Text[:17] + "..."
	}
	return t.Kind.String() + " " + t.Text
}
