// Package lexer tokenizes malin source text. It scans in a single pass
// with one rune of lookahead and performs no concurrent or buffered
// channel-based tokenization, unlike the teacher's scanner package, so that
// a compilation's token stream is fully deterministic and reproducible.
package lexer

import (
	"unicode/utf8"

	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/diag"
	"github.com/mna/malinc/lang/token"
)

// Lexer tokenizes the text held by a source.Manager, reporting lexical
// errors into a diag.Bag as it goes.
type Lexer struct {
	mgr  *source.Manager
	bag  *diag.Bag
	src  string
	cur  rune
	off  int // byte offset of cur
	roff int // byte offset right after cur
}

// New creates a Lexer over the text of mgr, reporting errors into bag.
func New(mgr *source.Manager, bag *diag.Bag) *Lexer {
	l := &Lexer{mgr: mgr, bag: bag, src: mgr.Text()}
	l.advance()
	return l
}

func (l *Lexer) peek() byte {
	if l.roff < len(l.src) {
		return l.src[l.roff]
	}
	return 0
}

func (l *Lexer) advance() {
	if l.roff >= len(l.src) {
		l.off = len(l.src)
		l.cur = -1
		return
	}
	l.off = l.roff
	r, w := rune(l.src[l.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRuneInString(l.src[l.roff:])
	}
	l.roff += w
	l.cur = r
}

func (l *Lexer) advanceIf(b byte) bool {
	if l.cur == rune(b) {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) rangeFrom(start int) source.Range {
	return source.Range{Start: l.mgr.PosAt(start), End: l.mgr.PosAt(l.off)}
}

// Scan returns the next Token in the source, ending with an endless stream
// of token.EOF once the input is exhausted.
func (l *Lexer) Scan() token.Token {
	l.skipWhitespace()
	start := l.off

	switch cur := l.cur; {
	case isLetter(cur):
		lit := l.ident()
		return token.Token{Kind: token.LookupIdent(lit), Text: lit, Range: l.rangeFrom(start)}

	case isDigit(cur) || (cur == '.' && isDigit(rune(l.peek()))):
		lit := l.number()
		return token.Token{Kind: token.NUMBER, Text: lit, Range: l.rangeFrom(start)}

	case cur == '"':
		lit := l.stringLit(start)
		return token.Token{Kind: token.STRING, Text: lit, Range: l.rangeFrom(start)}
	}

	cur := l.cur
	l.advance() // single-char tokens always make progress
	switch cur {
	case '+':
		return l.tok(token.PLUS, start)
	case '-':
		return l.tok(token.MINUS, start)
	case '*':
		return l.tok(token.STAR, start)
	case '/':
		if l.advanceIf('/') {
			return l.lineComment(start)
		}
		if l.advanceIf('*') {
			return l.blockComment(start)
		}
		return l.tok(token.SLASH, start)
	case '=':
		if l.advanceIf('=') {
			return l.tok(token.EQ, start)
		}
		return l.tok(token.ASSIGN, start)
	case '!':
		if l.advanceIf('=') {
			return l.tok(token.NEQ, start)
		}
		return l.tok(token.NOT, start)
	case '>':
		if l.advanceIf('=') {
			return l.tok(token.GE, start)
		}
		return l.tok(token.GT, start)
	case '<':
		if l.advanceIf('=') {
			return l.tok(token.LE, start)
		}
		return l.tok(token.LT, start)
	case '|':
		if l.advanceIf('|') {
			return l.tok(token.OROR, start)
		}
		return l.illegal(cur, start)
	case '&':
		if l.advanceIf('&') {
			return l.tok(token.ANDAND, start)
		}
		return l.illegal(cur, start)
	case ',':
		return l.tok(token.COMMA, start)
	case ';':
		return l.tok(token.SEMI, start)
	case ':':
		return l.tok(token.COLON, start)
	case '.':
		return l.tok(token.DOT, start)
	case '(':
		return l.tok(token.LPAREN, start)
	case ')':
		return l.tok(token.RPAREN, start)
	case '{':
		return l.tok(token.LBRACE, start)
	case '}':
		return l.tok(token.RBRACE, start)
	case -1:
		return token.Token{Kind: token.EOF, Range: l.rangeFrom(start)}
	default:
		return l.illegal(cur, start)
	}
}

func (l *Lexer) tok(k token.Kind, start int) token.Token {
	return token.Token{Kind: k, Text: l.src[start:l.off], Range: l.rangeFrom(start)}
}

func (l *Lexer) illegal(cur rune, start int) token.Token {
	rng := l.rangeFrom(start)
	l.bag.Add(rng, "unexpected character %q", cur)
	return token.Token{Kind: token.ILLEGAL, Text: string(cur), Range: rng}
}

func (l *Lexer) ident() string {
	start := l.off
	for isLetter(l.cur) || isDigit(l.cur) {
		l.advance()
	}
	return l.src[start:l.off]
}

func (l *Lexer) number() string {
	start := l.off
	for isDigit(l.cur) {
		l.advance()
	}
	if l.cur == '.' && isDigit(rune(l.peek())) {
		l.advance()
		for isDigit(l.cur) {
			l.advance()
		}
	}
	return l.src[start:l.off]
}

func (l *Lexer) stringLit(start int) string {
	l.advance() // opening quote
	for l.cur != '"' && l.cur != -1 {
		l.advance()
	}
	if l.cur == -1 {
		l.bag.Add(l.rangeFrom(start), "unterminated string literal")
		return l.src[start:l.off]
	}
	l.advance() // closing quote
	return l.src[start:l.off]
}

func (l *Lexer) lineComment(start int) token.Token {
	for l.cur != '\n' && l.cur != -1 {
		l.advance()
	}
	return l.tok(token.COMMENT, start)
}

func (l *Lexer) blockComment(start int) token.Token {
	for {
		if l.cur == -1 {
			l.bag.Add(l.rangeFrom(start), "unterminated block comment")
			break
		}
		if l.cur == '*' && l.peek() == '/' {
			l.advance()
			l.advance()
			break
		}
		l.advance()
	}
	return l.tok(token.COMMENT, start)
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.cur) {
		l.advance()
	}
}

func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// ScanAll tokenizes the full input, excluding comment tokens from the
// returned slice but still reporting any lexical errors into the bag, and
// always ends with a single token.EOF.
func ScanAll(mgr *source.Manager, bag *diag.Bag) []token.Token {
	l := New(mgr, bag)
	var toks []token.Token
	for {
		tok := l.Scan()
		if tok.Kind == token.COMMENT {
			continue
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}
