// Package parser implements malin's hand-written recursive-descent parser
// with operator-precedence climbing for binary expressions. There is no
// error synchronisation: the first parse error aborts the file.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/ast"
	"github.com/mna/malinc/lang/diag"
	"github.com/mna/malinc/lang/lexer"
	"github.com/mna/malinc/lang/token"
)

// Parse tokenizes and parses the source text held by mgr, reporting errors
// into bag. It returns nil once bag gained any diagnostic, mirroring the
// "first parse error aborts the file" rule: there is no recovery.
//
// On success, every node's parent link has already been set (the
// post-parse pass described by the grammar), so callers can proceed
// straight to decoration.
func Parse(mgr *source.Manager, bag *diag.Bag) *ast.Root {
	toks := lexer.ScanAll(mgr, bag)
	if bag.HasErrors() {
		return nil
	}

	p := &parser{toks: toks, bag: bag}
	var root *ast.Root
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(parseAbort); !ok {
					panic(r)
				}
			}
		}()
		root = p.parseRoot(mgr.Path())
	}()
	if bag.HasErrors() {
		return nil
	}
	ast.SetParentAndSelf(root)
	return root
}

// parseAbort unwinds the recursive descent back to Parse once the first
// parse error has been recorded; there is no statement-level recovery.
type parseAbort struct{}

type parser struct {
	toks []token.Token
	pos  int
	bag  *diag.Bag

	// prevEnd is the end position of the most recently consumed token, used
	// to compute a node's range once all its children have been parsed.
	prevEnd source.Pos
}

func (p *parser) cur() token.Token { return p.toks[p.pos] }

func (p *parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *parser) advance() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.prevEnd = tok.Range.End
	return tok
}

// expect consumes the current token if it has kind k, otherwise it records
// a diagnostic and aborts the parse via panic(parseAbort{}).
func (p *parser) expect(k token.Kind) token.Token {
	if !p.at(k) {
		p.errorExpected(k)
	}
	return p.advance()
}

func (p *parser) errorExpected(want token.Kind) {
	tok := p.cur()
	p.bag.Add(tok.Range, "expected %s, found %s", want.GoString(), describeToken(tok))
	panic(parseAbort{})
}

func (p *parser) errorf(rng source.Range, format string, args ...any) {
	p.bag.Add(rng, format, args...)
	panic(parseAbort{})
}

func describeToken(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.IDENT, token.NUMBER, token.STRING:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	default:
		return tok.Kind.GoString()
	}
}

// spanFrom builds a range starting at start and ending at the end of the
// most recently consumed token.
func (p *parser) spanFrom(start source.Pos) source.Range {
	return source.Range{Start: start, End: p.prevEnd}
}

func (p *parser) parseRoot(name string) *ast.Root {
	root := &ast.Root{Name: name}
	start := p.cur().Range.Start

	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.CLASS:
			root.Classes = append(root.Classes, p.parseClassDecl())
		case token.LET:
			root.Globals = append(root.Globals, p.parseVariableDecl())
		case token.FUN:
			root.Funcs = append(root.Funcs, p.parseFunctionDecl(nil))
		default:
			p.bag.Add(p.cur().Range, "expected 'class', 'let' or 'fun', found %s", describeToken(p.cur()))
			panic(parseAbort{})
		}
	}
	p.expect(token.EOF)
	root.Rng = p.spanFrom(start)
	return root
}

func (p *parser) parseClassDecl() *ast.ClassDecl {
	start := p.expect(token.CLASS).Range.Start
	name := p.expect(token.IDENT).Text
	p.expect(token.LBRACE)

	decl := &ast.ClassDecl{Name: name}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.FUN) {
			decl.Methods = append(decl.Methods, p.parseFunctionDecl(decl))
			continue
		}
		decl.Members = append(decl.Members, p.parseClassMember())
	}
	p.expect(token.RBRACE)
	decl.Rng = p.spanFrom(start)
	return decl
}

// parseClassMember parses the variable-member form of ClassMember; the
// method form is dispatched separately in parseClassDecl since it starts
// with 'fun'.
func (p *parser) parseClassMember() *ast.VariableDecl {
	start := p.cur().Range.Start
	name := p.expect(token.IDENT).Text
	p.expect(token.COLON)
	tyName := p.expect(token.IDENT).Text

	var init ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		init = p.parseExpr()
	}
	p.expect(token.SEMI)
	return &ast.VariableDecl{Name: name, TyName: tyName, Init: init, Rng: p.spanFrom(start)}
}

func (p *parser) parseFunctionDecl(class *ast.ClassDecl) *ast.FunctionDecl {
	start := p.expect(token.FUN).Range.Start
	extern := false
	if p.at(token.EXTERN) {
		p.advance()
		extern = true
	}
	name := p.expect(token.IDENT).Text
	params := p.parseParamList()

	var retTy string
	if p.at(token.COLON) {
		p.advance()
		retTy = p.expect(token.IDENT).Text
	}

	var body *ast.Compound
	if extern {
		p.expect(token.SEMI)
	} else {
		body = p.parseCompound()
	}

	return &ast.FunctionDecl{
		Name: name, Extern: extern, Params: params, ReturnTyName: retTy,
		Body: body, Class: class, Rng: p.spanFrom(start),
	}
}

func (p *parser) parseParamList() []*ast.FunctionParamDecl {
	p.expect(token.LPAREN)
	var params []*ast.FunctionParamDecl
	if !p.at(token.RPAREN) {
		for {
			params = append(params, p.parseParam())
			if !p.at(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *parser) parseParam() *ast.FunctionParamDecl {
	start := p.cur().Range.Start
	name := p.expect(token.IDENT).Text
	p.expect(token.COLON)
	tyName := p.expect(token.IDENT).Text

	var def ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		def = p.parseExpr()
	}
	return &ast.FunctionParamDecl{Name: name, TyName: tyName, Default: def, Rng: p.spanFrom(start)}
}

func (p *parser) parseCompound() *ast.Compound {
	start := p.expect(token.LBRACE).Range.Start
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return &ast.Compound{Stmts: stmts, Rng: p.spanFrom(start)}
}

func (p *parser) parseStatement() ast.Stmt {
	switch p.cur().Kind {
	case token.LET:
		return p.parseVariableDecl()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.LBRACE:
		return p.parseCompound()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *parser) parseVariableDecl() *ast.VariableDecl {
	start := p.expect(token.LET).Range.Start
	name := p.expect(token.IDENT).Text

	var tyName string
	if p.at(token.COLON) {
		p.advance()
		tyName = p.expect(token.IDENT).Text
	}
	p.expect(token.ASSIGN)
	init := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.VariableDecl{Name: name, TyName: tyName, Init: init, Rng: p.spanFrom(start)}
}

func (p *parser) parseReturnStmt() *ast.Return {
	start := p.expect(token.RETURN).Range.Start
	var expr ast.Expr
	if !p.at(token.SEMI) {
		expr = p.parseExpr()
	}
	p.expect(token.SEMI)
	return &ast.Return{Expr: expr, Rng: p.spanFrom(start)}
}

func (p *parser) parseIfStmt() *ast.If {
	start := p.expect(token.IF).Range.Start
	cond := p.parseExpr()
	thenC := p.parseCompound()
	var elseC *ast.Compound
	if p.at(token.ELSE) {
		p.advance()
		elseC = p.parseCompound()
	}
	return &ast.If{Cond: cond, Then: thenC, Else: elseC, Rng: p.spanFrom(start)}
}

func (p *parser) parseWhileStmt() *ast.While {
	start := p.expect(token.WHILE).Range.Start
	cond := p.parseExpr()
	body := p.parseCompound()
	return &ast.While{Cond: cond, Body: body, Rng: p.spanFrom(start)}
}

// parseExprOrAssignStmt parses the grammar's "(Expr | Assign) ';'"
// alternative: an expression, optionally followed by '=' and a second
// expression, which the decorator later validates as an assignment to a
// mutable variable or member.
func (p *parser) parseExprOrAssignStmt() ast.Stmt {
	start := p.cur().Range.Start
	expr := p.parseExpr()
	if p.at(token.ASSIGN) {
		p.advance()
		val := p.parseExpr()
		p.expect(token.SEMI)
		return &ast.VariableAssign{Target: expr, Value: val, Rng: p.spanFrom(start)}
	}
	p.expect(token.SEMI)
	return &ast.ExprStmt{Expr: expr, Rng: p.spanFrom(start)}
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinOpExpr(0)
}

// precedence maps a binary-operator token to its climbing precedence; a
// token absent from the map is not a binary operator.
var precedence = map[token.Kind]int{
	token.OROR:   5,
	token.ANDAND: 10,
	token.EQ:     20,
	token.NEQ:    25,
	token.GT:     30,
	token.GE:     35,
	token.LT:     40,
	token.LE:     45,
	token.PLUS:   50,
	token.MINUS:  60,
	token.SLASH:  70,
	token.STAR:   80,
}

// parseBinOpExpr implements precedence climbing: it only consumes an
// operator whose precedence is >= minPrec, and recurses into the
// right-hand side with minPrec+1, giving left-associative grouping for
// operators of equal precedence.
func (p *parser) parseBinOpExpr(minPrec int) ast.Expr {
	start := p.cur().Range.Start
	lhs := p.parsePrimary()

	for {
		prec, ok := precedence[p.cur().Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		op := ast.BinaryOpFromToken(p.cur().Kind)
		p.advance()
		rhs := p.parseBinOpExpr(prec + 1)
		lhs = &ast.Binary{Op: op, LHS: lhs, RHS: rhs, Rng: p.spanFrom(start)}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		return numberLit(tok.Text, tok.Range, false)

	case token.MINUS:
		if p.peek(1).Kind == token.NUMBER {
			p.advance()
			numTok := p.advance()
			return numberLit(numTok.Text, source.Range{Start: tok.Range.Start, End: numTok.Range.End}, true)
		}
		p.bag.Add(tok.Range, "unexpected token %s", describeToken(tok))
		panic(parseAbort{})

	case token.STRING:
		p.advance()
		return &ast.StringLit{Value: unquote(tok.Text), Raw: tok.Text, Rng: tok.Range}

	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Rng: tok.Range}

	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Rng: tok.Range}

	case token.NOT:
		p.advance()
		inner := p.parsePrimary()
		return &ast.Unary{Op: ast.LogicNot, Inner: inner, Rng: p.spanFrom(tok.Range.Start)}

	case token.LPAREN:
		p.advance()
		if p.at(token.RPAREN) {
			p.bag.Add(p.cur().Range, "expected expression")
			panic(parseAbort{})
		}
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return inner

	case token.IDENT:
		return p.parseIdentExpr()

	default:
		p.bag.Add(tok.Range, "unexpected token %s", describeToken(tok))
		panic(parseAbort{})
	}
}

// parseIdentExpr parses the grammar's IdentExpr, building a left-associated
// chain of Variable/Call bases followed by any number of
// MemberVariable/MemberCall accesses: a.b.c(x) becomes
// MemberCall{Parent: MemberVariable{Parent: Variable("a"), "b"}, "c", [x]}.
func (p *parser) parseIdentExpr() ast.Expr {
	start := p.cur().Range.Start
	name := p.expect(token.IDENT).Text

	var expr ast.Expr
	if p.at(token.LPAREN) {
		expr = &ast.Call{Name: name, Args: p.parseArgs(), Rng: p.spanFrom(start)}
	} else {
		expr = &ast.Variable{Name: name, Rng: p.spanFrom(start)}
	}

	for p.at(token.DOT) {
		p.advance()
		memberName := p.expect(token.IDENT).Text
		if p.at(token.LPAREN) {
			expr = &ast.MemberCall{Parent: expr, Name: memberName, Args: p.parseArgs(), Rng: p.spanFrom(start)}
		} else {
			expr = &ast.MemberVariable{Parent: expr, Name: memberName, Rng: p.spanFrom(start)}
		}
	}
	return expr
}

// parseArgs parses Args: a parenthesized, comma-separated list of Named or
// Positional arguments. Once a named argument appears, a positional one may
// no longer follow.
func (p *parser) parseArgs() []*ast.CallArg {
	p.expect(token.LPAREN)

	var args []*ast.CallArg
	seenNamed := false
	if !p.at(token.RPAREN) {
		for {
			start := p.cur().Range.Start
			var name string
			if p.at(token.IDENT) && (p.peek(1).Kind == token.ASSIGN || p.peek(1).Kind == token.COLON) {
				name = p.advance().Text
				p.advance() // '=' or ':'
				seenNamed = true
			} else if seenNamed {
				p.bag.Add(p.cur().Range, "positional argument cannot follow a named argument")
				panic(parseAbort{})
			}
			expr := p.parseExpr()
			args = append(args, &ast.CallArg{Name: name, Expr: expr, Rng: p.spanFrom(start)})
			if !p.at(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return args
}

func numberLit(raw string, rng source.Range, negative bool) ast.Expr {
	if negative {
		raw = "-" + raw
	}
	if strings.Contains(raw, ".") {
		f, _ := strconv.ParseFloat(raw, 32)
		return &ast.FloatLit{Value: float32(f), Raw: raw, Rng: rng}
	}
	i, _ := strconv.ParseInt(raw, 10, 32)
	return &ast.IntLit{Value: int32(i), Raw: raw, Rng: rng}
}

// unquote strips the surrounding double quotes from a scanned string
// literal. malin string literals support no escape sequences.
func unquote(raw string) string {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		return raw[1 : len(raw)-1]
	}
	return raw
}
