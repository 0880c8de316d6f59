package syntax

import (
	"fmt"
	"strconv"

	"dwislpy/ast"
	"dwislpy/common"
	"dwislpy/diag"
)

// Parser is a recursive-descent parser over a Scanner's indentation-aware
// token stream, producing an ast.Program. It reports the first syntax error
// it finds through ctx and nothing after it -- unlike the checker, a broken
// token stream gives the rest of the parse nothing reliable to recover on.
type Parser struct {
	sc    *Scanner
	fpath string
	ctx   *diag.Context

	cur *Token
	nxt *Token

	failed bool
}

// NewParser wraps sc in a parser that reports syntax errors against fpath
// through ctx.
func NewParser(sc *Scanner, fpath string, ctx *diag.Context) *Parser {
	p := &Parser{sc: sc, fpath: fpath, ctx: ctx}
	p.cur = p.readToken()
	p.nxt = p.readToken()
	return p
}

func (p *Parser) readToken() *Token {
	tok, ok := p.sc.ReadToken()
	if !ok {
		p.failed = true
		return &Token{Kind: EOF}
	}
	return tok
}

func (p *Parser) advance() {
	p.cur = p.nxt
	p.nxt = p.readToken()
}

func (p *Parser) locn() common.Locn {
	return common.Locn{Source: p.fpath, Line: p.cur.Line, Col: p.cur.Col}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	if !p.failed {
		p.ctx.Error(p.locn(), fmt.Sprintf(format, args...))
	}
	p.failed = true
}

// expect consumes cur if it has the given kind, else reports a syntax
// error naming what was expected. A DEDENT that closes several levels at
// once is consumed one level per call.
func (p *Parser) expect(kind int) *Token {
	if p.cur.Kind != kind {
		p.errorf("expected %s but found %s", kindNames[kind], describe(p.cur))
		return p.cur
	}
	if kind == DEDENT {
		if n, err := strconv.Atoi(p.cur.Value); err == nil && n > 1 {
			p.cur.Value = strconv.Itoa(n - 1)
			return p.cur
		}
	}
	tok := p.cur
	p.advance()
	return tok
}

func describe(t *Token) string {
	if name, ok := kindNames[t.Kind]; ok {
		return name
	}
	return "an unrecognized token"
}

// Ok reports whether parsing completed without any reported syntax error.
func (p *Parser) Ok() bool {
	return !p.failed
}

// ParseProgram parses an entire source file: zero or more definitions
// followed by the main block, both at top-level indentation.
func (p *Parser) ParseProgram() *ast.Program {
	var defs ast.Defs
	for p.cur.Kind == DEF {
		defs = append(defs, p.parseDef())
	}
	main := p.parseBlockUntil(EOF)
	p.expect(EOF)
	return &ast.Program{Defs: defs, Main: main}
}

func (p *Parser) parseDef() *ast.Def {
	l := p.locn()
	p.expect(DEF)
	name := p.expect(IDENTIFIER).Value
	p.expect(LPAREN)

	var formals []ast.Formal
	if p.cur.Kind != RPAREN {
		formals = append(formals, p.parseFormal())
		for p.cur.Kind == COMMA {
			p.advance()
			formals = append(formals, p.parseFormal())
		}
	}
	p.expect(RPAREN)
	p.expect(ARROW)
	retType := p.parseType()
	p.expect(COLON)
	p.expect(NEWLINE)
	p.expect(INDENT)
	body := p.parseBlockUntil(DEDENT)
	p.expect(DEDENT)

	return &ast.Def{L: l, Name: name, Formals: formals, RetType: retType, Body: body}
}

func (p *Parser) parseFormal() ast.Formal {
	name := p.expect(IDENTIFIER).Value
	p.expect(COLON)
	typ := p.parseType()
	return ast.Formal{Name: name, Type: typ}
}

func (p *Parser) parseType() common.Type {
	switch p.cur.Kind {
	case INTTY:
		p.advance()
		return common.IntTy
	case STRTY:
		p.advance()
		return common.StrTy
	case BOOLTY:
		p.advance()
		return common.BoolTy
	case NONE:
		p.advance()
		return common.NoneTy
	}
	p.errorf("expected a type but found %s", describe(p.cur))
	return common.IntTy
}

// parseBlockUntil parses statements until cur's kind is stop (DEDENT or
// EOF), which it leaves unconsumed.
func (p *Parser) parseBlockUntil(stop int) ast.Block {
	var b ast.Block
	for p.cur.Kind != stop && p.cur.Kind != EOF {
		b = append(b, p.parseStmt())
	}
	return b
}

func (p *Parser) parseStmt() ast.Stmt {
	l := p.locn()
	switch p.cur.Kind {
	case PRINT:
		p.advance()
		p.expect(LPAREN)
		args := p.parseArgs()
		p.expect(RPAREN)
		p.expect(NEWLINE)
		return ast.NewPrintStmt(l, args)

	case PASS:
		p.advance()
		p.expect(NEWLINE)
		return ast.NewPassStmt(l)

	case WHILE:
		p.advance()
		cond := p.parseExpr()
		p.expect(COLON)
		p.expect(NEWLINE)
		p.expect(INDENT)
		body := p.parseBlockUntil(DEDENT)
		p.expect(DEDENT)
		return ast.NewWhileStmt(l, cond, body)

	case IF:
		p.advance()
		cond := p.parseExpr()
		p.expect(COLON)
		p.expect(NEWLINE)
		p.expect(INDENT)
		then := p.parseBlockUntil(DEDENT)
		p.expect(DEDENT)
		p.expect(ELSE)
		p.expect(COLON)
		p.expect(NEWLINE)
		p.expect(INDENT)
		els := p.parseBlockUntil(DEDENT)
		p.expect(DEDENT)
		return ast.NewIfStmt(l, cond, then, els)

	case RETURN:
		p.advance()
		if p.cur.Kind == NEWLINE {
			p.advance()
			return ast.NewReturnStmt(l, nil)
		}
		e := p.parseExpr()
		p.expect(NEWLINE)
		return ast.NewReturnStmt(l, e)

	case IDENTIFIER:
		return p.parseIdentifierStmt(l)
	}

	p.errorf("expected a statement but found %s", describe(p.cur))
	p.advance()
	return ast.NewPassStmt(l)
}

// parseIdentifierStmt disambiguates the five statement forms that start
// with a bare name using one token of lookahead.
func (p *Parser) parseIdentifierStmt(l common.Locn) ast.Stmt {
	name := p.cur.Value
	p.advance()

	switch p.cur.Kind {
	case COLON:
		p.advance()
		typ := p.parseType()
		p.expect(ASSIGN)
		e := p.parseExpr()
		p.expect(NEWLINE)
		return ast.NewIntroStmt(l, name, typ, e)

	case ASSIGN:
		p.advance()
		e := p.parseExpr()
		p.expect(NEWLINE)
		return ast.NewAssignStmt(l, name, e)

	case PLUSEQ:
		p.advance()
		e := p.parseExpr()
		p.expect(NEWLINE)
		return ast.NewCompoundStmt(l, name, ast.PlusEq, e)

	case MINUSEQ:
		p.advance()
		e := p.parseExpr()
		p.expect(NEWLINE)
		return ast.NewCompoundStmt(l, name, ast.MinusEq, e)

	case STAREQ:
		p.advance()
		e := p.parseExpr()
		p.expect(NEWLINE)
		return ast.NewCompoundStmt(l, name, ast.StarEq, e)

	case LPAREN:
		p.advance()
		args := p.parseArgs()
		p.expect(RPAREN)
		p.expect(NEWLINE)
		return ast.NewCallStmt(l, name, args)
	}

	p.errorf("expected ':', '=', '+=', '-=', '*=', or '(' after '%s' but found %s", name, describe(p.cur))
	return ast.NewPassStmt(l)
}

func (p *Parser) parseArgs() []ast.Expn {
	var args []ast.Expn
	if p.cur.Kind == RPAREN {
		return args
	}
	args = append(args, p.parseExpr())
	for p.cur.Kind == COMMA {
		p.advance()
		args = append(args, p.parseExpr())
	}
	return args
}

// Expression grammar, tightest binding last:
//
//	expr    := orExpr
//	orExpr  := andExpr ('or' andExpr)*
//	andExpr := notExpr ('and' notExpr)*
//	notExpr := 'not' notExpr | cmprExpr
//	cmprExpr:= arithExpr (('<' | '<=' | '==') arithExpr)?
//	arithExpr := term (('+' | '-') term)*
//	term    := factor (('*' | '//' | '%') factor)*
//	factor  := '-' factor | atom

func (p *Parser) parseExpr() ast.Expn {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expn {
	left := p.parseAnd()
	for p.cur.Kind == OR {
		l := p.locn()
		p.advance()
		right := p.parseAnd()
		left = ast.NewLogExpn(l, ast.Or, left, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expn {
	left := p.parseNot()
	for p.cur.Kind == AND {
		l := p.locn()
		p.advance()
		right := p.parseNot()
		left = ast.NewLogExpn(l, ast.And, left, right)
	}
	return left
}

func (p *Parser) parseNot() ast.Expn {
	if p.cur.Kind == NOT {
		l := p.locn()
		p.advance()
		return ast.NewNotExpn(l, p.parseNot())
	}
	return p.parseCmpr()
}

func (p *Parser) parseCmpr() ast.Expn {
	left := p.parseArith()
	var op ast.CmprOp
	switch p.cur.Kind {
	case LT:
		op = ast.Lt
	case LTEQ:
		op = ast.Le
	case EQ:
		op = ast.EqOp
	default:
		return left
	}
	l := p.locn()
	p.advance()
	right := p.parseArith()
	return ast.NewCmprExpn(l, op, left, right)
}

func (p *Parser) parseArith() ast.Expn {
	left := p.parseTerm()
	for p.cur.Kind == PLUS || p.cur.Kind == MINUS {
		l := p.locn()
		op := ast.Add
		if p.cur.Kind == MINUS {
			op = ast.Sub
		}
		p.advance()
		right := p.parseTerm()
		left = ast.NewArithExpn(l, op, left, right)
	}
	return left
}

func (p *Parser) parseTerm() ast.Expn {
	left := p.parseFactor()
	for p.cur.Kind == STAR || p.cur.Kind == FDIVIDE || p.cur.Kind == MOD {
		l := p.locn()
		var op ast.ArithOp
		switch p.cur.Kind {
		case STAR:
			op = ast.Mul
		case FDIVIDE:
			op = ast.FDiv
		case MOD:
			op = ast.Mod
		}
		p.advance()
		right := p.parseFactor()
		left = ast.NewArithExpn(l, op, left, right)
	}
	return left
}

func (p *Parser) parseFactor() ast.Expn {
	if p.cur.Kind == MINUS {
		l := p.locn()
		p.advance()
		return ast.NewNegExpn(l, p.parseFactor())
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() ast.Expn {
	l := p.locn()
	switch p.cur.Kind {
	case INTLIT:
		v := p.cur.Value
		p.advance()
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.errorf("integer literal %q is out of range", v)
		}
		return ast.NewLitExpn(l, common.IntVal(i))

	case STRINGLIT:
		v := common.DeEscape(p.cur.Value)
		p.advance()
		return ast.NewLitExpn(l, common.StrVal(v))

	case TRUE:
		p.advance()
		return ast.NewLitExpn(l, common.BoolVal(true))

	case FALSE:
		p.advance()
		return ast.NewLitExpn(l, common.BoolVal(false))

	case NONE:
		p.advance()
		return ast.NewLitExpn(l, common.NoneVal())

	case INTTY:
		p.advance()
		p.expect(LPAREN)
		e := p.parseExpr()
		p.expect(RPAREN)
		return ast.NewIntConvExpn(l, e)

	case STRTY:
		p.advance()
		p.expect(LPAREN)
		e := p.parseExpr()
		p.expect(RPAREN)
		return ast.NewStrConvExpn(l, e)

	case LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(RPAREN)
		return e

	case IDENTIFIER:
		name := p.cur.Value
		p.advance()
		if p.cur.Kind != LPAREN {
			return ast.NewVarExpn(l, name)
		}
		p.advance()
		args := p.parseArgs()
		p.expect(RPAREN)
		if name == "input" {
			if len(args) != 1 {
				p.errorf("input(...) takes exactly one argument")
				return ast.NewInputExpn(l, ast.NewLitExpn(l, common.StrVal("")))
			}
			return ast.NewInputExpn(l, args[0])
		}
		return ast.NewCallExpn(l, name, args)
	}

	p.errorf("expected an expression but found %s", describe(p.cur))
	p.advance()
	return ast.NewLitExpn(l, common.NoneVal())
}
