// Package parser implements a Pratt parser for calc source, producing
// ast.Exp trees for the scope validator, evaluator, and differentiation
// engine to consume. It follows the teacher's precedence-table/prefix-
// and-infix-function-map convention (internal/parser/parser.go's
// prefixParseFns/infixParseFns and precedences table), scaled down to
// calc's single-expression grammar: there are no statements, declarations,
// or blocks distinct from expressions — every construct is itself an Exp.
package parser

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/lexer"
	"github.com/calclang/calc/internal/token"
)

// Precedence levels, lowest to highest, scaled down from the teacher's
// fourteen-tier table to the seven tiers spec.md's operator set needs.
const (
	_ int = iota
	LOWEST
	ASSIGNP     // :=
	OR          // or
	AND         // and
	EQUALS      // = <> has isa
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x, not x
	CALL        // f(args)
	INDEX       // list[index]
)

var precedences = map[token.Type]int{
	token.ASSIGN:   ASSIGNP,
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.HAS:      EQUALS,
	token.ISA:      EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LT_EQ:    LESSGREATER,
	token.GT_EQ:    LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACK:   INDEX,
}

type (
	prefixParseFn func() ast.Exp
	infixParseFn  func(ast.Exp) ast.Exp
)

// Error is a single parse failure, position-anchored for diag.CompilerError.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s (at %s)", e.Message, e.Pos) }

// Parser turns a token stream into a single ast.Exp.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*Error

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.INT:    p.parseIntLit,
		token.REAL:   p.parseRealLit,
		token.TRUE:   p.parseTrueLit,
		token.FALSE:  p.parseFalseLit,
		token.VOID:   p.parseVoidLit,
		token.IDENT:  p.parseVar,
		token.MINUS:  p.parsePrefixMinus,
		token.NOT:    p.parsePrefixNot,
		token.LPAREN: p.parseGroupedExpr,
		token.LBRACK: p.parseListLit,
		token.LBRACE: p.parseSequence,
		token.PIPE:   p.parseMagnitude,
		token.IF:     p.parseIf,
		token.WHILE:  p.parseWhile,
		token.DO:     p.parseDoWhile,
		token.FOR:    p.parseFor,
		token.LET:    p.parseLet,
		token.FUN:    p.parseLambda,
		token.MAP:    p.parseMap,
		token.FOLD:   p.parseFold,
		token.DERIV:  p.parseDerivative,
		token.NORM:   p.parseNorm,
		token.MATRIX: p.parseMatrixLit,
		token.THUNK:  p.parseThunk,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseBinary,
		token.MINUS:    p.parseBinary,
		token.ASTERISK: p.parseBinary,
		token.SLASH:    p.parseBinary,
		token.EQ:       p.parseCompare,
		token.NOT_EQ:   p.parseCompare,
		token.LT:       p.parseCompare,
		token.GT:       p.parseCompare,
		token.LT_EQ:    p.parseCompare,
		token.GT_EQ:    p.parseCompare,
		token.AND:      p.parseLogical,
		token.OR:       p.parseLogical,
		token.HAS:      p.parseHas,
		token.ISA:      p.parseIsa,
		token.LPAREN:   p.parseApply,
		token.LBRACK:   p.parseListAccess,
		token.ASSIGN:   p.parseSet,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every error accumulated while parsing.
func (p *Parser) Errors() []*Error { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errors = append(p.errors, &Error{
		Pos:     p.peekToken.Pos,
		Message: fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type),
	})
}

func (p *Parser) noPrefixParseFnError(t token.Type) {
	p.errors = append(p.errors, &Error{
		Pos:     p.curToken.Pos,
		Message: fmt.Sprintf("no prefix parse function for %s found", t),
	})
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses a single top-level expression followed by EOF.
func ParseProgram(l *lexer.Lexer) (ast.Exp, []*Error) {
	p := New(l)
	e := p.parseExpression(LOWEST)
	if !p.curTokenIs(token.EOF) && !p.peekTokenIs(token.EOF) {
		p.errors = append(p.errors, &Error{Pos: p.peekToken.Pos, Message: "unexpected trailing input after expression"})
	}
	return e, p.errors
}

func (p *Parser) parseExpression(precedence int) ast.Exp {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseExprList(end token.Type) []ast.Exp {
	var list []ast.Exp
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}
