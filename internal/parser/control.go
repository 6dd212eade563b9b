package parser

import (
	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/token"
)

// parseIf parses `if cond then t else f`. calc has no statement-level
// if-without-else: every If is an expression and must name both branches.
func (p *Parser) parseIf() ast.Exp {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)

	if !p.expectPeek(token.THEN) {
		return nil
	}
	p.nextToken()
	thenExp := p.parseExpression(LOWEST)

	if !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	elseExp := p.parseExpression(LOWEST)

	return &ast.If{Token: tok, Cond: cond, Then: thenExp, Else: elseExp}
}

// parseWhile parses `while cond do body` (AlwaysEnter = false).
func (p *Parser) parseWhile() ast.Exp {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)

	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)

	return &ast.While{Token: tok, Cond: cond, Body: body, AlwaysEnter: false}
}

// parseDoWhile parses `do body while cond` (AlwaysEnter = true).
func (p *Parser) parseDoWhile() ast.Exp {
	tok := p.curToken
	p.nextToken()
	body := p.parseExpression(LOWEST)

	if !p.expectPeek(token.WHILE) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)

	return &ast.While{Token: tok, Cond: cond, Body: body, AlwaysEnter: true}
}

// parseFor parses `for id in set do body`.
func (p *Parser) parseFor() ast.Exp {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	id := p.curToken.Literal

	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	set := p.parseExpression(LOWEST)

	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)

	return &ast.For{Token: tok, Id: id, Set: set, Body: body}
}
