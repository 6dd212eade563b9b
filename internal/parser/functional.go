package parser

import (
	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/token"
)

// parseLambda parses `fun(p0, p1, ...) -> body`.
func (p *Parser) parseLambda() ast.Exp {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	var params []string
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		params = append(params, p.curToken.Literal)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			params = append(params, p.curToken.Literal)
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)

	return &ast.Lambda{Token: tok, Params: params, Body: body}
}

// parseMap parses `map(func, list)`.
func (p *Parser) parseMap() ast.Exp {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	fn := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	p.nextToken()
	list := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.Map{Token: tok, Func: fn, List: list}
}

// parseFold parses `fold(list, func, base)`.
func (p *Parser) parseFold() ast.Exp {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	list := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	p.nextToken()
	fn := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	p.nextToken()
	base := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.Fold{Token: tok, List: list, Func: fn, Base: base}
}

// parseDerivative parses `deriv(inner, varName)`; varName is a bare
// identifier, not an arbitrary expression (spec.md §3: Derivative(inner,
// varName)).
func (p *Parser) parseDerivative() ast.Exp {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	varName := p.curToken.Literal
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.Derivative{Token: tok, Inner: inner, VarName: varName}
}

// parseNorm parses `norm(e)`.
func (p *Parser) parseNorm() ast.Exp {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.Norm{Token: tok, Exp: inner}
}

// parseMatrixLit parses `matrix(rowsExpr)`, where rowsExpr must evaluate
// to a list of equal-length numeric lists (spec.md §4.1 Matrix).
func (p *Parser) parseMatrixLit() ast.Exp {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	rows := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.MatrixLit{Token: tok, Rows: rows}
}

// parseThunk parses `thunk(e)`.
func (p *Parser) parseThunk() ast.Exp {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.Thunk{Token: tok, Exp: inner}
}
