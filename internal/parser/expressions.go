package parser

import (
	"strconv"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/token"
)

func (p *Parser) parseIntLit() ast.Exp {
	tok := p.curToken
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errors = append(p.errors, &Error{Pos: tok.Pos, Message: "could not parse " + tok.Literal + " as integer"})
		return nil
	}
	return &ast.IntLit{Token: tok, Value: v}
}

func (p *Parser) parseRealLit() ast.Exp {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errors = append(p.errors, &Error{Pos: tok.Pos, Message: "could not parse " + tok.Literal + " as real"})
		return nil
	}
	return &ast.RealLit{Token: tok, Value: v}
}

func (p *Parser) parseTrueLit() ast.Exp  { return &ast.TrueLit{Token: p.curToken} }
func (p *Parser) parseFalseLit() ast.Exp { return &ast.FalseLit{Token: p.curToken} }
func (p *Parser) parseVoidLit() ast.Exp  { return &ast.VoidLit{Token: p.curToken} }

func (p *Parser) parseVar() ast.Exp {
	return &ast.Var{Token: p.curToken, Name: p.curToken.Literal}
}

// parsePrefixMinus desugars unary negation to 0 - e; calc's AST has no
// dedicated unary-minus node (spec.md §3 lists only the binary Diff).
func (p *Parser) parsePrefixMinus() ast.Exp {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.Diff{Token: tok, Left: &ast.IntLit{Token: tok, Value: 0}, Right: operand}
}

func (p *Parser) parsePrefixNot() ast.Exp {
	tok := p.curToken
	p.nextToken()
	return &ast.Not{Token: tok, Exp: p.parseExpression(PREFIX)}
}

func (p *Parser) parseGroupedExpr() ast.Exp {
	p.nextToken()
	e := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return e
}

func (p *Parser) parseListLit() ast.Exp {
	tok := p.curToken
	elems := p.parseExprList(token.RBRACK)
	return &ast.ListLit{Token: tok, Elems: elems}
}

func (p *Parser) parseSequence() ast.Exp {
	tok := p.curToken
	var exps []ast.Exp
	p.nextToken()
	exps = append(exps, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.SEMI) {
		p.nextToken()
		p.nextToken()
		exps = append(exps, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.Sequence{Token: tok, Exps: exps}
}

// parseMagnitude parses |e|, delimited by a second PIPE token.
func (p *Parser) parseMagnitude() ast.Exp {
	tok := p.curToken
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if !p.expectPeek(token.PIPE) {
		return nil
	}
	return &ast.Magnitude{Token: tok, Exp: inner}
}

func (p *Parser) parseBinary(left ast.Exp) ast.Exp {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)

	switch tok.Type {
	case token.PLUS:
		return &ast.Sum{Token: tok, Left: left, Right: right}
	case token.MINUS:
		return &ast.Diff{Token: tok, Left: left, Right: right}
	case token.ASTERISK:
		return &ast.Mult{Token: tok, Left: left, Right: right}
	case token.SLASH:
		return &ast.Div{Token: tok, Left: left, Right: right}
	}
	panic("unreachable binary operator " + tok.Type.String())
}

func (p *Parser) parseCompare(left ast.Exp) ast.Exp {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.Compare{Token: tok, Op: tok.Literal, Left: left, Right: right}
}

func (p *Parser) parseLogical(left ast.Exp) ast.Exp {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if tok.Type == token.AND {
		return &ast.And{Token: tok, Left: left, Right: right}
	}
	return &ast.Or{Token: tok, Left: left, Right: right}
}

func (p *Parser) parseHas(left ast.Exp) ast.Exp {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.Has{Token: tok, Item: left, Set: right}
}

// parseIsa parses `e isa TypeName`, where TypeName is a bare identifier,
// not a full type expression (spec.md §1: isa is out-of-scope, trivially
// non-differentiable — the parser only needs to recognize its shape).
func (p *Parser) parseIsa(left ast.Exp) ast.Exp {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.Isa{Token: tok, Exp: left, TypeName: p.curToken.Literal}
}

func (p *Parser) parseApply(left ast.Exp) ast.Exp {
	tok := p.curToken
	args := p.parseExprList(token.RPAREN)
	return &ast.Apply{Token: tok, Op: left, Args: args}
}

func (p *Parser) parseListAccess(left ast.Exp) ast.Exp {
	tok := p.curToken
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACK) {
		return nil
	}
	return &ast.ListAccess{Token: tok, List: left, Index: idx}
}

// parseSet parses one or more comma-chained `target := value` assignments,
// all sharing the single leading ASSIGN token's precedence so the whole
// chain binds as one ast.Set node (spec.md §3: Set carries parallel
// Targets/Values slices of equal length).
func (p *Parser) parseSet(left ast.Exp) ast.Exp {
	tok := p.curToken
	targets := []ast.Exp{left}
	var values []ast.Exp

	p.nextToken()
	values = append(values, p.parseExpression(ASSIGNP))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		target := p.parseExpression(CALL)
		if !p.expectPeek(token.ASSIGN) {
			return nil
		}
		p.nextToken()
		targets = append(targets, target)
		values = append(values, p.parseExpression(ASSIGNP))
	}

	return &ast.Set{Token: tok, Targets: targets, Values: values}
}
