package parser

import (
	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/token"
)

// parseLet parses `let [rec] id = defn (, [rec] id = defn)* in body`.
// The optional leading `rec` per binding sets ast.Let.Recs[i], consumed by
// the scope validator; the eval and differentiation Let rules rebind
// lambdas for mutual recursion regardless of Recs.
func (p *Parser) parseLet() ast.Exp {
	tok := p.curToken

	var ids []string
	var recs []bool
	var defns []ast.Exp

	id, rec, defn := p.parseLetBinding()
	if id == "" && defn == nil {
		return nil
	}
	ids = append(ids, id)
	recs = append(recs, rec)
	defns = append(defns, defn)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		id, rec, defn := p.parseLetBinding()
		if defn == nil {
			return nil
		}
		ids = append(ids, id)
		recs = append(recs, rec)
		defns = append(defns, defn)
	}

	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)

	return &ast.Let{Token: tok, Ids: ids, Recs: recs, Defns: defns, Body: body}
}

func (p *Parser) parseLetBinding() (id string, rec bool, defn ast.Exp) {
	if p.peekTokenIs(token.REC) {
		p.nextToken()
		rec = true
	}
	if !p.expectPeek(token.IDENT) {
		return "", false, nil
	}
	id = p.curToken.Literal

	if !p.expectPeek(token.EQ) {
		return "", false, nil
	}
	p.nextToken()
	defn = p.parseExpression(LOWEST)
	return id, rec, defn
}
