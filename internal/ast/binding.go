package ast

import (
	"bytes"

	"github.com/calclang/calc/internal/token"
)

// Let binds Ids[i] = Defns[i] (in order, each optionally recursive per
// Recs[i]) around Body. All three id-indexed slices have equal length.
type Let struct {
	Token token.Token
	Ids   []string
	Recs  []bool
	Defns []Exp
	Body  Exp
}

func (n *Let) expNode()             {}
func (n *Let) TokenLiteral() string { return n.Token.Literal }
func (n *Let) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	for i, id := range n.Ids {
		if i > 0 {
			out.WriteString(", ")
		}
		if n.Recs[i] {
			out.WriteString("rec ")
		}
		out.WriteString(id)
		out.WriteString(" = ")
		out.WriteString(n.Defns[i].String())
	}
	out.WriteString(" in ")
	out.WriteString(n.Body.String())
	return out.String()
}

// Set mutates Targets[i] := Values[i] in order, both slices equal length.
type Set struct {
	Token   token.Token
	Targets []Exp
	Values  []Exp
}

func (n *Set) expNode()             {}
func (n *Set) TokenLiteral() string { return n.Token.Literal }
func (n *Set) String() string {
	var out bytes.Buffer
	for i := range n.Targets {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(n.Targets[i].String())
		out.WriteString(" := ")
		out.WriteString(n.Values[i].String())
	}
	return out.String()
}
