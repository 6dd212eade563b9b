package ast

import (
	"bytes"

	"github.com/calclang/calc/internal/token"
)

// ListLit is a literal list `[e0, e1, ...]`.
type ListLit struct {
	Token token.Token
	Elems []Exp
}

func (n *ListLit) expNode()             {}
func (n *ListLit) TokenLiteral() string { return n.Token.Literal }
func (n *ListLit) String() string       { return "[" + joinExps(n.Elems, ", ") + "]" }

// MatrixLit builds a matrix from an expression that must evaluate to a
// list of equal-length numeric lists (its rows).
type MatrixLit struct {
	Token token.Token
	Rows  Exp
}

func (n *MatrixLit) expNode()             {}
func (n *MatrixLit) TokenLiteral() string { return n.Token.Literal }
func (n *MatrixLit) String() string       { return "matrix(" + n.Rows.String() + ")" }

// ListAccess indexes a list: `list[index]`.
type ListAccess struct {
	Token       token.Token
	List, Index Exp
}

func (n *ListAccess) expNode()             {}
func (n *ListAccess) TokenLiteral() string { return n.Token.Literal }
func (n *ListAccess) String() string {
	var out bytes.Buffer
	out.WriteString(n.List.String())
	out.WriteString("[")
	out.WriteString(n.Index.String())
	out.WriteString("]")
	return out.String()
}

// Magnitude is the absolute value `|e|`.
type Magnitude struct {
	Token token.Token
	Exp   Exp
}

func (n *Magnitude) expNode()             {}
func (n *Magnitude) TokenLiteral() string { return n.Token.Literal }
func (n *Magnitude) String() string       { return "|" + n.Exp.String() + "|" }

// Norm is the Euclidean norm of a list or matrix. Non-differentiable.
type Norm struct {
	Token token.Token
	Exp   Exp
}

func (n *Norm) expNode()             {}
func (n *Norm) TokenLiteral() string { return n.Token.Literal }
func (n *Norm) String() string       { return "norm(" + n.Exp.String() + ")" }
