package ast

import (
	"bytes"
	"strings"

	"github.com/calclang/calc/internal/token"
)

// Lambda is an anonymous function `fun(p0, p1, ...) -> body`.
type Lambda struct {
	Token  token.Token
	Params []string
	Body   Exp
}

func (n *Lambda) expNode()             {}
func (n *Lambda) TokenLiteral() string { return n.Token.Literal }
func (n *Lambda) String() string {
	var out bytes.Buffer
	out.WriteString("fun(")
	out.WriteString(strings.Join(n.Params, ", "))
	out.WriteString(") -> ")
	out.WriteString(n.Body.String())
	return out.String()
}

// Apply calls Op with Args, e.g. `f(x, y)`.
type Apply struct {
	Token token.Token
	Op    Exp
	Args  []Exp
}

func (n *Apply) expNode()             {}
func (n *Apply) TokenLiteral() string { return n.Token.Literal }
func (n *Apply) String() string {
	return n.Op.String() + "(" + joinExps(n.Args, ", ") + ")"
}

// Map applies Func element-wise over List.
type Map struct {
	Token      token.Token
	Func, List Exp
}

func (n *Map) expNode()             {}
func (n *Map) TokenLiteral() string { return n.Token.Literal }
func (n *Map) String() string       { return "map(" + n.Func.String() + ", " + n.List.String() + ")" }

// Fold reduces List with Func, seeded with Base.
type Fold struct {
	Token            token.Token
	List, Func, Base Exp
}

func (n *Fold) expNode()             {}
func (n *Fold) TokenLiteral() string { return n.Token.Literal }
func (n *Fold) String() string {
	return "fold(" + n.List.String() + ", " + n.Func.String() + ", " + n.Base.String() + ")"
}

// Derivative explicitly requests d(Inner)/d(VarName); re-enters the engine
// when evaluated.
type Derivative struct {
	Token   token.Token
	Inner   Exp
	VarName string
}

func (n *Derivative) expNode()             {}
func (n *Derivative) TokenLiteral() string { return n.Token.Literal }
func (n *Derivative) String() string {
	return "deriv(" + n.Inner.String() + ", " + n.VarName + ")"
}
