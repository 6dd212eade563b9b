// Package ast defines the Exp node types of the calc expression language.
// Node shapes and String() rendering follow the teacher interpreter's
// ast.Expression convention, scaled down to this language's 33 kinds.
package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/calclang/calc/internal/token"
)

// Exp is the interface every expression node implements. There are no
// separate Statement nodes in calc — everything is an expression.
type Exp interface {
	TokenLiteral() string
	String() string
	expNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Token token.Token
	Value int64
}

func (n *IntLit) expNode()              {}
func (n *IntLit) TokenLiteral() string  { return n.Token.Literal }
func (n *IntLit) String() string        { return strconv.FormatInt(n.Value, 10) }

// RealLit is a floating-point literal.
type RealLit struct {
	Token token.Token
	Value float64
}

func (n *RealLit) expNode()             {}
func (n *RealLit) TokenLiteral() string { return n.Token.Literal }
func (n *RealLit) String() string       { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// TrueLit / FalseLit are the boolean literals, kept distinct (rather than a
// single BoolLit{Value bool}) because spec.md's node list names them
// separately and the differentiation engine dispatches on kind, not value.
type TrueLit struct{ Token token.Token }

func (n *TrueLit) expNode()             {}
func (n *TrueLit) TokenLiteral() string { return n.Token.Literal }
func (n *TrueLit) String() string       { return "true" }

type FalseLit struct{ Token token.Token }

func (n *FalseLit) expNode()             {}
func (n *FalseLit) TokenLiteral() string { return n.Token.Literal }
func (n *FalseLit) String() string       { return "false" }

// VoidLit is the unit value literal.
type VoidLit struct{ Token token.Token }

func (n *VoidLit) expNode()             {}
func (n *VoidLit) TokenLiteral() string { return n.Token.Literal }
func (n *VoidLit) String() string       { return "void" }

// Var references a bound name.
type Var struct {
	Token token.Token
	Name  string
}

func (n *Var) expNode()             {}
func (n *Var) TokenLiteral() string { return n.Token.Literal }
func (n *Var) String() string       { return n.Name }

// binary renders two children wrapped around an infix operator, shared by
// every arithmetic/comparison/boolean binary node below.
func binary(op string, l, r Exp) string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(l.String())
	out.WriteString(" " + op + " ")
	out.WriteString(r.String())
	out.WriteString(")")
	return out.String()
}

// Sum is l + r.
type Sum struct {
	Token       token.Token
	Left, Right Exp
}

func (n *Sum) expNode()             {}
func (n *Sum) TokenLiteral() string { return n.Token.Literal }
func (n *Sum) String() string       { return binary("+", n.Left, n.Right) }

// Diff is l - r.
type Diff struct {
	Token       token.Token
	Left, Right Exp
}

func (n *Diff) expNode()             {}
func (n *Diff) TokenLiteral() string { return n.Token.Literal }
func (n *Diff) String() string       { return binary("-", n.Left, n.Right) }

// Mult is l * r.
type Mult struct {
	Token       token.Token
	Left, Right Exp
}

func (n *Mult) expNode()             {}
func (n *Mult) TokenLiteral() string { return n.Token.Literal }
func (n *Mult) String() string       { return binary("*", n.Left, n.Right) }

// Div is l / r.
type Div struct {
	Token       token.Token
	Left, Right Exp
}

func (n *Div) expNode()             {}
func (n *Div) TokenLiteral() string { return n.Token.Literal }
func (n *Div) String() string       { return binary("/", n.Left, n.Right) }

// Compare is a relational comparison; Op is one of "=", "<>", "<", ">", "<=", ">=".
type Compare struct {
	Token       token.Token
	Op          string
	Left, Right Exp
}

func (n *Compare) expNode()             {}
func (n *Compare) TokenLiteral() string { return n.Token.Literal }
func (n *Compare) String() string       { return binary(n.Op, n.Left, n.Right) }

// And / Or are short-circuiting boolean connectives. Non-differentiable.
type And struct {
	Token       token.Token
	Left, Right Exp
}

func (n *And) expNode()             {}
func (n *And) TokenLiteral() string { return n.Token.Literal }
func (n *And) String() string       { return binary("and", n.Left, n.Right) }

type Or struct {
	Token       token.Token
	Left, Right Exp
}

func (n *Or) expNode()             {}
func (n *Or) TokenLiteral() string { return n.Token.Literal }
func (n *Or) String() string       { return binary("or", n.Left, n.Right) }

// Not is boolean negation. Non-differentiable.
type Not struct {
	Token token.Token
	Exp   Exp
}

func (n *Not) expNode()             {}
func (n *Not) TokenLiteral() string { return n.Token.Literal }
func (n *Not) String() string       { return "(not " + n.Exp.String() + ")" }

// Isa is a runtime type-membership test, e.g. `x isa Integer`. Non-differentiable.
type Isa struct {
	Token    token.Token
	Exp      Exp
	TypeName string
}

func (n *Isa) expNode()             {}
func (n *Isa) TokenLiteral() string { return n.Token.Literal }
func (n *Isa) String() string       { return "(" + n.Exp.String() + " isa " + n.TypeName + ")" }

// Has is a list-membership test, e.g. `x has [1, 2, 3]`. Non-differentiable.
type Has struct {
	Token     token.Token
	Item, Set Exp
}

func (n *Has) expNode()             {}
func (n *Has) TokenLiteral() string { return n.Token.Literal }
func (n *Has) String() string       { return binary("has", n.Item, n.Set) }

// Thunk wraps an expression as a single-child pass-through node: it is
// evaluated eagerly, to the value of its contents, and its derivative is
// that of its contents.
type Thunk struct {
	Token token.Token
	Exp   Exp
}

func (n *Thunk) expNode()             {}
func (n *Thunk) TokenLiteral() string { return n.Token.Literal }
func (n *Thunk) String() string       { return "thunk(" + n.Exp.String() + ")" }

func joinExps(exps []Exp, sep string) string {
	parts := make([]string, len(exps))
	for i, e := range exps {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}
