package lexer

import (
	"testing"

	"github.com/calclang/calc/internal/token"
	"github.com/stretchr/testify/require"
)

func TestNextToken_Operators(t *testing.T) {
	input := `let x := 3.5 in x * x <> x / x <= x >= x -> x | [x]`

	want := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.REAL, token.IN,
		token.IDENT, token.ASTERISK, token.IDENT,
		token.NOT_EQ, token.IDENT, token.SLASH, token.IDENT,
		token.LT_EQ, token.IDENT, token.GT_EQ, token.IDENT,
		token.ARROW, token.IDENT, token.PIPE, token.LBRACK, token.IDENT, token.RBRACK,
		token.EOF,
	}

	l := New(input)
	for i, wantType := range want {
		tok := l.NextToken()
		require.Equalf(t, wantType, tok.Type, "token %d: literal %q", i, tok.Literal)
	}
}

func TestNextToken_Numbers(t *testing.T) {
	toks := Tokens("3 3.14 0 0.5")
	require.Equal(t, token.INT, toks[0].Type)
	require.Equal(t, token.REAL, toks[1].Type)
	require.Equal(t, token.INT, toks[2].Type)
	require.Equal(t, token.REAL, toks[3].Type)
}

func TestNextToken_Keywords(t *testing.T) {
	toks := Tokens("if then else while do for true false void fun map fold deriv isa has norm and or not rec")
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		require.NotEqual(t, token.IDENT, tok.Type, "keyword %q lexed as identifier", tok.Literal)
	}
}

func TestNextToken_LineComment(t *testing.T) {
	toks := Tokens("x // this is a comment\n+ y")
	require.Equal(t, token.IDENT, toks[0].Type)
	require.Equal(t, token.PLUS, toks[1].Type)
	require.Equal(t, token.IDENT, toks[2].Type)
}

func TestNextToken_Positions(t *testing.T) {
	l := New("x\ny")
	first := l.NextToken()
	require.Equal(t, 1, first.Pos.Line)
	second := l.NextToken()
	require.Equal(t, 2, second.Pos.Line)
}
