package ast_test

import (
	"testing"

	"github.com/calclang/calc/internal/ast"
	"github.com/stretchr/testify/require"
)

func TestString_Mult(t *testing.T) {
	e := &ast.Mult{
		Left:  &ast.Var{Name: "x"},
		Right: &ast.Var{Name: "x"},
	}
	require.Equal(t, "(x * x)", e.String())
}

func TestString_Let(t *testing.T) {
	e := &ast.Let{
		Ids:   []string{"f"},
		Recs:  []bool{false},
		Defns: []ast.Exp{&ast.Lambda{Params: []string{"y"}, Body: &ast.Mult{Left: &ast.Var{Name: "y"}, Right: &ast.Var{Name: "y"}}}},
		Body:  &ast.Apply{Op: &ast.Var{Name: "f"}, Args: []ast.Exp{&ast.Var{Name: "x"}}},
	}
	require.Equal(t, "let f = fun(y) -> (y * y) in f(x)", e.String())
}

func TestString_ListLit(t *testing.T) {
	e := &ast.ListLit{Elems: []ast.Exp{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}}}
	require.Equal(t, "[1, 2]", e.String())
}

func TestString_If(t *testing.T) {
	e := &ast.If{
		Cond: &ast.Compare{Op: ">", Left: &ast.Var{Name: "x"}, Right: &ast.IntLit{Value: 0}},
		Then: &ast.Var{Name: "x"},
		Else: &ast.Diff{Left: &ast.IntLit{Value: 0}, Right: &ast.Var{Name: "x"}},
	}
	require.Equal(t, "if (x > 0) then x else (0 - x)", e.String())
}
