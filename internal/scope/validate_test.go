package scope_test

import (
	"testing"

	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/lexer"
	"github.com/calclang/calc/internal/parser"
	"github.com/calclang/calc/internal/scope"
	"github.com/stretchr/testify/require"
)

func TestValidate_LetRedefinitionNested(t *testing.T) {
	e, errs := parser.ParseProgram(lexer.New("let x = 1 in let x = 2 in x"))
	require.Empty(t, errs)
	err := scope.Validate(e, nil)
	require.Error(t, err)
	var se *diag.ScopeError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "x", se.Name)
}

func TestValidate_ForRedefinition(t *testing.T) {
	e, errs := parser.ParseProgram(lexer.New("for x in [1, 2] do x"))
	require.Empty(t, errs)
	err := scope.Validate(e, []string{"x"})
	require.Error(t, err)
	var se *diag.ScopeError
	require.ErrorAs(t, err, &se)
}

func TestValidate_LambdaParamsVisible(t *testing.T) {
	e, errs := parser.ParseProgram(lexer.New("let f = fun(y) -> y * y in f(3)"))
	require.Empty(t, errs)
	require.NoError(t, scope.Validate(e, nil))
}

func TestValidate_LambdaParamsRestoredAfterExit(t *testing.T) {
	e, errs := parser.ParseProgram(lexer.New("{ let f = fun(y) -> y * y in f(3); let y = 5 in y }"))
	require.Empty(t, errs)
	require.NoError(t, scope.Validate(e, nil))
}

func TestValidate_LetRecMutualRecursion(t *testing.T) {
	input := "let rec isEven = fun(n) -> if (n = 0) then true else isOdd(n - 1), rec isOdd = fun(n) -> if (n = 0) then false else isEven(n - 1) in isEven(4)"
	e, errs := parser.ParseProgram(lexer.New(input))
	require.Empty(t, errs)
	require.NoError(t, scope.Validate(e, nil))
}

func TestValidate_InitialBindingsVisible(t *testing.T) {
	e, errs := parser.ParseProgram(lexer.New("x * x"))
	require.Empty(t, errs)
	require.NoError(t, scope.Validate(e, []string{"x"}))
}

func TestValidate_ForSetThenBodyScope(t *testing.T) {
	e, errs := parser.ParseProgram(lexer.New("for i in [1, 2, 3] do i * i"))
	require.Empty(t, errs)
	require.NoError(t, scope.Validate(e, nil))
}
