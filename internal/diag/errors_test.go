package diag_test

import (
	"testing"

	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/token"
	"github.com/stretchr/testify/require"
)

type fakeExp struct{ s string }

func (f fakeExp) String() string { return f.s }

func TestNonDifferentiable_Message(t *testing.T) {
	err := &diag.NonDifferentiable{Offending: fakeExp{"true"}}
	require.Equal(t, "expression 'true' is non-differentiable", err.Error())
	require.Equal(t, diag.KindRuntime, err.Kind())
}

func TestUnboundDerivative_Message(t *testing.T) {
	err := &diag.UnboundDerivative{Name: "y"}
	require.Contains(t, err.Error(), "derivative of variable 'y'")
}

func TestCompilerError_Format(t *testing.T) {
	source := "var y := x + 5;"
	err := diag.NewCompilerError(token.Position{Line: 1, Column: 10}, "undefined variable 'x'", source, "test.calc")
	got := err.Format(false)

	require.Contains(t, got, "Error in test.calc:1:10")
	require.Contains(t, got, "1 | var y := x + 5;")
	require.Contains(t, got, "^")
	require.Contains(t, got, "undefined variable 'x'")
}

func TestCompilerError_FormatWithContext(t *testing.T) {
	source := "var x := 5;\nvar y := 1;\ny := 10;\nPrintLn(y);"
	err := diag.NewCompilerError(token.Position{Line: 3, Column: 1}, "type mismatch", source, "test.calc")
	got := err.FormatWithContext(1, false)

	require.Contains(t, got, "2 | var y := 1;")
	require.Contains(t, got, "3 | y := 10;")
	require.Contains(t, got, "4 | PrintLn(y);")
}

func TestCompilerError_Format_Color(t *testing.T) {
	source := "var y := x + 5;"
	err := diag.NewCompilerError(token.Position{Line: 1, Column: 10}, "undefined variable 'x'", source, "test.calc")

	plain := err.Format(false)
	colored := err.Format(true)

	require.NotContains(t, plain, "\033[")
	require.Contains(t, colored, "\033[1;31m")
	require.Contains(t, colored, "\033[0m")
}

func TestFormatErrors_MultipleHeader(t *testing.T) {
	errs := []*diag.CompilerError{
		diag.NewCompilerError(token.Position{Line: 1, Column: 1}, "first", "a", "test.calc"),
		diag.NewCompilerError(token.Position{Line: 2, Column: 1}, "second", "a\nb", "test.calc"),
	}
	got := diag.FormatErrors(errs, false)

	require.Contains(t, got, "Compilation failed with 2 error(s)")
	require.Contains(t, got, "[Error 1 of 2]")
	require.Contains(t, got, "[Error 2 of 2]")
}

func TestEvalFailure_Unwraps(t *testing.T) {
	cause := &diag.ShapeError{Offending: fakeExp{"m"}, Reason: "ragged rows"}
	err := &diag.EvalFailure{Offending: fakeExp{"m"}, Cause: cause}
	require.ErrorIs(t, err, cause)
}
