package diff_test

import (
	"testing"

	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/diff"
	"github.com/calclang/calc/internal/lexer"
	"github.com/calclang/calc/internal/parser"
	"github.com/calclang/calc/internal/runtime"
	"github.com/stretchr/testify/require"
)

// xEnv builds Γ₀ = {x ↦ 3}, Γ₀′ = {x ↦ 1}, the identity-seeded basis spec.md
// §6's entry point and §8's end-to-end scenarios both use.
func xEnv() *runtime.Env {
	var env *runtime.Env
	return env.Extend("x", &runtime.IntVal{V: 3}, &runtime.IntVal{V: 1})
}

func mustDerive(t *testing.T, input string, env *runtime.Env) runtime.Value {
	t.Helper()
	e, errs := parser.ParseProgram(lexer.New(input))
	require.Empty(t, errs, "%v", errs)
	v, err := diff.Derivative(e, "x", env)
	require.NoError(t, err)
	return v
}

func asFloat(t *testing.T, v runtime.Value) float64 {
	t.Helper()
	n, ok := v.(runtime.NumericValue)
	require.True(t, ok, "expected numeric value, got %T", v)
	return n.AsFloat()
}

func TestDerivative_Product(t *testing.T) {
	v := mustDerive(t, "x * x", xEnv())
	require.Equal(t, 6.0, asFloat(t, v))
}

func TestDerivative_ProductChain(t *testing.T) {
	v := mustDerive(t, "x * x * x", xEnv())
	require.Equal(t, 27.0, asFloat(t, v))
}

func TestDerivative_Quotient(t *testing.T) {
	v := mustDerive(t, "(x + 1) / (x - 1)", xEnv())
	require.Equal(t, -0.5, asFloat(t, v))
}

func TestDerivative_If(t *testing.T) {
	v := mustDerive(t, "if (x > 0) then x * x else 0 - x * x", xEnv())
	require.Equal(t, 6.0, asFloat(t, v))
}

func TestDerivative_LetLambdaApply(t *testing.T) {
	v := mustDerive(t, "let f = fun(y) -> y * y in f(x)", xEnv())
	require.Equal(t, 6.0, asFloat(t, v))
}

func TestDerivative_ListShape(t *testing.T) {
	v := mustDerive(t, "[x, x * x, x * x * x]", xEnv())
	list, ok := v.(*runtime.ListVal)
	require.True(t, ok)
	require.Len(t, list.Elems, 3)
	require.Equal(t, 1.0, asFloat(t, list.Elems[0]))
	require.Equal(t, 6.0, asFloat(t, list.Elems[1]))
	require.Equal(t, 27.0, asFloat(t, list.Elems[2]))
}

func TestDerivative_Linearity(t *testing.T) {
	v := mustDerive(t, "x * x + x", xEnv())
	require.Equal(t, 7.0, asFloat(t, v))
}

func TestDerivative_ConstantLiteral(t *testing.T) {
	v := mustDerive(t, "5", xEnv())
	require.Equal(t, int64(0), v.(*runtime.IntVal).V)
}

func TestDerivative_ConstantUnrelatedVariable(t *testing.T) {
	var env *runtime.Env
	env = env.Extend("x", &runtime.IntVal{V: 3}, &runtime.IntVal{V: 1})
	env = env.Extend("y", &runtime.IntVal{V: 5}, &runtime.IntVal{V: 0})
	v := mustDerive(t, "y", env)
	require.Equal(t, int64(0), v.(*runtime.IntVal).V)
}

func TestDerivative_VarItself(t *testing.T) {
	v := mustDerive(t, "x", xEnv())
	require.Equal(t, int64(1), v.(*runtime.IntVal).V)
}

func TestDerivative_UnboundDerivative(t *testing.T) {
	var env *runtime.Env
	e, errs := parser.ParseProgram(lexer.New("z"))
	require.Empty(t, errs)
	_, err := diff.Derivative(e, "x", env)
	require.Error(t, err)
	var unbound *diag.UnboundDerivative
	require.ErrorAs(t, err, &unbound)
}

func TestDerivative_NonDifferentiableNodes(t *testing.T) {
	cases := []string{
		"true",
		"1 = 1",
		"1 < 2 and 2 < 3",
		"not true",
		"norm([1, 2])",
		"1 isa Integer",
		"1 has [1, 2]",
	}
	for _, input := range cases {
		e, errs := parser.ParseProgram(lexer.New(input))
		require.Empty(t, errs, "%s: %v", input, errs)
		_, err := diff.Derivative(e, "x", xEnv())
		require.Error(t, err, "expected NonDifferentiable for %q", input)
		var nd *diag.NonDifferentiable
		require.ErrorAs(t, err, &nd, "expected NonDifferentiable for %q, got %v", input, err)
	}
}

func TestDerivative_ListAccessWholeContainer(t *testing.T) {
	// Open Question: ListAccess differentiates to the whole container's
	// derivative, not the indexed element.
	v := mustDerive(t, "[x, x * x][1]", xEnv())
	list, ok := v.(*runtime.ListVal)
	require.True(t, ok)
	require.Len(t, list.Elems, 2)
	require.Equal(t, 1.0, asFloat(t, list.Elems[0]))
	require.Equal(t, 6.0, asFloat(t, list.Elems[1]))
}

func TestDerivative_MagnitudeFloatPreserving(t *testing.T) {
	// |0 - x*x| = x*x for real x (always nonnegative), so its derivative is
	// 2x = 6 at x=3: sign(eval(e)) = sign(-9) = -1, times differentiate(e)
	// = d(0-x*x)/dx = -6, giving (-1)*(-6) = 6.
	v := mustDerive(t, "|0 - x * x|", xEnv())
	require.Equal(t, 6.0, asFloat(t, v))
}

func TestDerivative_ApplyMultivariateChainRule(t *testing.T) {
	// d/dx [ (p,q) -> p*q ](x*x, x) = q*d(p)/dx + p*d(q)/dx
	//   = x*(2x) + x*x*1 = 2x^2 + x^2 = 3x^2 = 27 at x=3
	v := mustDerive(t, "let g = fun(p, q) -> p * q in g(x * x, x)", xEnv())
	require.Equal(t, 27.0, asFloat(t, v))
}

func TestDerivative_Map(t *testing.T) {
	v := mustDerive(t, "map(fun(y) -> y * y, [x, x * x])", xEnv())
	list, ok := v.(*runtime.ListVal)
	require.True(t, ok)
	require.Len(t, list.Elems, 2)
	// d/dx (x^2) at p=x: 2x * dx/dx = 6
	require.Equal(t, 6.0, asFloat(t, list.Elems[0]))
	// d/dx (p^2) at p=x*x: 2*(x*x) * d(x*x)/dx = 2*9*6 = 108
	require.Equal(t, 108.0, asFloat(t, list.Elems[1]))
}

func TestDerivative_Sequence(t *testing.T) {
	v := mustDerive(t, "{ x; x * x }", xEnv())
	require.Equal(t, 6.0, asFloat(t, v))
}

func TestDerivative_Fold_NonDifferentiable(t *testing.T) {
	e, errs := parser.ParseProgram(lexer.New("fold([1, 2, 3], fun(a, b) -> a + b, 0)"))
	require.Empty(t, errs)
	_, err := diff.Derivative(e, "x", xEnv())
	require.Error(t, err)
	var nd *diag.NonDifferentiable
	require.ErrorAs(t, err, &nd)
}

func TestDerivative_DerivativeNodeReentry(t *testing.T) {
	v := mustDerive(t, "deriv(x * x, x)", xEnv())
	require.Equal(t, 6.0, asFloat(t, v))
}

func TestDerivative_ForLoopElementWise(t *testing.T) {
	v := mustDerive(t, "for i in [x, x * x] do i", xEnv())
	require.Equal(t, 6.0, asFloat(t, v))
}

func TestDerivative_MatrixLit(t *testing.T) {
	v := mustDerive(t, "matrix([[x, x * x], [1, 2]])", xEnv())
	m, ok := v.(*runtime.MatrixVal)
	require.True(t, ok)
	require.Equal(t, 2, m.R)
	require.Equal(t, 2, m.C)
	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, 6.0, m.At(0, 1))
	require.Equal(t, 0.0, m.At(1, 0))
}
