package diff

import (
	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/eval"
	"github.com/calclang/calc/internal/runtime"
)

// diffListLit implements spec.md §4.1's ListLit rule: differentiate each
// element in order, first failure aborts.
func diffListLit(n *ast.ListLit, x string, env *runtime.Env) (runtime.Value, error) {
	elems := make([]runtime.Value, len(n.Elems))
	for i, e := range n.Elems {
		v, err := Derivative(e, x, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &runtime.ListVal{Elems: elems}, nil
}

// diffMagnitude implements spec.md §4.1's Magnitude rule: sign(eval(e)) ·
// differentiate(e). The Open Question (§9) corrects a source bug that cast
// this product to an integer in one branch; here an integer derivative
// stays integral (since ±1 and 0 are exact), and a real derivative stays
// real, rather than truncating.
func diffMagnitude(n *ast.Magnitude, x string, env *runtime.Env) (runtime.Value, error) {
	val, err := eval.Eval(n.Exp, env, Derivative)
	if err != nil {
		return nil, err
	}
	numVal, ok := val.(runtime.NumericValue)
	if !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "numeric", Got: val.Type()}
	}
	deriv, err := Derivative(n.Exp, x, env)
	if err != nil {
		return nil, err
	}
	if _, ok := deriv.(runtime.NumericValue); !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "numeric", Got: deriv.Type()}
	}

	var sign int64
	switch {
	case numVal.AsFloat() > 0:
		sign = 1
	case numVal.AsFloat() < 0:
		sign = -1
	}

	if di, ok := deriv.(*runtime.IntVal); ok {
		return &runtime.IntVal{V: sign * di.V}, nil
	}
	dn := deriv.(runtime.NumericValue)
	return &runtime.RealVal{V: float64(sign) * dn.AsFloat()}, nil
}

// diffMatrixLit implements spec.md §4.1's Matrix rule: differentiate the
// backing list expression, then validate and pack it into a matrix with the
// same shape rules evaluation uses.
func diffMatrixLit(n *ast.MatrixLit, x string, env *runtime.Env) (runtime.Value, error) {
	rowsPrime, err := Derivative(n.Rows, x, env)
	if err != nil {
		return nil, err
	}
	return eval.MatrixFromListVal(n, rowsPrime)
}
