// Package eval is calc's evaluator: eval.Eval(e, env) walks an ast.Exp and
// produces its runtime.Value, exactly the "opaque trusted dependency"
// spec.md §1 describes the differentiation engine invoking. It is built in
// the teacher's big-type-switch dispatch style (internal/interp's
// interpreter.go), scaled to calc's 33 node kinds.
//
// Eval takes a DerivativeFunc so it can evaluate ast.Derivative nodes
// without importing package diff — diff imports eval (to run synthesized
// product/quotient/chain-rule expressions), so the reverse import would
// cycle. Per spec.md §9's "Symbolic rule re-entry" note, diff.Derivative is
// passed down explicitly as a plain function value, never through package
// state.
package eval

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/runtime"
)

// DerivativeFunc is the shape of diff.Derivative, threaded through Eval so
// it can evaluate ast.Derivative nodes.
type DerivativeFunc func(e ast.Exp, x string, env *runtime.Env) (runtime.Value, error)

// stringerExp adapts ast.Exp to diag's position-free stringer requirement.
type stringerExp struct{ ast.Exp }

// Eval evaluates e under env, calling dv whenever it encounters an
// ast.Derivative node. dv may be nil if the caller knows the tree contains
// no Derivative nodes (e.g. a freshly-parsed program before any deriv(...)
// use); evaluating a Derivative node with a nil dv is a programmer error
// and panics rather than silently misbehaving.
func Eval(e ast.Exp, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return &runtime.IntVal{V: n.Value}, nil
	case *ast.RealLit:
		return &runtime.RealVal{V: n.Value}, nil
	case *ast.TrueLit:
		return &runtime.BoolVal{V: true}, nil
	case *ast.FalseLit:
		return &runtime.BoolVal{V: false}, nil
	case *ast.VoidLit:
		return &runtime.VoidVal{}, nil

	case *ast.Var:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("undefined variable '%s'", n.Name)
		}
		return v, nil

	case *ast.Sum:
		return evalArith(n, n.Left, n.Right, env, dv, Add)
	case *ast.Diff:
		return evalArith(n, n.Left, n.Right, env, dv, Sub)
	case *ast.Mult:
		return evalArith(n, n.Left, n.Right, env, dv, Mul)
	case *ast.Div:
		return evalArith(n, n.Left, n.Right, env, dv, Div)

	case *ast.Compare:
		return evalCompare(n, env, dv)
	case *ast.And:
		return evalAnd(n, env, dv)
	case *ast.Or:
		return evalOr(n, env, dv)
	case *ast.Not:
		return evalNot(n, env, dv)
	case *ast.Isa:
		return evalIsa(n, env, dv)
	case *ast.Has:
		return evalHas(n, env, dv)

	case *ast.ListLit:
		return evalListLit(n, env, dv)
	case *ast.MatrixLit:
		return evalMatrixLit(n, env, dv)
	case *ast.ListAccess:
		return evalListAccess(n, env, dv)
	case *ast.Magnitude:
		return evalMagnitude(n, env, dv)
	case *ast.Norm:
		return evalNorm(n, env, dv)

	case *ast.If:
		return evalIf(n, env, dv)
	case *ast.While:
		return evalWhile(n, env, dv)
	case *ast.For:
		return evalFor(n, env, dv)
	case *ast.Sequence:
		return evalSequence(n, env, dv)
	case *ast.Thunk:
		return Eval(n.Exp, env, dv)

	case *ast.Let:
		return evalLet(n, env, dv)
	case *ast.Set:
		return evalSet(n, env, dv)

	case *ast.Lambda:
		return &runtime.LambdaVal{Params: n.Params, Body: n.Body, Env: env}, nil
	case *ast.Apply:
		return evalApply(n, env, dv)
	case *ast.Map:
		return evalMap(n, env, dv)
	case *ast.Fold:
		return evalFold(n, env, dv)

	case *ast.Derivative:
		if dv == nil {
			panic("eval: Derivative node encountered with nil DerivativeFunc")
		}
		return dv(n.Inner, n.VarName, env)
	}

	return nil, fmt.Errorf("eval: unhandled node type %T", e)
}

func typeMismatch(offending ast.Exp, expected, got string) error {
	return &diag.TypeMismatch{Offending: stringerExp{offending}, Expected: expected, Got: got}
}

func evalArith(offending ast.Exp, l, r ast.Exp, env *runtime.Env, dv DerivativeFunc, op func(a, b runtime.Value) (runtime.Value, error)) (runtime.Value, error) {
	a, err := Eval(l, env, dv)
	if err != nil {
		return nil, err
	}
	b, err := Eval(r, env, dv)
	if err != nil {
		return nil, err
	}
	v, err := op(a, b)
	if err != nil {
		return nil, fmt.Errorf("in '%s': %w", offending.String(), err)
	}
	return v, nil
}
