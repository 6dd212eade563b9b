// Package diff is calc's differentiation engine. Derivative(e, x, env) walks an
// ast.Exp and produces the runtime.Value equal to d(e)/dx evaluated under
// env's value half, per spec.md §4.1's per-node-kind rules.
//
// env is a single runtime.Env carrying both Γ (values) and Γ′ (derivatives)
// per frame, per the Design Notes (spec.md §9): "A single Env carrying both
// value and derivative slots per frame is preferable to two independent
// chains." Derivative satisfies eval.DerivativeFunc's shape exactly, so the
// evaluator can call back into it for ast.Derivative nodes without either
// package importing the other in both directions.
package diff

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/eval"
	"github.com/calclang/calc/internal/runtime"
)

// stringerExp adapts ast.Exp to diag's stringer requirement, mirroring
// eval's private alias (kept package-local rather than shared to avoid an
// eval<->diag coupling beyond what diag.Kind types already need).
type stringerExp struct{ ast.Exp }

// Derivative computes d(e)/dx evaluated under env, per spec.md §4.1. It is
// the single entry point both the CLI and ast.Derivative nodes re-enter
// through (passed to eval.Eval as an eval.DerivativeFunc).
func Derivative(e ast.Exp, x string, env *runtime.Env) (runtime.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return &runtime.IntVal{V: 0}, nil
	case *ast.RealLit:
		return &runtime.RealVal{V: 0}, nil

	case *ast.TrueLit, *ast.FalseLit, *ast.VoidLit:
		return nil, &diag.NonDifferentiable{Offending: stringerExp{e}}

	case *ast.Var:
		d, ok := env.LookupDeriv(n.Name)
		if !ok {
			return nil, &diag.UnboundDerivative{Name: n.Name}
		}
		return d, nil

	case *ast.Sum:
		return diffLinear(n, n.Left, n.Right, x, env, eval.Add)
	case *ast.Diff:
		return diffLinear(n, n.Left, n.Right, x, env, eval.Sub)
	case *ast.Mult:
		return diffMult(n, x, env)
	case *ast.Div:
		return diffDiv(n, x, env)

	case *ast.And, *ast.Or, *ast.Not, *ast.Compare, *ast.Has, *ast.Isa, *ast.Norm:
		return nil, &diag.NonDifferentiable{Offending: stringerExp{e}}

	case *ast.ListLit:
		return diffListLit(n, x, env)
	case *ast.ListAccess:
		// Open Question (spec.md §9): differentiate the whole container
		// rather than indexing into it. Preserved for bug-compatibility.
		return Derivative(n.List, x, env)
	case *ast.Magnitude:
		return diffMagnitude(n, x, env)
	case *ast.MatrixLit:
		return diffMatrixLit(n, x, env)

	case *ast.If:
		return diffIf(n, x, env)
	case *ast.While:
		return diffWhile(n, x, env)
	case *ast.For:
		return diffFor(n, x, env)
	case *ast.Sequence:
		return diffSequence(n, x, env)
	case *ast.Thunk:
		return Derivative(n.Exp, x, env)

	case *ast.Let:
		return diffLet(n, x, env)
	case *ast.Set:
		return diffSet(n, x, env)

	case *ast.Lambda:
		return diffLambda(n, x, env)
	case *ast.Apply:
		return diffApply(n, x, env)
	case *ast.Map:
		return diffMap(n, x, env)
	case *ast.Fold:
		// Not in spec.md §4.1's rule set (Map is, Fold is not) — treated
		// as lacking the differentiate capability, same as the explicit
		// non-differentiable list. Recorded in DESIGN.md.
		return nil, &diag.NonDifferentiable{Offending: stringerExp{e}}

	case *ast.Derivative:
		return Derivative(n.Inner, n.VarName, env)
	}

	return nil, fmt.Errorf("diff: unhandled node type %T", e)
}

// diffLinear implements the Sum/Diff rules: differentiate both sides,
// releasing nothing extra on failure since runtime.Value ownership needs no
// explicit release under Go's GC (spec.md §5's "Implementations using
// automatic memory management satisfy this trivially").
func diffLinear(n ast.Exp, l, r ast.Exp, x string, env *runtime.Env, combine func(a, b runtime.Value) (runtime.Value, error)) (runtime.Value, error) {
	a, err := Derivative(l, x, env)
	if err != nil {
		return nil, err
	}
	b, err := Derivative(r, x, env)
	if err != nil {
		return nil, err
	}
	v, err := combine(a, b)
	if err != nil {
		return nil, &diag.EvalFailure{Offending: stringerExp{n}, Cause: err}
	}
	return v, nil
}

// evalUnder evaluates e for the engine's own consumption (never re-entering
// a user-visible eval error unwrapped — everything is wrapped in
// diag.EvalFailure per spec.md §7).
func evalUnder(offending ast.Exp, e ast.Exp, env *runtime.Env) (runtime.Value, error) {
	v, err := eval.Eval(e, env, Derivative)
	if err != nil {
		return nil, &diag.EvalFailure{Offending: stringerExp{offending}, Cause: err}
	}
	return v, nil
}
