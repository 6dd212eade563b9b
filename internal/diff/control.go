package diff

import (
	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/eval"
	"github.com/calclang/calc/internal/runtime"
)

// diffIf implements spec.md §4.1's If rule: the derivative of a
// conditional at a point equals the derivative of the taken branch; the
// discontinuity at the boundary is not modeled.
func diffIf(n *ast.If, x string, env *runtime.Env) (runtime.Value, error) {
	condVal, err := eval.Eval(n.Cond, env, Derivative)
	if err != nil {
		return nil, err
	}
	cond, ok := condVal.(*runtime.BoolVal)
	if !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "BOOL", Got: condVal.Type()}
	}
	if cond.V {
		return Derivative(n.Then, x, env)
	}
	return Derivative(n.Else, x, env)
}

// diffWhile mirrors eval.evalWhile's AlwaysEnter (do-while) handling, but
// differentiates the body on every iteration instead of evaluating it, and
// returns the last computed derivative (VoidVal if the loop never ran).
func diffWhile(n *ast.While, x string, env *runtime.Env) (runtime.Value, error) {
	var last runtime.Value = &runtime.VoidVal{}
	ran := false

	if n.AlwaysEnter {
		v, err := Derivative(n.Body, x, env)
		if err != nil {
			return nil, err
		}
		last = v
		ran = true
	}

	for {
		condVal, err := eval.Eval(n.Cond, env, Derivative)
		if err != nil {
			return nil, err
		}
		cond, ok := condVal.(*runtime.BoolVal)
		if !ok {
			return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "BOOL", Got: condVal.Type()}
		}
		if !cond.V {
			break
		}
		v, err := Derivative(n.Body, x, env)
		if err != nil {
			return nil, err
		}
		last = v
		ran = true
	}

	if !ran {
		return &runtime.VoidVal{}, nil
	}
	return last, nil
}

// diffFor implements spec.md §4.1's For rule: zip the set's values with its
// element-wise derivatives, extending both the value and derivative slot of
// id per iteration — including when id shadows an already-bound name of
// the same identifier, per the Open Question (§9) preserving this
// behavior verbatim rather than rejecting it as a redefinition.
func diffFor(n *ast.For, x string, env *runtime.Env) (runtime.Value, error) {
	setVal, err := eval.Eval(n.Set, env, Derivative)
	if err != nil {
		return nil, err
	}
	list, ok := setVal.(*runtime.ListVal)
	if !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "LIST", Got: setVal.Type()}
	}
	setPrimeVal, err := Derivative(n.Set, x, env)
	if err != nil {
		return nil, err
	}
	listPrime, ok := setPrimeVal.(*runtime.ListVal)
	if !ok || len(listPrime.Elems) != len(list.Elems) {
		return nil, &diag.ShapeError{Offending: stringerExp{n}, Reason: "for's set derivative does not match the set's shape"}
	}
	if len(list.Elems) == 0 {
		return &runtime.VoidVal{}, nil
	}

	var last runtime.Value
	for i, elem := range list.Elems {
		loopEnv := env.Extend(n.Id, elem, listPrime.Elems[i])
		v, err := Derivative(n.Body, x, loopEnv)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// diffSequence implements spec.md §4.1's Sequence rule: differentiate each
// expression in order, returning the last.
func diffSequence(n *ast.Sequence, x string, env *runtime.Env) (runtime.Value, error) {
	var last runtime.Value = &runtime.VoidVal{}
	for _, e := range n.Exps {
		v, err := Derivative(e, x, env)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}
