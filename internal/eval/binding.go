package eval

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/runtime"
)

// evalLet extends env with each binding in order, then rebinds the
// captured environment of every lambda defined directly in this Let to the
// final, fully-extended scope — the "fix-point construction" spec.md §9's
// Design Notes call for, so mutually recursive definitions (and a lambda
// referencing itself) resolve correctly regardless of Recs[i].
func evalLet(n *ast.Let, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	cur := env
	var lambdas []*runtime.LambdaVal

	for i, defn := range n.Defns {
		v, err := Eval(defn, cur, dv)
		if err != nil {
			return nil, err
		}
		if lv, ok := v.(*runtime.LambdaVal); ok {
			lambdas = append(lambdas, lv)
		}
		cur = cur.Extend(n.Ids[i], v, nil)
	}

	runtime.RebindLambdaEnvs(lambdas, cur)

	return Eval(n.Body, cur, dv)
}

// evalSet mutates each target's binding in order, requiring every target
// be a bound ast.Var (calc's only mutable-cell shape). Returns the last
// assigned value, or VoidVal if Targets is empty.
func evalSet(n *ast.Set, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	var last runtime.Value = &runtime.VoidVal{}
	for i, target := range n.Targets {
		v, err := Eval(n.Values[i], env, dv)
		if err != nil {
			return nil, err
		}
		varTarget, ok := target.(*ast.Var)
		if !ok {
			return nil, typeMismatch(n, "assignable variable", fmt.Sprintf("%T", target))
		}
		// Preserve whatever derivative slot already exists for this name
		// rather than nulling it — plain evaluation has no derivative of
		// its own to install, but it must not corrupt one a surrounding
		// differentiate() call is tracking (spec.md §5: Set mutates a
		// cell shared by Γ and Γ′).
		existingDeriv, _ := env.LookupDeriv(varTarget.Name)
		if !env.Set(varTarget.Name, v, existingDeriv) {
			return nil, fmt.Errorf("cannot assign to unbound variable '%s'", varTarget.Name)
		}
		last = v
	}
	return last, nil
}
