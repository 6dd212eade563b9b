package diff

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/runtime"
)

// diffLet implements spec.md §4.1's Let rule: process bindings left to
// right, evaluating and differentiating each definition under the
// environment built so far, then rebind every lambda defined in this Let
// to the final scope (the same fix-point construction evalLet uses) so
// mutual recursion sees correct derivatives too. Unlike evalLet, each
// extension carries the binding's real derivative rather than nil.
func diffLet(n *ast.Let, x string, env *runtime.Env) (runtime.Value, error) {
	cur := env
	var lambdas []*runtime.LambdaVal

	for i, defn := range n.Defns {
		v, err := evalUnder(n, defn, cur)
		if err != nil {
			return nil, err
		}
		dv, err := Derivative(defn, x, cur)
		if err != nil {
			return nil, err
		}
		// Both the plain value and its derivative can be lambdas (a Lambda
		// node's own derivative is itself a LambdaVal, per the Lambda rule)
		// and both close over cur at this point — both need the same
		// mutual-recursion rebinding once the scope is complete.
		if lv, ok := v.(*runtime.LambdaVal); ok {
			lambdas = append(lambdas, lv)
		}
		if lv, ok := dv.(*runtime.LambdaVal); ok {
			lambdas = append(lambdas, lv)
		}
		cur = cur.Extend(n.Ids[i], v, dv)
	}

	runtime.RebindLambdaEnvs(lambdas, cur)

	return Derivative(n.Body, x, cur)
}

// diffSet implements spec.md §4.1's Set rule: for each target, evaluate
// and differentiate the assigned value, then update the value and
// derivative cells together (both-or-neither, per the Open Question §9
// correcting the source's bitwise-or). Returns the last assigned value —
// not its derivative — exactly as the rule specifies.
func diffSet(n *ast.Set, x string, env *runtime.Env) (runtime.Value, error) {
	var last runtime.Value = &runtime.VoidVal{}
	for i, target := range n.Targets {
		v, err := evalUnder(n, n.Values[i], env)
		if err != nil {
			return nil, err
		}
		dv, err := Derivative(n.Values[i], x, env)
		if err != nil {
			return nil, err
		}
		varTarget, ok := target.(*ast.Var)
		if !ok {
			return nil, fmt.Errorf("cannot assign to non-variable target %T", target)
		}
		if !env.Set(varTarget.Name, v, dv) {
			return nil, fmt.Errorf("cannot assign to unbound variable '%s'", varTarget.Name)
		}
		last = v
	}
	return last, nil
}
