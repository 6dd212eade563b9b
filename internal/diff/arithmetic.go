package diff

import (
	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/runtime"
)

// diffMult implements the product rule (spec.md §4.1 Mult): differentiate
// both sides, reify each derivative back into an Exp, and evaluate the
// synthesized d(l)·r + d(r)·l tree under env. The synthesized tree is
// discarded once evaluated — it exists only to let eval.Eval (and any
// nested Derivative it encounters) do the composition.
func diffMult(n *ast.Mult, x string, env *runtime.Env) (runtime.Value, error) {
	aPrime, err := Derivative(n.Left, x, env)
	if err != nil {
		return nil, err
	}
	bPrime, err := Derivative(n.Right, x, env)
	if err != nil {
		return nil, err
	}

	aExp, err := Reify(aPrime)
	if err != nil {
		return nil, err
	}
	bExp, err := Reify(bPrime)
	if err != nil {
		return nil, err
	}

	tree := &ast.Sum{
		Token: n.Token,
		Left:  &ast.Mult{Token: n.Token, Left: n.Left, Right: bExp},
		Right: &ast.Mult{Token: n.Token, Left: n.Right, Right: aExp},
	}
	return evalUnder(n, tree, env)
}

// diffDiv implements the quotient rule (spec.md §4.1 Div): synthesizes
// (r·d(l) - l·d(r)) / (r·r) and evaluates it under env. Division by zero
// at evaluation time surfaces as an EvalFailure, per the rule's note
// that "division by zero is the evaluator's responsibility."
func diffDiv(n *ast.Div, x string, env *runtime.Env) (runtime.Value, error) {
	aPrime, err := Derivative(n.Left, x, env)
	if err != nil {
		return nil, err
	}
	bPrime, err := Derivative(n.Right, x, env)
	if err != nil {
		return nil, err
	}

	aExp, err := Reify(aPrime)
	if err != nil {
		return nil, err
	}
	bExp, err := Reify(bPrime)
	if err != nil {
		return nil, err
	}

	tree := &ast.Div{
		Token: n.Token,
		Left: &ast.Diff{
			Token: n.Token,
			Left:  &ast.Mult{Token: n.Token, Left: n.Right, Right: aExp},
			Right: &ast.Mult{Token: n.Token, Left: n.Left, Right: bExp},
		},
		Right: &ast.Mult{Token: n.Token, Left: n.Right, Right: n.Right},
	}
	return evalUnder(n, tree, env)
}
