package diff

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/eval"
	"github.com/calclang/calc/internal/runtime"
)

// diffLambda implements spec.md §4.1's Lambda rule: the derivative of a
// lambda expression is a lambda of the same parameters whose body is
// Derivative(body, x), closing over the current env. Because Env is a
// persistent chain (Extend never mutates a parent), env already is the
// "snapshot independent of subsequent mutations" the rule calls for — Set
// mutates frames in place, same as any other alias of this chain, but no
// later Extend can retroactively change which frame this head points to.
func diffLambda(n *ast.Lambda, x string, env *runtime.Env) (runtime.Value, error) {
	return &runtime.LambdaVal{
		Params: n.Params,
		Body:   &ast.Derivative{Token: n.Token, Inner: n.Body, VarName: x},
		Env:    env,
	}, nil
}

// partialAt computes (∂f/∂p_seedIndex)(argVals...): extend f's captured
// environment with every parameter bound to its argument value, seeding
// p_seedIndex's own derivative slot to 1 and every other parameter's to 0
// — the identity-seed convention spec.md §6 describes for the engine's
// entry point, applied locally to a lambda's own parameter space — then
// differentiate f's body with respect to p_seedIndex under that
// environment. Shared by diffApply's multivariate chain rule and diffMap's
// elementwise application, both of which need exactly this partial
// derivative rather than a derivative with respect to the outer variable.
func partialAt(f *runtime.LambdaVal, body ast.Exp, seedIndex int, argVals []runtime.Value) (runtime.Value, error) {
	callEnv := f.Env
	for j, p := range f.Params {
		seed := runtime.Value(&runtime.IntVal{V: 0})
		if j == seedIndex {
			seed = &runtime.IntVal{V: 1}
		}
		callEnv = callEnv.Extend(p, argVals[j], seed)
	}
	return Derivative(body, f.Params[seedIndex], callEnv)
}

// diffApply implements the multivariate chain rule (spec.md §4.1 Apply):
//
//	d/dx f(u1,...,un) = Σi (∂f/∂pi)(u1,...,un) · dui/dx
//
// This computes the same value the rule's literal
// `Apply(Derivative(op_clone, f.param[i]), args_clones)` AST construction
// would, without routing a derivative-seeded call back through the
// evaluator's ordinary Apply (whose call-environment extension seeds
// every parameter's derivative slot as nil, which is correct for plain
// evaluation but wrong for this rule — see partialAt).
func diffApply(n *ast.Apply, x string, env *runtime.Env) (runtime.Value, error) {
	opVal, err := eval.Eval(n.Op, env, Derivative)
	if err != nil {
		return nil, err
	}
	f, ok := opVal.(*runtime.LambdaVal)
	if !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "LAMBDA", Got: opVal.Type()}
	}
	if len(f.Params) != len(n.Args) {
		return nil, fmt.Errorf("arity mismatch: lambda takes %d argument(s), got %d", len(f.Params), len(n.Args))
	}
	body, ok := f.Body.(ast.Exp)
	if !ok {
		return nil, fmt.Errorf("diff: lambda body is not an expression")
	}

	argVals := make([]runtime.Value, len(n.Args))
	argDerivs := make([]runtime.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := eval.Eval(a, env, Derivative)
		if err != nil {
			return nil, err
		}
		argVals[i] = v

		d, err := Derivative(a, x, env)
		if err != nil {
			return nil, err
		}
		argDerivs[i] = d
	}

	var acc runtime.Value
	for i := range f.Params {
		partial, err := partialAt(f, body, i, argVals)
		if err != nil {
			return nil, err
		}
		term, err := eval.Mul(partial, argDerivs[i])
		if err != nil {
			return nil, &diag.EvalFailure{Offending: stringerExp{n}, Cause: err}
		}

		if acc == nil {
			acc = term
			continue
		}
		acc, err = eval.Add(acc, term)
		if err != nil {
			return nil, &diag.EvalFailure{Offending: stringerExp{n}, Cause: err}
		}
	}
	return acc, nil
}

// diffMap implements spec.md §4.1's Map rule for both list and matrix
// inputs: differentiate the container to get its elementwise derivatives,
// then for each zipped (value, derivative) pair compute (∂f/∂y)(value) ·
// derivative — the same chain-rule construction diffApply uses per
// argument, specialized to f's single parameter. The matrix form coerces
// every result to float and preserves R×C shape.
func diffMap(n *ast.Map, x string, env *runtime.Env) (runtime.Value, error) {
	listVal, err := eval.Eval(n.List, env, Derivative)
	if err != nil {
		return nil, err
	}
	fVal, err := eval.Eval(n.Func, env, Derivative)
	if err != nil {
		return nil, err
	}
	f, ok := fVal.(*runtime.LambdaVal)
	if !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "LAMBDA", Got: fVal.Type()}
	}
	if len(f.Params) != 1 {
		return nil, fmt.Errorf("map requires a unary function, got arity %d", len(f.Params))
	}
	body, ok := f.Body.(ast.Exp)
	if !ok {
		return nil, fmt.Errorf("diff: lambda body is not an expression")
	}

	listPrimeVal, err := Derivative(n.List, x, env)
	if err != nil {
		return nil, err
	}

	switch in := listVal.(type) {
	case *runtime.ListVal:
		listPrime, ok := listPrimeVal.(*runtime.ListVal)
		if !ok || len(listPrime.Elems) != len(in.Elems) {
			return nil, &diag.ShapeError{Offending: stringerExp{n}, Reason: "map's list derivative does not match the list's shape"}
		}
		out := make([]runtime.Value, len(in.Elems))
		for i, v := range in.Elems {
			partial, err := partialAt(f, body, 0, []runtime.Value{v})
			if err != nil {
				return nil, err
			}
			term, err := eval.Mul(partial, listPrime.Elems[i])
			if err != nil {
				return nil, &diag.EvalFailure{Offending: stringerExp{n}, Cause: err}
			}
			out[i] = term
		}
		return &runtime.ListVal{Elems: out}, nil

	case *runtime.MatrixVal:
		matPrime, ok := listPrimeVal.(*runtime.MatrixVal)
		if !ok || len(matPrime.Data) != len(in.Data) {
			return nil, &diag.ShapeError{Offending: stringerExp{n}, Reason: "map's matrix derivative does not match the matrix's shape"}
		}
		data := make([]float64, len(in.Data))
		for i, cell := range in.Data {
			partial, err := partialAt(f, body, 0, []runtime.Value{&runtime.RealVal{V: cell}})
			if err != nil {
				return nil, err
			}
			num, ok := partial.(runtime.NumericValue)
			if !ok {
				return nil, &diag.ShapeError{Offending: stringerExp{n}, Reason: "map derivative over a matrix must produce numeric entries"}
			}
			data[i] = num.AsFloat() * matPrime.Data[i]
		}
		return &runtime.MatrixVal{R: in.R, C: in.C, Data: data}, nil

	default:
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "LIST or MATRIX", Got: listVal.Type()}
	}
}
