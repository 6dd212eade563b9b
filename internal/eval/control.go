package eval

import (
	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/runtime"
)

func evalIf(n *ast.If, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	condVal, err := Eval(n.Cond, env, dv)
	if err != nil {
		return nil, err
	}
	cond, ok := condVal.(*runtime.BoolVal)
	if !ok {
		return nil, typeMismatch(n, "BOOL", condVal.Type())
	}
	if cond.V {
		return Eval(n.Then, env, dv)
	}
	return Eval(n.Else, env, dv)
}

// evalWhile implements spec.md §4.1's While rule: when AlwaysEnter is set
// the body runs once unconditionally before the condition is ever checked
// (do-while); otherwise the condition gates every iteration including the
// first. Returns VoidVal if the loop body never ran.
func evalWhile(n *ast.While, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	var last runtime.Value = &runtime.VoidVal{}
	ran := false

	if n.AlwaysEnter {
		v, err := Eval(n.Body, env, dv)
		if err != nil {
			return nil, err
		}
		last = v
		ran = true
	}

	for {
		condVal, err := Eval(n.Cond, env, dv)
		if err != nil {
			return nil, err
		}
		cond, ok := condVal.(*runtime.BoolVal)
		if !ok {
			return nil, typeMismatch(n, "BOOL", condVal.Type())
		}
		if !cond.V {
			break
		}
		v, err := Eval(n.Body, env, dv)
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

// evalFor zips the loop variable over the elements of n.Set, extending env
// with a nil derivative slot per iteration (plain evaluation carries no
// derivative; diff.Derivative's For rule re-does this zip with the real
// element-wise derivatives). Returns VoidVal for an empty list.
func evalFor(n *ast.For, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	setVal, err := Eval(n.Set, env, dv)
	if err != nil {
		return nil, err
	}
	list, ok := setVal.(*runtime.ListVal)
	if !ok {
		return nil, typeMismatch(n, "LIST", setVal.Type())
	}
	if len(list.Elems) == 0 {
		return &runtime.VoidVal{}, nil
	}

	var last runtime.Value
	for _, elem := range list.Elems {
		loopEnv := env.Extend(n.Id, elem, nil)
		v, err := Eval(n.Body, loopEnv, dv)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func evalSequence(n *ast.Sequence, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	var last runtime.Value = &runtime.VoidVal{}
	for _, e := range n.Exps {
		v, err := Eval(e, env, dv)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}
