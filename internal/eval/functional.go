package eval

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/runtime"
)

// Apply calls f with args, extending f's captured environment with one
// frame per parameter (nil derivative slots: plain application carries no
// derivative of its own). Exported per spec.md §6's `apply(f, args) → Val`.
func Apply(f *runtime.LambdaVal, args []runtime.Value, dv DerivativeFunc) (runtime.Value, error) {
	if len(args) != len(f.Params) {
		return nil, fmt.Errorf("arity mismatch: lambda takes %d argument(s), got %d", len(f.Params), len(args))
	}
	callEnv := f.Env
	for i, p := range f.Params {
		callEnv = callEnv.Extend(p, args[i], nil)
	}
	body, ok := f.Body.(ast.Exp)
	if !ok {
		return nil, fmt.Errorf("lambda body is not an expression")
	}
	return Eval(body, callEnv, dv)
}

func evalApply(n *ast.Apply, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	opVal, err := Eval(n.Op, env, dv)
	if err != nil {
		return nil, err
	}
	f, ok := opVal.(*runtime.LambdaVal)
	if !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "LAMBDA", Got: opVal.Type()}
	}
	args := make([]runtime.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(a, env, dv)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return Apply(f, args, dv)
}

// evalMap applies n.Func element-wise over n.List. List input yields a
// ListVal; MatrixVal input applies the function to every scalar entry and
// coerces the result to float, preserving shape (spec.md §4.1 Map).
func evalMap(n *ast.Map, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	fnVal, err := Eval(n.Func, env, dv)
	if err != nil {
		return nil, err
	}
	f, ok := fnVal.(*runtime.LambdaVal)
	if !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "LAMBDA", Got: fnVal.Type()}
	}
	if len(f.Params) != 1 {
		return nil, fmt.Errorf("map requires a unary function, got arity %d", len(f.Params))
	}

	listVal, err := Eval(n.List, env, dv)
	if err != nil {
		return nil, err
	}

	switch in := listVal.(type) {
	case *runtime.ListVal:
		out := make([]runtime.Value, len(in.Elems))
		for i, e := range in.Elems {
			v, err := Apply(f, []runtime.Value{e}, dv)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &runtime.ListVal{Elems: out}, nil
	case *runtime.MatrixVal:
		data := make([]float64, len(in.Data))
		for i, cell := range in.Data {
			v, err := Apply(f, []runtime.Value{&runtime.RealVal{V: cell}}, dv)
			if err != nil {
				return nil, err
			}
			num, ok := asNumeric(v)
			if !ok {
				return nil, &diag.ShapeError{Offending: stringerExp{n}, Reason: "map over a matrix must produce numeric entries, got " + v.Type()}
			}
			data[i] = num.AsFloat()
		}
		return &runtime.MatrixVal{R: in.R, C: in.C, Data: data}, nil
	default:
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "LIST or MATRIX", Got: listVal.Type()}
	}
}

// evalFold reduces n.List left-to-right with n.Func, seeded by n.Base.
func evalFold(n *ast.Fold, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	listVal, err := Eval(n.List, env, dv)
	if err != nil {
		return nil, err
	}
	list, ok := listVal.(*runtime.ListVal)
	if !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "LIST", Got: listVal.Type()}
	}
	fnVal, err := Eval(n.Func, env, dv)
	if err != nil {
		return nil, err
	}
	f, ok := fnVal.(*runtime.LambdaVal)
	if !ok {
		return nil, &diag.TypeMismatch{Offending: stringerExp{n}, Expected: "LAMBDA", Got: fnVal.Type()}
	}
	if len(f.Params) != 2 {
		return nil, fmt.Errorf("fold requires a binary function, got arity %d", len(f.Params))
	}

	acc, err := Eval(n.Base, env, dv)
	if err != nil {
		return nil, err
	}
	for _, elem := range list.Elems {
		acc, err = Apply(f, []runtime.Value{acc, elem}, dv)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
