package eval

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/runtime"
)

func evalCompare(n *ast.Compare, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	a, err := Eval(n.Left, env, dv)
	if err != nil {
		return nil, err
	}
	b, err := Eval(n.Right, env, dv)
	if err != nil {
		return nil, err
	}

	an, aok := asNumeric(a)
	bn, bok := asNumeric(b)
	if !aok || !bok {
		if n.Op == "=" || n.Op == "<>" {
			eq := valuesEqual(a, b)
			if n.Op == "<>" {
				eq = !eq
			}
			return &runtime.BoolVal{V: eq}, nil
		}
		return nil, typeMismatch(n, "numeric", a.Type()+"/"+b.Type())
	}

	af, bf := an.AsFloat(), bn.AsFloat()
	var result bool
	switch n.Op {
	case "=":
		result = af == bf
	case "<>":
		result = af != bf
	case "<":
		result = af < bf
	case ">":
		result = af > bf
	case "<=":
		result = af <= bf
	case ">=":
		result = af >= bf
	default:
		return nil, fmt.Errorf("unknown comparison operator %q", n.Op)
	}
	return &runtime.BoolVal{V: result}, nil
}

func evalAnd(n *ast.And, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	a, err := Eval(n.Left, env, dv)
	if err != nil {
		return nil, err
	}
	ab, ok := a.(*runtime.BoolVal)
	if !ok {
		return nil, typeMismatch(n, "BOOL", a.Type())
	}
	if !ab.V {
		return &runtime.BoolVal{V: false}, nil
	}
	b, err := Eval(n.Right, env, dv)
	if err != nil {
		return nil, err
	}
	bb, ok := b.(*runtime.BoolVal)
	if !ok {
		return nil, typeMismatch(n, "BOOL", b.Type())
	}
	return &runtime.BoolVal{V: bb.V}, nil
}

func evalOr(n *ast.Or, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	a, err := Eval(n.Left, env, dv)
	if err != nil {
		return nil, err
	}
	ab, ok := a.(*runtime.BoolVal)
	if !ok {
		return nil, typeMismatch(n, "BOOL", a.Type())
	}
	if ab.V {
		return &runtime.BoolVal{V: true}, nil
	}
	b, err := Eval(n.Right, env, dv)
	if err != nil {
		return nil, err
	}
	bb, ok := b.(*runtime.BoolVal)
	if !ok {
		return nil, typeMismatch(n, "BOOL", b.Type())
	}
	return &runtime.BoolVal{V: bb.V}, nil
}

func evalNot(n *ast.Not, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	v, err := Eval(n.Exp, env, dv)
	if err != nil {
		return nil, err
	}
	b, ok := v.(*runtime.BoolVal)
	if !ok {
		return nil, typeMismatch(n, "BOOL", v.Type())
	}
	return &runtime.BoolVal{V: !b.V}, nil
}

// evalIsa checks n.Exp's runtime kind against n.TypeName, case-sensitive
// ("Integer", "Real", "Bool", "List", "Matrix", "Lambda", "Void" map to the
// Value.Type() tags; any other spelling matches nothing). This is the minimal type-membership test spec.md §1
// names as an out-of-scope, trivially-rejecting operator — it has no
// broader object system behind it.
func evalIsa(n *ast.Isa, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	v, err := Eval(n.Exp, env, dv)
	if err != nil {
		return nil, err
	}
	return &runtime.BoolVal{V: typeNameMatches(v.Type(), n.TypeName)}, nil
}

func typeNameMatches(tag, name string) bool {
	aliases := map[string]string{
		"Integer": "INT",
		"Real":    "REAL",
		"Bool":    "BOOL",
		"List":    "LIST",
		"Matrix":  "MATRIX",
		"Lambda":  "LAMBDA",
		"Void":    "VOID",
	}
	return aliases[name] == tag
}

// evalHas checks list membership: n.Item isa element of the ListVal n.Set
// evaluates to.
func evalHas(n *ast.Has, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	item, err := Eval(n.Item, env, dv)
	if err != nil {
		return nil, err
	}
	set, err := Eval(n.Set, env, dv)
	if err != nil {
		return nil, err
	}
	list, ok := set.(*runtime.ListVal)
	if !ok {
		return nil, typeMismatch(n, "LIST", set.Type())
	}
	for _, elem := range list.Elems {
		if valuesEqual(item, elem) {
			return &runtime.BoolVal{V: true}, nil
		}
	}
	return &runtime.BoolVal{V: false}, nil
}

func valuesEqual(a, b runtime.Value) bool {
	if an, aok := asNumeric(a); aok {
		if bn, bok := asNumeric(b); bok {
			return an.AsFloat() == bn.AsFloat()
		}
		return false
	}
	if ab, ok := a.(*runtime.BoolVal); ok {
		if bb, ok := b.(*runtime.BoolVal); ok {
			return ab.V == bb.V
		}
		return false
	}
	if _, ok := a.(*runtime.VoidVal); ok {
		_, ok := b.(*runtime.VoidVal)
		return ok
	}
	return false
}
