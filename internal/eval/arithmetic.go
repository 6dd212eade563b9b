package eval

import (
	"fmt"

	"github.com/calclang/calc/internal/runtime"
)

// asNumeric requires v to implement runtime.NumericValue, the way the
// teacher's primitives.go requires its IntegerValue/FloatValue interface
// before arithmetic.
func asNumeric(v runtime.Value) (runtime.NumericValue, bool) {
	n, ok := v.(runtime.NumericValue)
	return n, ok
}

// bothInt reports whether a and b are both IntVal, the only case that
// preserves integer arithmetic instead of promoting to float.
func bothInt(a, b runtime.Value) (*runtime.IntVal, *runtime.IntVal, bool) {
	ai, aok := a.(*runtime.IntVal)
	bi, bok := b.(*runtime.IntVal)
	return ai, bi, aok && bok
}

// Add implements calc's primitive `+`, exported per spec.md §6 so diff's
// Sum rule can compose derivative values directly.
func Add(a, b runtime.Value) (runtime.Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		return &runtime.IntVal{V: ai.V + bi.V}, nil
	}
	an, aok := asNumeric(a)
	bn, bok := asNumeric(b)
	if !aok || !bok {
		return nil, fmt.Errorf("'+' requires numeric operands, got %s and %s", a.Type(), b.Type())
	}
	return &runtime.RealVal{V: an.AsFloat() + bn.AsFloat()}, nil
}

// Sub implements calc's primitive `-`.
func Sub(a, b runtime.Value) (runtime.Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		return &runtime.IntVal{V: ai.V - bi.V}, nil
	}
	an, aok := asNumeric(a)
	bn, bok := asNumeric(b)
	if !aok || !bok {
		return nil, fmt.Errorf("'-' requires numeric operands, got %s and %s", a.Type(), b.Type())
	}
	return &runtime.RealVal{V: an.AsFloat() - bn.AsFloat()}, nil
}

// Mul implements calc's primitive `*`.
func Mul(a, b runtime.Value) (runtime.Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		return &runtime.IntVal{V: ai.V * bi.V}, nil
	}
	an, aok := asNumeric(a)
	bn, bok := asNumeric(b)
	if !aok || !bok {
		return nil, fmt.Errorf("'*' requires numeric operands, got %s and %s", a.Type(), b.Type())
	}
	return &runtime.RealVal{V: an.AsFloat() * bn.AsFloat()}, nil
}

// Div implements calc's primitive `/`. Division by zero is rejected here,
// per spec.md §4.1's Div rule: "Division by zero is the evaluator's
// responsibility." Two exactly-divisible ints stay integral; every other
// case promotes to real.
func Div(a, b runtime.Value) (runtime.Value, error) {
	an, aok := asNumeric(a)
	bn, bok := asNumeric(b)
	if !aok || !bok {
		return nil, fmt.Errorf("'/' requires numeric operands, got %s and %s", a.Type(), b.Type())
	}
	if bn.AsFloat() == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	if ai, bi, ok := bothInt(a, b); ok && bi.V != 0 && ai.V%bi.V == 0 {
		return &runtime.IntVal{V: ai.V / bi.V}, nil
	}
	return &runtime.RealVal{V: an.AsFloat() / bn.AsFloat()}, nil
}
