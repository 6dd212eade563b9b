package eval

import (
	"fmt"
	"math"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/runtime"
)

func evalListLit(n *ast.ListLit, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	elems := make([]runtime.Value, len(n.Elems))
	for i, e := range n.Elems {
		v, err := Eval(e, env, dv)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &runtime.ListVal{Elems: elems}, nil
}

// evalMatrixLit requires n.Rows to evaluate to a ListVal of non-empty
// ListVal rows, all equal length, all numeric entries (spec.md §4.1
// Matrix). Any irregularity is a ShapeError.
func evalMatrixLit(n *ast.MatrixLit, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	rowsVal, err := Eval(n.Rows, env, dv)
	if err != nil {
		return nil, err
	}
	return MatrixFromListVal(n, rowsVal)
}

// MatrixFromListVal builds a MatrixVal from an already-evaluated rows
// ListVal, exported so diff's MatrixLit rule (which differentiates the
// backing list rather than evaluating it) can reuse the same shape
// validation.
func MatrixFromListVal(offending ast.Exp, rowsVal runtime.Value) (runtime.Value, error) {
	rows, ok := rowsVal.(*runtime.ListVal)
	if !ok {
		return nil, &diag.ShapeError{Offending: stringerExp{offending}, Reason: "matrix requires a list of rows, got " + rowsVal.Type()}
	}
	if len(rows.Elems) == 0 {
		return nil, &diag.ShapeError{Offending: stringerExp{offending}, Reason: "matrix requires at least one row"}
	}

	var cols int
	data := make([]float64, 0, len(rows.Elems))
	for i, rowVal := range rows.Elems {
		row, ok := rowVal.(*runtime.ListVal)
		if !ok {
			return nil, &diag.ShapeError{Offending: stringerExp{offending}, Reason: fmt.Sprintf("row %d is not a list", i)}
		}
		if len(row.Elems) == 0 {
			return nil, &diag.ShapeError{Offending: stringerExp{offending}, Reason: fmt.Sprintf("row %d is empty", i)}
		}
		if i == 0 {
			cols = len(row.Elems)
		} else if len(row.Elems) != cols {
			return nil, &diag.ShapeError{Offending: stringerExp{offending}, Reason: "ragged rows: not all rows have equal length"}
		}
		for _, cell := range row.Elems {
			n, ok := asNumeric(cell)
			if !ok {
				return nil, &diag.ShapeError{Offending: stringerExp{offending}, Reason: "matrix entries must be numeric, got " + cell.Type()}
			}
			data = append(data, n.AsFloat())
		}
	}
	return &runtime.MatrixVal{R: len(rows.Elems), C: cols, Data: data}, nil
}

func evalListAccess(n *ast.ListAccess, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	listVal, err := Eval(n.List, env, dv)
	if err != nil {
		return nil, err
	}
	list, ok := listVal.(*runtime.ListVal)
	if !ok {
		return nil, typeMismatch(n, "LIST", listVal.Type())
	}
	idxVal, err := Eval(n.Index, env, dv)
	if err != nil {
		return nil, err
	}
	idx, ok := idxVal.(*runtime.IntVal)
	if !ok {
		return nil, typeMismatch(n, "INT", idxVal.Type())
	}
	if idx.V < 0 || int(idx.V) >= len(list.Elems) {
		return nil, fmt.Errorf("list index %d out of range (length %d)", idx.V, len(list.Elems))
	}
	return list.Elems[idx.V], nil
}

func evalMagnitude(n *ast.Magnitude, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	v, err := Eval(n.Exp, env, dv)
	if err != nil {
		return nil, err
	}
	switch vv := v.(type) {
	case *runtime.IntVal:
		if vv.V < 0 {
			return &runtime.IntVal{V: -vv.V}, nil
		}
		return &runtime.IntVal{V: vv.V}, nil
	case *runtime.RealVal:
		return &runtime.RealVal{V: math.Abs(vv.V)}, nil
	default:
		return nil, typeMismatch(n, "numeric", v.Type())
	}
}

// evalNorm computes the Euclidean norm of a ListVal, or the Frobenius norm
// of a MatrixVal. Non-differentiable (spec.md §4.1's rejection list).
func evalNorm(n *ast.Norm, env *runtime.Env, dv DerivativeFunc) (runtime.Value, error) {
	v, err := Eval(n.Exp, env, dv)
	if err != nil {
		return nil, err
	}
	switch vv := v.(type) {
	case *runtime.ListVal:
		sum := 0.0
		for _, e := range vv.Elems {
			num, ok := asNumeric(e)
			if !ok {
				return nil, typeMismatch(n, "numeric list", e.Type())
			}
			sum += num.AsFloat() * num.AsFloat()
		}
		return &runtime.RealVal{V: math.Sqrt(sum)}, nil
	case *runtime.MatrixVal:
		sum := 0.0
		for _, f := range vv.Data {
			sum += f * f
		}
		return &runtime.RealVal{V: math.Sqrt(sum)}, nil
	default:
		return nil, typeMismatch(n, "LIST or MATRIX", v.Type())
	}
}
