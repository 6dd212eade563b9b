package diff

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/runtime"
	"github.com/calclang/calc/internal/token"
)

// Reify lifts a runtime.Value back into an ast.Exp (spec.md §4.3), so the
// Mult/Div rules can splice an already-computed derivative into a freshly
// synthesized tree and hand the whole thing to eval.Eval. Reify is
// intentionally lossy for LambdaVal: the closing environment cannot be
// recovered into surface syntax, so only the parameter list and body survive
// (spec.md §4.3's documented fragility note); eval.Eval closes the reified
// Lambda node over whatever environment it is evaluated in.
func Reify(v runtime.Value) (ast.Exp, error) {
	switch vv := v.(type) {
	case *runtime.IntVal:
		return &ast.IntLit{Token: token.Token{Type: token.INT, Literal: fmt.Sprint(vv.V)}, Value: vv.V}, nil
	case *runtime.RealVal:
		return &ast.RealLit{Token: token.Token{Type: token.REAL, Literal: fmt.Sprint(vv.V)}, Value: vv.V}, nil
	case *runtime.BoolVal:
		if vv.V {
			return &ast.TrueLit{Token: token.Token{Type: token.TRUE, Literal: "true"}}, nil
		}
		return &ast.FalseLit{Token: token.Token{Type: token.FALSE, Literal: "false"}}, nil
	case *runtime.VoidVal:
		// spec.md §4.3 treats VoidVal as an internal evaluator error, never a
		// surface-reachable derivative — this arm only exists so Reify has no
		// silent gap if Set's "no prior value" path is ever routed through it.
		return &ast.VoidLit{Token: token.Token{Type: token.VOID, Literal: "void"}}, nil
	case *runtime.ListVal:
		elems := make([]ast.Exp, len(vv.Elems))
		for i, e := range vv.Elems {
			ee, err := Reify(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ee
		}
		return &ast.ListLit{Token: token.Token{Type: token.LBRACK, Literal: "["}, Elems: elems}, nil
	case *runtime.LambdaVal:
		body, ok := vv.Body.(ast.Exp)
		if !ok {
			return nil, fmt.Errorf("diff: cannot reify lambda with non-Exp body")
		}
		return &ast.Lambda{Token: token.Token{Type: token.FUN, Literal: "fun"}, Params: vv.Params, Body: body}, nil
	default:
		return nil, fmt.Errorf("diff: cannot reify value of type %s back into an expression", v.Type())
	}
}
