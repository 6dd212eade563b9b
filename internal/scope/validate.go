package scope

import (
	"fmt"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/diag"
)

// Validate walks e once, checking every Let/For binder introduces a name
// not already in scope, per spec.md §4.2. Lambda parameters are not
// checked and may shadow a name already in scope. initial seeds V with the
// names the caller's Γ₀/Γ₀′ already bind (e.g. the differentiation
// variable and any config-supplied bindings). A successful return
// guarantees the §3 environment invariant the engine relies on: every
// name it encounters arose from a binder that extended both Γ and Γ′
// together, or was already present in the initial paired environment.
func Validate(e ast.Exp, initial []string) error {
	v := NewTrie()
	for _, name := range initial {
		v.Insert(name)
	}
	return validate(e, v)
}

func validate(e ast.Exp, v *Trie) error {
	switch n := e.(type) {
	case *ast.IntLit, *ast.RealLit, *ast.TrueLit, *ast.FalseLit, *ast.VoidLit, *ast.Var:
		return nil

	case *ast.Sum:
		return validateAll(v, n.Left, n.Right)
	case *ast.Diff:
		return validateAll(v, n.Left, n.Right)
	case *ast.Mult:
		return validateAll(v, n.Left, n.Right)
	case *ast.Div:
		return validateAll(v, n.Left, n.Right)
	case *ast.Compare:
		return validateAll(v, n.Left, n.Right)
	case *ast.And:
		return validateAll(v, n.Left, n.Right)
	case *ast.Or:
		return validateAll(v, n.Left, n.Right)
	case *ast.Not:
		return validate(n.Exp, v)
	case *ast.Isa:
		return validate(n.Exp, v)
	case *ast.Has:
		return validateAll(v, n.Item, n.Set)
	case *ast.Thunk:
		return validate(n.Exp, v)

	case *ast.ListLit:
		for _, elem := range n.Elems {
			if err := validate(elem, v); err != nil {
				return err
			}
		}
		return nil
	case *ast.MatrixLit:
		return validate(n.Rows, v)
	case *ast.ListAccess:
		return validateAll(v, n.List, n.Index)
	case *ast.Magnitude:
		return validate(n.Exp, v)
	case *ast.Norm:
		return validate(n.Exp, v)

	case *ast.If:
		return validateAll(v, n.Cond, n.Then, n.Else)
	case *ast.While:
		return validateAll(v, n.Cond, n.Body)
	case *ast.Sequence:
		for _, e := range n.Exps {
			if err := validate(e, v); err != nil {
				return err
			}
		}
		return nil

	case *ast.For:
		return validateFor(n, v)
	case *ast.Let:
		return validateLet(n, v)
	case *ast.Set:
		for i := range n.Targets {
			if err := validate(n.Targets[i], v); err != nil {
				return err
			}
			if err := validate(n.Values[i], v); err != nil {
				return err
			}
		}
		return nil

	case *ast.Lambda:
		return validateLambda(n, v)
	case *ast.Apply:
		if err := validate(n.Op, v); err != nil {
			return err
		}
		for _, a := range n.Args {
			if err := validate(a, v); err != nil {
				return err
			}
		}
		return nil
	case *ast.Map:
		return validateAll(v, n.Func, n.List)
	case *ast.Fold:
		return validateAll(v, n.List, n.Func, n.Base)
	case *ast.Derivative:
		return validate(n.Inner, v)
	}

	return fmt.Errorf("scope: unhandled node type %T", e)
}

func validateAll(v *Trie, exps ...ast.Exp) error {
	for _, e := range exps {
		if err := validate(e, v); err != nil {
			return err
		}
	}
	return nil
}

// validateLambda builds a fresh scope containing params ∪ V — captured
// names remain visible — and restores V on exit so a sibling node sees
// the pre-Lambda scope.
func validateLambda(n *ast.Lambda, v *Trie) error {
	for _, p := range n.Params {
		v.Insert(p)
	}
	err := validate(n.Body, v)
	for _, p := range n.Params {
		v.Remove(p)
	}
	return err
}

// validateFor validates set against V, rejects if id is already bound,
// pushes id, validates body, and pops.
func validateFor(n *ast.For, v *Trie) error {
	if err := validate(n.Set, v); err != nil {
		return err
	}
	if v.Contains(n.Id) {
		return &diag.ScopeError{Name: n.Id, Message: fmt.Sprintf("'%s' is already bound in this scope", n.Id), Pos: n.Token.Pos}
	}
	v.Insert(n.Id)
	err := validate(n.Body, v)
	v.Remove(n.Id)
	return err
}

// validateLet validates non-recursive definitions against V, rejects any
// id already in V, adds all ids, validates recursive definitions (which
// may now reference each other and themselves), validates body, and
// restores V on exit.
func validateLet(n *ast.Let, v *Trie) error {
	for i, defn := range n.Defns {
		if n.Recs[i] {
			continue
		}
		if err := validate(defn, v); err != nil {
			return err
		}
	}

	for _, id := range n.Ids {
		if v.Contains(id) {
			return &diag.ScopeError{Name: id, Message: fmt.Sprintf("redefinition of '%s'", id), Pos: n.Token.Pos}
		}
		v.Insert(id)
	}

	for i, defn := range n.Defns {
		if !n.Recs[i] {
			continue
		}
		if err := validate(defn, v); err != nil {
			popAll(v, n.Ids)
			return err
		}
	}

	err := validate(n.Body, v)
	popAll(v, n.Ids)
	return err
}

func popAll(v *Trie, ids []string) {
	for _, id := range ids {
		v.Remove(id)
	}
}
