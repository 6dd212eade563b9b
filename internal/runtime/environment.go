package runtime

// frame is one binding: a name with its current value AND its current
// derivative with respect to whatever variable the active differentiate
// call is taking, held in a mutable box so Set (spec.md §4.1) can update
// both in place.
//
// This merges what spec.md §3 calls Γ and Γ′ into a single chain, per the
// Design Notes (§9): "A single Env carrying both value and derivative
// slots per frame is preferable to two independent chains: it makes the
// §3 invariant structural rather than a runtime obligation, and Set
// becomes a single mutation." It also resolves a subtlety spec.md's rule
// text glosses over: when the product/quotient/chain rules evaluate a
// synthesized expression "under Γ", that synthesized tree can itself
// contain Derivative(...) nodes (built by the chain rule) which need Γ′ to
// evaluate — which only works if the Γ passed to eval.Eval already carries
// Γ′ alongside it, i.e. Γ and Γ′ are the same structure.
type frame struct {
	name  string
	value Value
	deriv Value
}

// Env is a persistent chain of frames, the single environment type used by
// both eval.Eval and diff.Derivative. Extending an Env never mutates its
// parent — it returns a new head, the way the teacher's runtime.Environment
// chains nested scopes (internal/interp/runtime/environment.go) — but Set
// reaches into an existing frame in place, so a lambda's captured
// environment observes assignments made through any alias of the same
// chain, matching the "shared resources" note in spec.md §5.
type Env struct {
	f     *frame
	outer *Env
}

// NewEnv creates an empty root environment.
func NewEnv() *Env {
	return nil
}

// Extend returns a new environment with name bound to value and deriv in a
// fresh frame, shadowing any existing binding of the same name in e.
func (e *Env) Extend(name string, value, deriv Value) *Env {
	return &Env{f: &frame{name: name, value: value, deriv: deriv}, outer: e}
}

func (e *Env) findFrame(name string) *frame {
	for c := e; c != nil; c = c.outer {
		if c.f.name == name {
			return c.f
		}
	}
	return nil
}

// Lookup returns the value bound to name, searching outward through the chain.
func (e *Env) Lookup(name string) (Value, bool) {
	if f := e.findFrame(name); f != nil {
		return f.value, true
	}
	return nil, false
}

// LookupDeriv returns the derivative bound to name (spec.md §4.1 Var rule:
// "Return Γ′.lookup(id)").
func (e *Env) LookupDeriv(name string) (Value, bool) {
	if f := e.findFrame(name); f != nil {
		return f.deriv, true
	}
	return nil, false
}

// Set mutates the nearest existing binding of name in place, updating both
// the value and the derivative together — both-or-neither, since name is
// either bound in this chain or it isn't (spec.md §9: explicit short-
// circuit, not the source's bitwise-or over two independent results).
// Reports false if name is not bound anywhere in the chain.
func (e *Env) Set(name string, value, deriv Value) bool {
	f := e.findFrame(name)
	if f == nil {
		return false
	}
	f.value = value
	f.deriv = deriv
	return true
}

// Outer returns the environment with the innermost frame removed, or nil if
// e is already empty.
func (e *Env) Outer() *Env {
	if e == nil {
		return nil
	}
	return e.outer
}

// Pop removes the n innermost frames. Let and For don't call this directly —
// they rebuild a local *Env and rely on the chain's persistent immutability
// to leave the caller's environment untouched — but it's the natural
// unwind primitive for walking back up a chain by depth, exercised directly
// in environment_test.go.
func (e *Env) Pop(n int) *Env {
	cur := e
	for i := 0; i < n && cur != nil; i++ {
		cur = cur.outer
	}
	return cur
}

// Depth counts frames in the chain.
func (e *Env) Depth() int {
	n := 0
	for c := e; c != nil; c = c.outer {
		n++
	}
	return n
}

// Names returns every frame's name, innermost first. Used by the §8
// environment-length invariant tests. Γ and Γ′ bind the same names
// trivially here, since they are the same chain.
func (e *Env) Names() []string {
	var names []string
	for c := e; c != nil; c = c.outer {
		names = append(names, c.f.name)
	}
	return names
}

// RebindLambdaEnvs rewrites the captured environment of every LambdaVal in
// vals to env, the final, fully-extended Let scope. This is the mutual-
// recursion fixup spec.md §4.1's Let rule and the Design Notes' "fix-point
// construction" describe: lambdas defined in a Let see every sibling
// binding, including ones defined after them and themselves.
func RebindLambdaEnvs(vals []*LambdaVal, env *Env) {
	for _, lv := range vals {
		lv.Env = env
	}
}
