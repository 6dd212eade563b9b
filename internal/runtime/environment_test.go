package runtime_test

import (
	"testing"

	"github.com/calclang/calc/internal/runtime"
	"github.com/stretchr/testify/require"
)

func TestEnv_LookupShadowing(t *testing.T) {
	var env *runtime.Env
	env = env.Extend("x", &runtime.IntVal{V: 1}, &runtime.IntVal{V: 0})
	env = env.Extend("x", &runtime.IntVal{V: 2}, &runtime.IntVal{V: 1})

	v, ok := env.Lookup("x")
	require.True(t, ok)
	require.Equal(t, int64(2), v.(*runtime.IntVal).V)

	d, ok := env.LookupDeriv("x")
	require.True(t, ok)
	require.Equal(t, int64(1), d.(*runtime.IntVal).V)

	env = env.Outer()
	v, ok = env.Lookup("x")
	require.True(t, ok)
	require.Equal(t, int64(1), v.(*runtime.IntVal).V)
}

func TestEnv_LookupUnbound(t *testing.T) {
	var env *runtime.Env
	env = env.Extend("x", &runtime.IntVal{V: 1}, &runtime.IntVal{V: 0})
	_, ok := env.Lookup("y")
	require.False(t, ok)
	_, ok = env.LookupDeriv("y")
	require.False(t, ok)
}

func TestEnv_Pop(t *testing.T) {
	var env *runtime.Env
	env = env.Extend("a", &runtime.IntVal{V: 1}, &runtime.IntVal{V: 0})
	env = env.Extend("b", &runtime.IntVal{V: 2}, &runtime.IntVal{V: 0})
	env = env.Extend("c", &runtime.IntVal{V: 3}, &runtime.IntVal{V: 0})

	popped := env.Pop(2)
	require.Equal(t, []string{"a"}, popped.Names())
}

func TestEnv_Set_BothOrNeither(t *testing.T) {
	var env *runtime.Env
	env = env.Extend("x", &runtime.IntVal{V: 1}, &runtime.IntVal{V: 1})

	ok := env.Set("x", &runtime.IntVal{V: 9}, &runtime.IntVal{V: 0})
	require.True(t, ok)

	v, _ := env.Lookup("x")
	d, _ := env.LookupDeriv("x")
	require.Equal(t, int64(9), v.(*runtime.IntVal).V)
	require.Equal(t, int64(0), d.(*runtime.IntVal).V)

	ok = env.Set("never-bound", &runtime.IntVal{V: 1}, &runtime.IntVal{V: 1})
	require.False(t, ok)
}

func TestEnv_NamesAndDepth(t *testing.T) {
	var env *runtime.Env
	env = env.Extend("x", &runtime.IntVal{V: 1}, &runtime.IntVal{V: 0})
	env = env.Extend("y", &runtime.IntVal{V: 2}, &runtime.IntVal{V: 0})

	require.Equal(t, 2, env.Depth())
	require.Equal(t, []string{"y", "x"}, env.Names())
}

func TestRebindLambdaEnvs(t *testing.T) {
	var env *runtime.Env
	env = env.Extend("f", &runtime.IntVal{V: 0}, &runtime.IntVal{V: 0})

	lv := &runtime.LambdaVal{Params: []string{"y"}, Env: nil}
	runtime.RebindLambdaEnvs([]*runtime.LambdaVal{lv}, env)
	require.Same(t, env, lv.Env)
}
