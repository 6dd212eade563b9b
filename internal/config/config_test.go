package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calclang/calc/internal/config"
	"github.com/calclang/calc/internal/runtime"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	data := []byte(`
variable: x
bindings:
  x: 3
  y: 5
derivatives:
  x: 1
  y: 0
`)
	s, err := config.Parse(data, "test.yaml")
	require.NoError(t, err)
	require.Equal(t, "x", s.Variable)
	require.Equal(t, 3.0, s.Bindings["x"])
	require.Equal(t, 0.0, s.Derivatives["y"])
}

func TestParse_MissingVariable(t *testing.T) {
	data := []byte(`bindings: {x: 3}`)
	_, err := config.Parse(data, "test.yaml")
	require.Error(t, err)
}

func TestParse_VariableNotBound(t *testing.T) {
	data := []byte(`
variable: x
bindings:
  y: 5
`)
	_, err := config.Parse(data, "test.yaml")
	require.Error(t, err)
}

func TestParse_DerivativeWithoutBinding(t *testing.T) {
	data := []byte(`
variable: x
bindings:
  x: 3
derivatives:
  z: 1
`)
	_, err := config.Parse(data, "test.yaml")
	require.Error(t, err)
}

func TestSeed_Names(t *testing.T) {
	s := &config.Seed{Variable: "x", Bindings: map[string]float64{"x": 3, "y": 5}}
	names := s.Names()
	require.ElementsMatch(t, []string{"x", "y"}, names)
}

func TestSeed_Env_DefaultsAndIdentitySeed(t *testing.T) {
	s := &config.Seed{
		Variable: "x",
		Bindings: map[string]float64{"x": 3, "y": 5},
	}
	env := s.Env()

	xv, ok := env.Lookup("x")
	require.True(t, ok)
	require.Equal(t, int64(3), xv.(*runtime.IntVal).V)

	xd, ok := env.LookupDeriv("x")
	require.True(t, ok)
	require.Equal(t, 1.0, xd.(runtime.NumericValue).AsFloat())

	yd, ok := env.LookupDeriv("y")
	require.True(t, ok)
	require.Equal(t, 0.0, yd.(runtime.NumericValue).AsFloat())
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variable: x\nbindings:\n  x: 2\n"), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2.0, s.Bindings["x"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
