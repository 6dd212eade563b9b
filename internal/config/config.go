// Package config loads the CLI's initial paired environment from a small
// YAML seed file — the "configuration" leg of the ambient stack spec.md
// itself never mentions. The teacher repo has no config package of its
// own, so this follows funvibe-funxy's internal/ext.LoadConfig/ParseConfig
// split (read bytes, then decode with gopkg.in/yaml.v3 into a single
// focused struct) rather than a generic key-value store.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/calclang/calc/internal/runtime"
)

// Seed describes Γ₀/Γ₀′ for one `calc run`/`calc derive` invocation:
//
//	variable: x
//	bindings:
//	  x: 3
//	  y: 5
//	derivatives:
//	  x: 1
//	  y: 0
type Seed struct {
	Variable    string             `yaml:"variable"`
	Bindings    map[string]float64 `yaml:"bindings"`
	Derivatives map[string]float64 `yaml:"derivatives"`
}

// Load reads path and parses its contents as a Seed.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}
	return Parse(data, path)
}

// Parse decodes YAML seed content already in memory. path is used only to
// annotate error messages, mirroring how funvibe-funxy's ParseConfig keeps
// the filesystem read and the decode step separately testable.
func Parse(data []byte, path string) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}
	if err := s.validate(path); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Seed) validate(path string) error {
	if s.Variable == "" {
		return errors.Errorf("config: %s: variable is required", path)
	}
	if _, ok := s.Bindings[s.Variable]; !ok {
		return errors.Errorf("config: %s: bindings must include the differentiation variable %q", path, s.Variable)
	}
	for name := range s.Derivatives {
		if _, ok := s.Bindings[name]; !ok {
			return errors.Errorf("config: %s: derivatives[%s] has no matching bindings entry", path, name)
		}
	}
	return nil
}

// Names returns every bound name, the shape the scope validator's initial
// V set and the engine's initial environment both need.
func (s *Seed) Names() []string {
	names := make([]string, 0, len(s.Bindings))
	for name := range s.Bindings {
		names = append(names, name)
	}
	return names
}

// Env builds Γ₀/Γ₀′ as a single paired runtime.Env: every binding gets its
// value, and its derivative defaults to 0 unless Derivatives overrides it —
// except the differentiation variable itself, which seeds to 1 per spec.md
// §6's identity-seed convention, even when the seed file omits it.
func (s *Seed) Env() *runtime.Env {
	var env *runtime.Env
	for name, v := range s.Bindings {
		d, ok := s.Derivatives[name]
		if !ok {
			if name == s.Variable {
				d = 1
			} else {
				d = 0
			}
		}
		env = env.Extend(name, numVal(v), numVal(d))
	}
	return env
}

// numVal normalizes a YAML-decoded float64 to an IntVal when it carries no
// fractional part, so Γ₀ built from a seed file behaves like Γ₀ built by
// the parser from an IntLit (e.g. "3" differentiates the same whether it
// came from source or from a seed file's bindings).
func numVal(v float64) runtime.Value {
	if v == float64(int64(v)) {
		return &runtime.IntVal{V: int64(v)}
	}
	return &runtime.RealVal{V: v}
}
