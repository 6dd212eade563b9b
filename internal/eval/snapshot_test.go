package eval_test

import (
	"testing"

	"github.com/calclang/calc/internal/diff"
	"github.com/calclang/calc/internal/eval"
	"github.com/calclang/calc/internal/lexer"
	"github.com/calclang/calc/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestEval_Fixtures snapshot-tests the printed result of evaluating a small
// corpus of representative calc programs, the way the teacher's
// internal/interp fixture suite snapshots interpreter output for programs
// without a hand-authored expected file (internal/interp/fixture_test.go's
// snaps.MatchSnapshot call).
func TestEval_Fixtures(t *testing.T) {
	fixtures := []struct {
		name  string
		input string
	}{
		{"arithmetic", "2 + 3 * 4"},
		{"let_lambda", "let f = fun(y) -> y * y in f(5)"},
		{"list_map", "map(fun(y) -> y * y, [1, 2, 3])"},
		{"fold_sum", "fold([1, 2, 3, 4], fun(a, b) -> a + b, 0)"},
		{"matrix", "matrix([[1, 2], [3, 4]])"},
		{"for_loop", "for i in [1, 2, 3] do i * i"},
		{"magnitude", "|0 - 5|"},
	}

	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			e, errs := parser.ParseProgram(lexer.New(f.input))
			require.Empty(t, errs)

			result, err := eval.Eval(e, nil, diff.Derivative)
			require.NoError(t, err)

			snaps.MatchSnapshot(t, f.name, result.String())
		})
	}
}
