package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calclang/calc/internal/config"
	"github.com/calclang/calc/internal/diff"
	"github.com/calclang/calc/internal/eval"
	"github.com/calclang/calc/internal/runtime"
)

var (
	runEvalExpr   string
	runConfigPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate a calc expression",
	Long: `Evaluate a calc expression from a file or inline source.

Examples:
  calc run program.calc
  calc run -e "let f = fun(y) -> y * y in f(3)"
  calc run -e "x * x" --config seed.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "YAML seed file binding Γ₀/Γ₀′ for this invocation")
}

func runRun(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(runEvalExpr, args)
	if err != nil {
		return err
	}
	inv := newInvocation(source, filename)

	var env *runtime.Env
	var initial []string
	if runConfigPath != "" {
		seed, err := config.Load(runConfigPath)
		if err != nil {
			return err
		}
		env = seed.Env()
		initial = seed.Names()
	}

	e, err := inv.parseAndValidate(initial)
	if err != nil {
		return err
	}

	result, err := eval.Eval(e, env, diff.Derivative)
	if err != nil {
		inv.reportError(err)
		return fmt.Errorf("evaluation failed: %w", err)
	}

	fmt.Println(result.String())
	if verbose {
		fmt.Fprintf(os.Stderr, "run=%s\n", inv.id)
	}
	return nil
}
