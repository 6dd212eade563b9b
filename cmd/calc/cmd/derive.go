package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calclang/calc/internal/config"
	"github.com/calclang/calc/internal/diff"
)

var (
	deriveEvalExpr   string
	deriveVar        string
	deriveConfigPath string
)

var deriveCmd = &cobra.Command{
	Use:   "derive [file]",
	Short: "Symbolically differentiate a calc expression",
	Long: `Differentiate a calc expression with respect to --var at the
bindings supplied by --config, printing dE/dvar.

Examples:
  calc derive program.calc --var x --config seed.yaml
  calc derive -e "x * x" --var x --config seed.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDerive,
}

func init() {
	rootCmd.AddCommand(deriveCmd)
	deriveCmd.Flags().StringVarP(&deriveEvalExpr, "eval", "e", "", "differentiate inline source instead of reading from file")
	deriveCmd.Flags().StringVar(&deriveVar, "var", "", "the variable to differentiate with respect to")
	deriveCmd.Flags().StringVar(&deriveConfigPath, "config", "", "YAML seed file binding Γ₀/Γ₀′ for this invocation")
	deriveCmd.MarkFlagRequired("config")
}

func runDerive(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(deriveEvalExpr, args)
	if err != nil {
		return err
	}
	inv := newInvocation(source, filename)

	seed, err := config.Load(deriveConfigPath)
	if err != nil {
		return err
	}

	x := deriveVar
	if x == "" {
		x = seed.Variable
	}

	env := seed.Env()

	e, err := inv.parseAndValidate(seed.Names())
	if err != nil {
		return err
	}

	result, err := diff.Derivative(e, x, env)
	if err != nil {
		inv.reportError(err)
		return fmt.Errorf("differentiation failed: %w", err)
	}

	fmt.Printf("d/d%s = %s\n", x, result.String())
	if verbose {
		fmt.Fprintf(os.Stderr, "run=%s\n", inv.id)
	}
	return nil
}
