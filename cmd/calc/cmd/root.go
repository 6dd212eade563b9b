// Package cmd implements the calc CLI's cobra command tree, grounded on
// the teacher's cmd/dwscript/cmd package.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "calc — a symbolic differentiation interpreter",
	Long: `calc evaluates and symbolically differentiates expressions in a
small functional language: arithmetic, lists, matrices, lambdas, and
explicit let/for/while binders, each paired with a derivative rule.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
