// Command calc is the entry point for the calc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/calclang/calc/cmd/calc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
