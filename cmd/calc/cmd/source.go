package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/calclang/calc/internal/ast"
	"github.com/calclang/calc/internal/diag"
	"github.com/calclang/calc/internal/lexer"
	"github.com/calclang/calc/internal/parser"
	"github.com/calclang/calc/internal/scope"
)

// invocation carries the data every run/derive command shares: the source
// text, its origin, and a run ID correlating diagnostics to one CLI
// invocation, sized down from a long-running interpreter's per-request
// tagging to "one CLI invocation, one ID."
type invocation struct {
	id       uuid.UUID
	source   string
	filename string
	pretty   bool // source-context caret formatting vs. one-line machine form
}

func newInvocation(source, filename string) *invocation {
	return &invocation{
		id:       uuid.New(),
		source:   source,
		filename: filename,
		pretty:   isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// readSource resolves the run/derive commands' shared "-e expr or file arg"
// input convention, mirroring the teacher's runScript input handling.
func readSource(evalExpr string, args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

// parseAndValidate lexes, parses, and scope-validates source, reporting
// every failure through inv's diagnostic formatter before returning.
func (inv *invocation) parseAndValidate(initial []string) (ast.Exp, error) {
	e, errs := parser.ParseProgram(lexer.New(inv.source))
	if len(errs) > 0 {
		inv.reportParseErrors(errs)
		return nil, fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if err := scope.Validate(e, initial); err != nil {
		inv.reportError(err)
		return nil, fmt.Errorf("scope validation failed: %w", err)
	}

	return e, nil
}

func (inv *invocation) reportParseErrors(errs []*parser.Error) {
	compilerErrs := make([]*diag.CompilerError, len(errs))
	for i, e := range errs {
		compilerErrs[i] = diag.NewCompilerError(e.Pos, e.Message, inv.source, inv.filename)
	}
	inv.printCompilerErrors(compilerErrs)
}

func (inv *invocation) reportError(err error) {
	var se *diag.ScopeError
	if errors.As(err, &se) {
		ce := diag.NewCompilerError(se.Pos, se.Message, inv.source, inv.filename)
		inv.printCompilerErrors([]*diag.CompilerError{ce})
		return
	}
	if inv.pretty {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "error=%q run=%s\n", err.Error(), inv.id)
	}
}

func (inv *invocation) printCompilerErrors(errs []*diag.CompilerError) {
	if inv.pretty {
		fmt.Fprint(os.Stderr, diag.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "error=%q pos=%s run=%s\n", e.Message, e.Pos, inv.id)
	}
}
