// Package diag provides the structured runtime/type/scope error taxonomy of
// spec.md §7, plus a source-line-annotated CompilerError formatter for the
// CLI. Core engine packages (eval, diff, scope) return these as plain Go
// errors — "errors are values, not exceptions" (spec.md §7) — and never
// print them; only cmd/calc does that, adding context with fmt.Errorf's %w.
// Wrap below offers the same via github.com/pkg/errors but has no callers.
package diag

import (
	"fmt"
	"strings"

	"github.com/calclang/calc/internal/token"
	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a diagnostic the way spec.md §6 requires:
// {kind: "runtime" | "type" | "scope", message, offending}.
type Kind string

const (
	KindRuntime Kind = "runtime"
	KindType    Kind = "type"
	KindScope   Kind = "scope"
)

// stringer is satisfied by any ast.Exp without importing the ast package
// (which would create diag <-> ast <-> diff import cycles).
type stringer interface{ String() string }

// NonDifferentiable is raised when a node kind lacks a differentiation rule.
type NonDifferentiable struct {
	Offending stringer
}

func (e *NonDifferentiable) Error() string {
	return fmt.Sprintf("expression '%s' is non-differentiable", e.Offending.String())
}
func (e *NonDifferentiable) Kind() Kind { return KindRuntime }

// TypeMismatch is raised when a sub-evaluation produces the wrong value kind.
type TypeMismatch struct {
	Offending stringer
	Expected  string
	Got       string
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch in '%s': expected %s, got %s", e.Offending.String(), e.Expected, e.Got)
}
func (e *TypeMismatch) Kind() Kind { return KindType }

// UnboundDerivative is raised when Γ′ lacks a name the expression references.
type UnboundDerivative struct {
	Name string
}

func (e *UnboundDerivative) Error() string {
	return fmt.Sprintf("derivative of variable '%s' is not known within this context", e.Name)
}
func (e *UnboundDerivative) Kind() Kind { return KindRuntime }

// EvalFailure wraps an error the evaluator raised against a synthesized or
// sub-expression (arithmetic domain error, index out of range, ...).
type EvalFailure struct {
	Offending stringer
	Cause     error
}

func (e *EvalFailure) Error() string {
	return fmt.Sprintf("evaluation of '%s' failed: %s", e.Offending.String(), e.Cause.Error())
}
func (e *EvalFailure) Unwrap() error { return e.Cause }
func (e *EvalFailure) Kind() Kind    { return KindRuntime }

// ShapeError is raised for matrix/list structural mismatches.
type ShapeError struct {
	Offending stringer
	Reason    string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape error in '%s': %s", e.Offending.String(), e.Reason)
}
func (e *ShapeError) Kind() Kind { return KindRuntime }

// ScopeError is raised by the scope validator (spec.md §4.2) for
// redefinitions; unbound references are not reported here.
type ScopeError struct {
	Name    string
	Message string
	Pos     token.Position
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("%s (at %s)", e.Message, e.Pos)
}
func (e *ScopeError) Kind() Kind { return KindScope }

// Wrap attaches CLI-level context to a core error without the core packages
// themselves depending on pkg/errors.
func Wrap(err error, context string) error {
	return pkgerrors.Wrap(err, context)
}

// CompilerError is a position-anchored, source-context-annotated error used
// by the CLI to render parser and scope errors with a caret under the
// offending column, grounded on the teacher's errors.CompilerError
// (errors/errors_test.go: NewCompilerError / Format / FormatWithContext).
type CompilerError struct {
	Pos     token.Position
	Message string
	Source  string
	File    string
}

// NewCompilerError constructs a CompilerError.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders a single-line-of-context error, optionally in color.
func (e *CompilerError) Format(color bool) string {
	return e.FormatWithContext(1, color)
}

// FormatWithContext renders the error with contextLines of surrounding
// source on either side and a caret under the offending column. In color
// mode the error line is bold, the caret is bold red, context lines are
// dimmed, and the message is bold, matching the teacher's errors.CompilerError.
func (e *CompilerError) FormatWithContext(contextLines int, color bool) string {
	var b strings.Builder

	if e.File != "" {
		fmt.Fprintf(&b, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&b, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	lines := strings.Split(e.Source, "\n")
	start := e.Pos.Line - contextLines
	if start < 1 {
		start = 1
	}
	end := e.Pos.Line + contextLines
	if end > len(lines) {
		end = len(lines)
	}

	for ln := start; ln <= end; ln++ {
		lineNumStr := fmt.Sprintf("%4d | ", ln)
		if ln == e.Pos.Line {
			if color {
				b.WriteString("\033[1m") // Bold
			}
			b.WriteString(lineNumStr)
			b.WriteString(e.sourceLine(lines, ln))
			if color {
				b.WriteString("\033[0m") // Reset
			}
			b.WriteString("\n")

			col := e.Pos.Column
			if col < 1 {
				col = 1
			}
			b.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
			if color {
				b.WriteString("\033[1;31m") // Red bold
			}
			b.WriteString("^")
			if color {
				b.WriteString("\033[0m") // Reset
			}
			b.WriteString("\n")
		} else {
			if color {
				b.WriteString("\033[2m") // Dim
			}
			b.WriteString(lineNumStr)
			b.WriteString(e.sourceLine(lines, ln))
			if color {
				b.WriteString("\033[0m") // Reset
			}
			b.WriteString("\n")
		}
	}

	if color {
		b.WriteString("\033[1m") // Bold
	}
	b.WriteString(e.Message)
	if color {
		b.WriteString("\033[0m") // Reset
	}
	return b.String()
}

func (e *CompilerError) sourceLine(lines []string, n int) string {
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FormatErrors renders a slice of errors, one CompilerError block per
// error, separated by blank lines.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&b, "[Error %d of %d]\n", i+1, len(errs))
		b.WriteString(e.Format(color))
		if i < len(errs)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
