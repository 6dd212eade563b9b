package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func TestRunRun_InlineExpression(t *testing.T) {
	oldExpr := runEvalExpr
	defer func() { runEvalExpr = oldExpr }()
	runEvalExpr = "1 + 2 * 3"

	output, err := captureStdout(t, func() error { return runRun(runCmd, nil) })
	if err != nil {
		t.Fatalf("runRun failed: %v", err)
	}
	if strings.TrimSpace(output) != "7" {
		t.Errorf("expected 7, got %q", output)
	}
}

func TestRunRun_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.calc")
	if err := os.WriteFile(path, []byte("let x = 3 in x * x"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldExpr := runEvalExpr
	defer func() { runEvalExpr = oldExpr }()
	runEvalExpr = ""

	output, err := captureStdout(t, func() error { return runRun(runCmd, []string{path}) })
	if err != nil {
		t.Fatalf("runRun failed: %v", err)
	}
	if strings.TrimSpace(output) != "9" {
		t.Errorf("expected 9, got %q", output)
	}
}

func TestRunRun_ParseError(t *testing.T) {
	oldExpr := runEvalExpr
	defer func() { runEvalExpr = oldExpr }()
	runEvalExpr = "1 + "

	_, err := captureStdout(t, func() error { return runRun(runCmd, nil) })
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestRunRun_WithConfigBindings(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(cfgPath, []byte("variable: x\nbindings:\n  x: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldExpr, oldCfg := runEvalExpr, runConfigPath
	defer func() { runEvalExpr, runConfigPath = oldExpr, oldCfg }()
	runEvalExpr = "x * x"
	runConfigPath = cfgPath

	output, err := captureStdout(t, func() error { return runRun(runCmd, nil) })
	if err != nil {
		t.Fatalf("runRun failed: %v", err)
	}
	if strings.TrimSpace(output) != "16" {
		t.Errorf("expected 16, got %q", output)
	}
}

func TestRunDerive_InlineExpression(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(cfgPath, []byte("variable: x\nbindings:\n  x: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldExpr, oldVar, oldCfg := deriveEvalExpr, deriveVar, deriveConfigPath
	defer func() { deriveEvalExpr, deriveVar, deriveConfigPath = oldExpr, oldVar, oldCfg }()
	deriveEvalExpr = "x * x"
	deriveVar = "x"
	deriveConfigPath = cfgPath

	output, err := captureStdout(t, func() error { return runDerive(deriveCmd, nil) })
	if err != nil {
		t.Fatalf("runDerive failed: %v", err)
	}
	if !strings.Contains(output, "6") {
		t.Errorf("expected derivative 6 in output, got %q", output)
	}
}

func TestRunDerive_MissingConfig(t *testing.T) {
	oldExpr, oldCfg := deriveEvalExpr, deriveConfigPath
	defer func() { deriveEvalExpr, deriveConfigPath = oldExpr, oldCfg }()
	deriveEvalExpr = "x * x"
	deriveConfigPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := captureStdout(t, func() error { return runDerive(deriveCmd, nil) })
	if err == nil {
		t.Fatal("expected an error for missing config file")
	}
}
