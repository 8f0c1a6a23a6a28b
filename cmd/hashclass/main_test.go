package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"hashclass", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	for _, args := range [][]string{{"hashclass"}, {"hashclass", "unknown"}} {
		err := runCLI(args)
		if err == nil || !strings.Contains(err.Error(), "invalid command") {
			t.Fatalf("runCLI(%v): expected invalid command error, got %v", args, err)
		}
	}
}

func TestREPLRequiresTerminal(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer func() {
		os.Stdin = orig
		_ = r.Close()
		_ = w.Close()
	}()
	os.Stdin = r

	err = runCLI([]string{"hashclass", "repl"})
	if err == nil || !strings.Contains(err.Error(), "not a terminal") {
		t.Fatalf("expected terminal error, got %v", err)
	}
}

func TestRunCommandCheckOnly(t *testing.T) {
	scriptPath := writeScript(t, `class A { #x = 1 }`)
	if err := runCommand([]string{"-check", scriptPath}); err != nil {
		t.Fatalf("runCommand check failed: %v", err)
	}
}

func TestRunCommandPrintsCompletionValue(t *testing.T) {
	scriptPath := writeScript(t, `
class Counter {
  #n = 0
  inc() { this.#n += 1; return this.#n }
}
const c = new Counter()
c.inc()
print("counted")
c.inc()
`)
	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if out != "counted\n2\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestRunCommandInvokesFunction(t *testing.T) {
	scriptPath := writeScript(t, `function greet(name) { return "hello " + name }`)
	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-function", "greet", scriptPath, "ada"})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "hello ada" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestRunCommandErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   func(t *testing.T) []string
		expect string
	}{
		{"missing path", func(*testing.T) []string { return nil }, "script path required"},
		{"syntax error", func(t *testing.T) []string {
			return []string{writeScript(t, `class A { #x; #x }`)}
		}, "compile failed"},
		{"runtime error", func(t *testing.T) []string {
			return []string{writeScript(t, `class A { #x = 1; static read(o) { return o.#x } }
A.read({})`)}
		}, "TypeError"},
		{"step quota", func(t *testing.T) []string {
			return []string{"-steps", "50", writeScript(t, `while (true) {}`)}
		}, "execution failed"},
		{"negative quota", func(t *testing.T) []string {
			return []string{"-steps", "-1", writeScript(t, `1`)}
		}, "step quota"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCommand(tt.args(t))
			if err == nil || !strings.Contains(err.Error(), tt.expect) {
				t.Fatalf("expected error containing %q, got %v", tt.expect, err)
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	good := writeScript(t, `class A { get #x() { return 1 } set #x(v) {} }`)
	bad := writeScript(t, `class A { m() { return this.#missing } }`)

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{good})
	})
	if err != nil || !strings.Contains(out, "ok") {
		t.Fatalf("expected clean check, got %q, %v", out, err)
	}

	out, err = captureStdout(t, func() error {
		return checkCommand([]string{good, bad})
	})
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected check failure, got %v", err)
	}
	if !strings.Contains(out, "#missing is not defined") {
		t.Fatalf("expected diagnostic in output, got %q", out)
	}
}

func TestConformCommandBundledSuites(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return conformCommand([]string{filepath.Join("..", "..", "conformance", "testdata")})
	})
	if err != nil {
		t.Fatalf("conformCommand failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "passed") || strings.Contains(out, "failed") {
		t.Fatalf("unexpected report: %q", out)
	}
}

func TestConformCommandReportsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	suite := `name: broken
cases:
  - name: wrong sum
    source: "1 + 1"
    expect:
      value: "3"
  - name: right sum
    source: "1 + 2"
    expect:
      value: "3"
`
	if err := os.WriteFile(path, []byte(suite), 0o644); err != nil {
		t.Fatalf("write suite: %v", err)
	}
	out, err := captureStdout(t, func() error {
		return conformCommand([]string{"-v", path})
	})
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected conformance failure, got %v", err)
	}
	for _, want := range []string{"wrong sum", "expected value 3, got 2", "right sum", "1 failed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestConformCommandRequiresPath(t *testing.T) {
	err := conformCommand(nil)
	if err == nil || !strings.Contains(err.Error(), "suite path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.hc")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
