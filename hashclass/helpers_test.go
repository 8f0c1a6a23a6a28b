package hashclass

import (
	"context"
	"strings"
	"testing"
)

func compileScript(t testing.TB, source string) *Script {
	t.Helper()
	engine := MustNewEngine(Config{})
	script, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return script
}

func compileError(t testing.TB, source string) error {
	t.Helper()
	engine := MustNewEngine(Config{})
	_, err := engine.Compile(source)
	if err == nil {
		t.Fatalf("expected compile error for:\n%s", source)
	}
	return err
}

func runScript(t testing.TB, source string) Value {
	t.Helper()
	result, err := compileScript(t, source).Run(context.Background(), CallOptions{})
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	return result
}

func runScriptErr(t testing.TB, source string) error {
	t.Helper()
	_, err := compileScript(t, source).Run(context.Background(), CallOptions{})
	if err == nil {
		t.Fatalf("expected runtime error for:\n%s", source)
	}
	return err
}

func requireErrorType(t testing.TB, err error, kind string, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s containing %q, got nil", kind, want)
	}
	if got := ErrorType(err); got != kind {
		t.Fatalf("expected %s, got %s: %v", kind, got, err)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error containing %q, got: %v", want, err)
	}
}
