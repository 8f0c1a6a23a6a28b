package hashclass

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestCompileAndCallAdd(t *testing.T) {
	script := compileScript(t, `function add(a, b) { return a + b }`)
	result, err := script.Call(context.Background(), "add", []Value{NewInt(2), NewInt(3)}, CallOptions{})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if result.Kind() != KindInt || result.Int() != 5 {
		t.Fatalf("expected 5, got %s", result)
	}
}

func TestCallMissingFunction(t *testing.T) {
	script := compileScript(t, `let x = 1`)
	_, err := script.Call(context.Background(), "nope", nil, CallOptions{})
	if !errors.Is(err, ErrFunctionNotFound) {
		t.Fatalf("expected ErrFunctionNotFound, got %v", err)
	}
}

func TestRunCompletionValue(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`1 + 2`, "3"},
		{`7 / 2`, "3.5"},
		{`"a" + 1`, "a1"},
		{`let x = 4; x * 2; let y = 1`, "8"},
		{`[1, "a", [true]]`, `[1, "a", [true]]`},
		{`({ a: 1, b: "two" })`, `{ a: 1, b: "two" }`},
		{`class Point {}`, "undefined"},
		{`class Point {}; Point`, "[class Point]"},
		{`function f() {}; f`, "[Function f]"},
		{`typeof null`, "object"},
		{`1 < 2 && "yes" || "no"`, "yes"},
		{`let i = 0; while (i < 3) { i += 1 }; i`, "3"},
		{`if (false) { 1 } else if (true) { 2 } else { 3 }`, "2"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := runScript(t, tt.source).String(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGlobalsAccessAndExport(t *testing.T) {
	script := compileScript(t, `let total = base.amount + 1`)
	globals := map[string]Value{"base": NewPlainObject(map[string]Value{"amount": NewInt(41)})}
	if _, err := script.Run(context.Background(), CallOptions{Globals: globals, ExportGlobals: true}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := globals["total"]; got.Int() != 42 {
		t.Fatalf("expected exported total 42, got %s", got)
	}
}

func TestExportGlobalsKeepsReassignedSeeds(t *testing.T) {
	script := compileScript(t, `count = count + 1`)
	globals := map[string]Value{"count": NewInt(1)}
	if _, err := script.Run(context.Background(), CallOptions{Globals: globals, ExportGlobals: true}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := globals["count"]; got.Int() != 2 {
		t.Fatalf("expected count 2, got %s", got)
	}
}

func TestPrintWritesToOutput(t *testing.T) {
	var out bytes.Buffer
	engine := MustNewEngine(Config{Output: &out})
	script, err := engine.Compile(`print("a", 1, [2]); print()`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := script.Run(context.Background(), CallOptions{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "a 1 [2]\n\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	var override bytes.Buffer
	if _, err := script.Run(context.Background(), CallOptions{Output: &override}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if override.String() != "a 1 [2]\n\n" {
		t.Fatalf("unexpected override output %q", override.String())
	}
}

func TestRegisterBuiltin(t *testing.T) {
	engine := MustNewEngine(Config{})
	engine.RegisterBuiltin("double", func(exec *Execution, this Value, args []Value) (Value, error) {
		if len(args) != 1 || args[0].Kind() != KindInt {
			return NewUndefined(), newTypeError("double expects an integer")
		}
		return NewInt(args[0].Int() * 2), nil
	})
	script, err := engine.Compile(`double(21)`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	result, err := script.Run(context.Background(), CallOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Int() != 42 {
		t.Fatalf("expected 42, got %s", result)
	}

	script, _ = engine.Compile(`double("x")`)
	_, err = script.Run(context.Background(), CallOptions{})
	requireErrorType(t, err, "TypeError", "double expects an integer")
}

func TestStepQuotaExceeded(t *testing.T) {
	engine := MustNewEngine(Config{StepQuota: 100})
	script, err := engine.Compile(`while (true) {}`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	_, err = script.Run(context.Background(), CallOptions{})
	if !errors.Is(err, ErrStepQuotaExceeded) {
		t.Fatalf("expected step quota error, got %v", err)
	}
	if ErrorType(err) != "RuntimeError" {
		t.Fatalf("expected RuntimeError classification, got %s", ErrorType(err))
	}
}

func TestStepQuotaCannotBeCaught(t *testing.T) {
	engine := MustNewEngine(Config{StepQuota: 200})
	script, err := engine.Compile(`assertThrows("RuntimeError", function() { while (true) {} })`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	_, err = script.Run(context.Background(), CallOptions{})
	if !errors.Is(err, ErrStepQuotaExceeded) {
		t.Fatalf("expected step quota error to escape assertThrows, got %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	script := compileScript(t, `while (true) {}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := script.Run(ctx, CallOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRecursionLimit(t *testing.T) {
	engine := MustNewEngine(Config{RecursionLimit: 10})
	script, err := engine.Compile(`function down(n) { return down(n + 1) }
down(0)`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	_, err = script.Run(context.Background(), CallOptions{})
	requireErrorType(t, err, "RuntimeError", "recursion depth exceeded (limit 10)")
}

func TestRecursionLimitCoversFieldInitializers(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"implicit base constructor", `class C { #a = new C() }
new C()
1`},
		{"explicit base constructor", `class C { #a = new C(); constructor() {} }
new C()
1`},
		{"implicit derived constructor", `class B {}
class C extends B { #a = new C() }
new C()
1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := MustNewEngine(Config{StepQuota: 50_000_000, RecursionLimit: 64})
			script, err := engine.Compile(tt.source)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			_, err = script.Run(context.Background(), CallOptions{})
			requireErrorType(t, err, "RuntimeError", "recursion depth exceeded (limit 64)")
		})
	}
}

func TestStepsCountsEvaluationWork(t *testing.T) {
	engine := MustNewEngine(Config{})
	var seen []int
	engine.RegisterBuiltin("steps", func(exec *Execution, this Value, args []Value) (Value, error) {
		seen = append(seen, exec.Steps())
		return NewUndefined(), nil
	})
	script, err := engine.Compile(`steps()
let i = 0
while (i < 10) { i += 1 }
steps()`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := script.Run(context.Background(), CallOptions{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(seen) != 2 || seen[0] <= 0 || seen[1]-seen[0] < 10 {
		t.Fatalf("expected steps to grow by at least one per loop iteration, got %v", seen)
	}
}

func TestRuntimeErrorFramesAndCodeFrame(t *testing.T) {
	err := runScriptErr(t, `function inner(o) {
  return o.missing.deeper
}
function outer() { return inner({}) }
outer()`)
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("expected RuntimeError, got %T", err)
	}
	if runtimeErr.Type != "TypeError" {
		t.Fatalf("expected TypeError, got %s", runtimeErr.Type)
	}
	if len(runtimeErr.Frames) < 3 || runtimeErr.Frames[0].Function != "inner" || runtimeErr.Frames[0].Pos.Line != 2 {
		t.Fatalf("unexpected frames: %+v", runtimeErr.Frames)
	}
	msg := err.Error()
	for _, want := range []string{"TypeError: cannot read properties of undefined (reading 'deeper')", "--> line 2", "at inner", "at outer"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in:\n%s", want, msg)
		}
	}
	if ErrorMessage(err) != "cannot read properties of undefined (reading 'deeper')" {
		t.Fatalf("unexpected message %q", ErrorMessage(err))
	}
}

func TestErrorTypeClassification(t *testing.T) {
	if got := ErrorType(nil); got != "" {
		t.Fatalf("expected empty type for nil, got %q", got)
	}
	if got := ErrorType(errors.New("host")); got != "RuntimeError" {
		t.Fatalf("expected RuntimeError for host errors, got %q", got)
	}
	requireErrorType(t, runScriptErr(t, `missing`), "ReferenceError", "missing is not defined")
	requireErrorType(t, runScriptErr(t, `const c = 1; c = 2`), "TypeError", "assignment to constant variable 'c'")
	requireErrorType(t, runScriptErr(t, `undeclared = 1`), "ReferenceError", "undeclared is not defined")
	requireErrorType(t, runScriptErr(t, `assert(false, "boom")`), "AssertionError", "boom")
	requireErrorType(t, runScriptErr(t, `assertEqual(1, 2)`), "AssertionError", "expected 2, got 1")
	requireErrorType(t, runScriptErr(t, `assertThrows("TypeError", function() { return 1 })`), "AssertionError", "expected TypeError to be thrown")
	requireErrorType(t, runScriptErr(t, `assertThrows("TypeError", function() { return missing })`), "AssertionError", "expected TypeError, got ReferenceError")
	requireErrorType(t, runScriptErr(t, `let n = 1; n()`), "TypeError", "n is not a function")
	requireErrorType(t, runScriptErr(t, `1 - "a"`), "TypeError", "unsupported operand types")
}

func TestEngineConfigValidation(t *testing.T) {
	if _, err := NewEngine(Config{StepQuota: -1}); err == nil {
		t.Fatalf("expected error for negative step quota")
	}
	cfg := MustNewEngine(Config{}).Config()
	if cfg.StepQuota != 50000 || cfg.RecursionLimit != 64 || cfg.Output == nil {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConcurrentRunsAreIsolated(t *testing.T) {
	script := compileScript(t, `
class Counter {
  static #runs = 0
  static bump() { Counter.#runs += 1; return Counter.#runs }
}
Counter.bump()
Counter.bump()
`)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := script.Run(context.Background(), CallOptions{})
			if err != nil {
				errs <- err
				return
			}
			if result.Int() != 2 {
				errs <- errors.New("expected each run to count from zero, got " + result.String())
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
