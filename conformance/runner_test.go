package conformance

import (
	"context"
	"strings"
	"testing"

	"github.com/mgomes/hashclass/hashclass"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	engine, err := hashclass.NewEngine(hashclass.Config{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewRunner(engine)
}

func TestBundledSuitesPass(t *testing.T) {
	suites, err := LoadSuites("testdata")
	if err != nil {
		t.Fatalf("LoadSuites: %v", err)
	}
	runner := newTestRunner(t)
	for _, suite := range suites {
		t.Run(suite.Name, func(t *testing.T) {
			report := runner.Run(context.Background(), suite)
			for _, res := range report.Results {
				if !res.Passed {
					t.Errorf("%s: %s", res.Name, res.Detail)
				}
			}
			if report.Failed() != 0 || report.Passed() != len(suite.Cases) {
				t.Fatalf("expected all %d cases to pass, %d failed", len(suite.Cases), report.Failed())
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestRunCaseDetectsMismatches(t *testing.T) {
	runner := newTestRunner(t)
	tests := []struct {
		name string
		c    Case
		want string
	}{
		{
			name: "wrong value",
			c:    Case{Name: "v", Source: "1 + 1", Expect: Expectation{Value: strPtr("3")}},
			want: "expected value 3, got 2",
		},
		{
			name: "missing error",
			c:    Case{Name: "e", Source: "1", Expect: Expectation{Error: "TypeError"}},
			want: "expected TypeError, completed with 1",
		},
		{
			name: "wrong error type",
			c:    Case{Name: "t", Source: "missing", Expect: Expectation{Error: "TypeError"}},
			want: "expected TypeError, got ReferenceError",
		},
		{
			name: "wrong message",
			c:    Case{Name: "m", Source: "missing", Expect: Expectation{Error: "ReferenceError", Message: "nope"}},
			want: `message containing "nope"`,
		},
		{
			name: "unexpected error",
			c:    Case{Name: "u", Source: "undefined.x", Expect: Expectation{Value: strPtr("1")}},
			want: "unexpected TypeError",
		},
		{
			name: "syntax error",
			c:    Case{Name: "s", Source: "class {", Expect: Expectation{}},
			want: "unexpected SyntaxError",
		},
		{
			name: "wrong output",
			c:    Case{Name: "o", Source: `print("a")`, Expect: Expectation{Output: strPtr("b\n")}},
			want: `expected output "b", got "a"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runner.RunCase(context.Background(), tt.c)
			if res.Passed {
				t.Fatalf("expected failure")
			}
			if !strings.Contains(res.Detail, tt.want) {
				t.Fatalf("expected detail containing %q, got %q", tt.want, res.Detail)
			}
		})
	}
}

func TestRunCaseCapturesOutput(t *testing.T) {
	runner := newTestRunner(t)
	res := runner.RunCase(context.Background(), Case{
		Name:   "print",
		Source: `print("one", 2)`,
		Expect: Expectation{Output: strPtr("one 2\n")},
	})
	if !res.Passed {
		t.Fatalf("expected pass, got %s", res.Detail)
	}
	if res.Output != "one 2\n" {
		t.Fatalf("unexpected output %q", res.Output)
	}
}

func TestReportCounts(t *testing.T) {
	runner := newTestRunner(t)
	suite := &Suite{Name: "mixed", Cases: []Case{
		{Name: "pass", Source: "1", Expect: Expectation{Value: strPtr("1")}},
		{Name: "fail", Source: "1", Expect: Expectation{Value: strPtr("2")}},
		{Name: "skip", Source: "1", Skip: "pending"},
	}}
	report := runner.Run(context.Background(), suite)
	if report.Passed() != 1 || report.Failed() != 1 || report.Skipped() != 1 {
		t.Fatalf("unexpected counts: passed=%d failed=%d skipped=%d", report.Passed(), report.Failed(), report.Skipped())
	}
	if report.Results[2].Detail != "skipped: pending" {
		t.Fatalf("unexpected skip detail %q", report.Results[2].Detail)
	}
}

func TestCancelledContextFailsCases(t *testing.T) {
	runner := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := runner.RunCase(ctx, Case{
		Name:   "loop",
		Source: "let i = 0\nwhile (i < 100) { i += 1 }\ni",
		Expect: Expectation{Value: strPtr("100")},
	})
	if res.Passed {
		t.Fatalf("expected cancelled case to fail")
	}
}
