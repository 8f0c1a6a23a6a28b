package conformance

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mgomes/hashclass/hashclass"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name     string
	Passed   bool
	Skipped  bool
	Detail   string
	Output   string
	Duration time.Duration
}

// Report collects the results of one suite run.
type Report struct {
	Suite   string
	Path    string
	Results []CaseResult
}

// Passed counts passing cases.
func (r Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

// Failed counts cases that ran and did not pass.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed && !res.Skipped {
			n++
		}
	}
	return n
}

// Skipped counts cases marked skip in the suite.
func (r Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Skipped {
			n++
		}
	}
	return n
}

// Runner executes suites against a shared engine. Every case runs in its
// own execution, so cases never observe each other's classes or objects.
type Runner struct {
	engine *hashclass.Engine
}

func NewRunner(engine *hashclass.Engine) *Runner {
	return &Runner{engine: engine}
}

// Run executes every case of suite in order. A cancelled context fails the
// remaining cases rather than aborting the report.
func (r *Runner) Run(ctx context.Context, suite *Suite) Report {
	report := Report{Suite: suite.Name, Path: suite.Path}
	for _, c := range suite.Cases {
		report.Results = append(report.Results, r.RunCase(ctx, c))
	}
	return report
}

// RunCase compiles and runs a single case and checks it against its
// expectation.
func (r *Runner) RunCase(ctx context.Context, c Case) CaseResult {
	result := CaseResult{Name: c.Name}
	if c.Skip != "" {
		result.Skipped = true
		result.Detail = "skipped: " + c.Skip
		return result
	}

	start := time.Now()
	var out bytes.Buffer
	value, err := r.execute(ctx, c.Source, &out)
	result.Duration = time.Since(start)
	result.Output = out.String()

	if detail := check(c.Expect, value, err, result.Output); detail != "" {
		result.Detail = detail
		return result
	}
	result.Passed = true
	return result
}

func (r *Runner) execute(ctx context.Context, source string, out *bytes.Buffer) (hashclass.Value, error) {
	script, err := r.engine.Compile(source)
	if err != nil {
		return hashclass.NewUndefined(), err
	}
	return script.Run(ctx, hashclass.CallOptions{Output: out})
}

func check(expect Expectation, value hashclass.Value, err error, output string) string {
	if expect.Error != "" {
		if err == nil {
			return fmt.Sprintf("expected %s, completed with %s", expect.Error, value.String())
		}
		if got := hashclass.ErrorType(err); got != expect.Error {
			return fmt.Sprintf("expected %s, got %s: %s", expect.Error, got, hashclass.ErrorMessage(err))
		}
		if expect.Message != "" && !strings.Contains(hashclass.ErrorMessage(err), expect.Message) {
			return fmt.Sprintf("expected %s message containing %q, got %q", expect.Error, expect.Message, hashclass.ErrorMessage(err))
		}
	} else if err != nil {
		return fmt.Sprintf("unexpected %s: %s", hashclass.ErrorType(err), hashclass.ErrorMessage(err))
	}

	if expect.Value != nil {
		if got := value.String(); got != *expect.Value {
			return fmt.Sprintf("expected value %s, got %s", *expect.Value, got)
		}
	}
	if expect.Output != nil {
		want := strings.TrimRight(*expect.Output, "\n")
		got := strings.TrimRight(output, "\n")
		if got != want {
			return fmt.Sprintf("expected output %q, got %q", want, got)
		}
	}
	return ""
}
