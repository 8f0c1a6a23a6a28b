package hashclass

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Script is a compiled program. It is immutable and may be run many times.
type Script struct {
	engine    *Engine
	program   *Program
	source    string
	functions []string
}

// CallOptions configures one run.
type CallOptions struct {
	// Globals seeds bindings visible to the program.
	Globals map[string]Value
	// ExportGlobals copies top-level bindings back into Globals after the
	// run, whether or not it succeeded.
	ExportGlobals bool
	// Output overrides the engine's print destination for this run.
	Output io.Writer
}

// Compile parses source and runs every static check. All syntax errors of
// the program are reported together.
func (e *Engine) Compile(source string) (*Script, error) {
	program, errs := newParser(source).ParseProgram()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var functions []string
	for _, stmt := range program.Statements {
		if fs, ok := stmt.(*FunctionStmt); ok {
			functions = append(functions, fs.Function.Name)
		}
	}
	return &Script{engine: e, program: program, source: source, functions: functions}, nil
}

// Source returns the text the script was compiled from.
func (s *Script) Source() string { return s.source }

// Functions lists the top-level function declarations in source order.
func (s *Script) Functions() []string {
	return append([]string(nil), s.functions...)
}

func (s *Script) newExecution(ctx context.Context, opts CallOptions) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	out := opts.Output
	if out == nil {
		out = s.engine.config.Output
	}
	exec := &Execution{
		engine:       s.engine,
		script:       s,
		ctx:          ctx,
		quota:        s.engine.config.StepQuota,
		recursionCap: s.engine.config.RecursionLimit,
		out:          out,
	}
	exec.initRealm(s.engine.builtinSnapshot())
	for name, val := range opts.Globals {
		exec.realm.globals.Define(name, val)
	}
	exec.root = newEnv(exec.realm.globals)
	exec.root.call = &callContext{thisBound: true}
	return exec
}

// Run evaluates the program and returns its completion value: the value of
// the last top-level statement that produced one.
func (s *Script) Run(ctx context.Context, opts CallOptions) (Value, error) {
	exec := s.newExecution(ctx, opts)
	val, _, err := exec.evalStatements(s.program.Statements, exec.root)
	exportGlobals(exec, opts)
	if err != nil {
		return NewUndefined(), err
	}
	return val, nil
}

// Call evaluates the program, then invokes the top-level function name with
// args.
func (s *Script) Call(ctx context.Context, name string, args []Value, opts CallOptions) (Value, error) {
	found := false
	for _, fn := range s.functions {
		if fn == name {
			found = true
			break
		}
	}
	if !found {
		return NewUndefined(), fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}

	exec := s.newExecution(ctx, opts)
	if _, _, err := exec.evalStatements(s.program.Statements, exec.root); err != nil {
		exportGlobals(exec, opts)
		return NewUndefined(), err
	}
	fnVal, _ := exec.root.Get(name)
	fnObj := fnVal.callable()
	if fnObj == nil {
		return NewUndefined(), fmt.Errorf("%w: %s was rebound to a non-function", ErrFunctionNotFound, name)
	}
	val, err := exec.callFunction(fnObj, NewUndefined(), args, fnObj.fn.Pos)
	exportGlobals(exec, opts)
	if err != nil {
		return NewUndefined(), err
	}
	return val, nil
}

func exportGlobals(exec *Execution, opts CallOptions) {
	if !opts.ExportGlobals || opts.Globals == nil {
		return
	}
	for name := range opts.Globals {
		if val, ok := exec.realm.globals.values[name]; ok {
			opts.Globals[name] = val
		}
	}
	for name, val := range exec.root.values {
		opts.Globals[name] = val
	}
}
