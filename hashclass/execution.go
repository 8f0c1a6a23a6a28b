package hashclass

import (
	"context"
	"io"
)

// Execution is the state of one script run. It is not safe for concurrent
// use; each Run or Call builds its own.
type Execution struct {
	engine       *Engine
	script       *Script
	ctx          context.Context
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
	realm        *realm
	root         *Env
	out          io.Writer
}

// Output is where print writes.
func (exec *Execution) Output() io.Writer { return exec.out }

// Steps reports how many evaluation steps have run.
func (exec *Execution) Steps() int { return exec.steps }

func (exec *Execution) evalStatements(stmts []Statement, env *Env) (Value, bool, error) {
	exec.hoistFunctions(stmts, env)

	result := NewUndefined()
	for _, stmt := range stmts {
		val, returned, err := exec.evalStatement(stmt, env)
		if err != nil {
			return NewUndefined(), false, err
		}
		if returned {
			return val, true, nil
		}
		switch stmt.(type) {
		case *LetStmt, *FunctionStmt, *ClassStmt:
		default:
			result = val
		}
	}
	return result, false, nil
}

// hoistFunctions binds every function declaration of a statement list
// before the list runs.
func (exec *Execution) hoistFunctions(stmts []Statement, env *Env) {
	for _, stmt := range stmts {
		if fs, ok := stmt.(*FunctionStmt); ok {
			env.Define(fs.Function.Name, NewObject(exec.makeFunction(fs.Function, env)))
		}
	}
}

func (exec *Execution) evalStatement(stmt Statement, env *Env) (Value, bool, error) {
	if err := exec.step(); err != nil {
		return NewUndefined(), false, err
	}

	switch s := stmt.(type) {
	case *LetStmt:
		val := NewUndefined()
		if s.Value != nil {
			v, err := exec.evalExpression(s.Value, env)
			if err != nil {
				return NewUndefined(), false, err
			}
			val = nameAnonymous(v, s.Value, s.Name)
		}
		if s.Const {
			env.DefineConst(s.Name, val)
		} else {
			env.Define(s.Name, val)
		}
		return NewUndefined(), false, nil
	case *ExprStmt:
		val, err := exec.evalExpression(s.Expr, env)
		return val, false, err
	case *AssignStmt:
		val, err := exec.evalAssign(s, env)
		return val, false, err
	case *ReturnStmt:
		if s.Value == nil {
			return NewUndefined(), true, nil
		}
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewUndefined(), false, err
		}
		return val, true, nil
	case *IfStmt:
		cond, err := exec.evalExpression(s.Condition, env)
		if err != nil {
			return NewUndefined(), false, err
		}
		if cond.Truthy() {
			return exec.evalStatements(s.Consequent, newEnv(env))
		}
		if s.Alternate != nil {
			return exec.evalStatements(s.Alternate, newEnv(env))
		}
		return NewUndefined(), false, nil
	case *WhileStmt:
		return exec.evalWhile(s, env)
	case *BlockStmt:
		return exec.evalStatements(s.Body, newEnv(env))
	case *FunctionStmt:
		return NewUndefined(), false, nil
	case *ClassStmt:
		ctor, err := exec.evalClass(s.Class, env)
		if err != nil {
			return NewUndefined(), false, err
		}
		env.Define(s.Class.Name, NewObject(ctor))
		return NewUndefined(), false, nil
	default:
		return NewUndefined(), false, exec.internalError(stmt.Pos(), "unsupported statement %T", stmt)
	}
}

func (exec *Execution) evalWhile(s *WhileStmt, env *Env) (Value, bool, error) {
	result := NewUndefined()
	for {
		if err := exec.step(); err != nil {
			return NewUndefined(), false, err
		}
		cond, err := exec.evalExpression(s.Condition, env)
		if err != nil {
			return NewUndefined(), false, err
		}
		if !cond.Truthy() {
			return result, false, nil
		}
		val, returned, err := exec.evalStatements(s.Body, newEnv(env))
		if err != nil || returned {
			return val, returned, err
		}
		result = val
	}
}

func (exec *Execution) evalAssign(s *AssignStmt, env *Env) (Value, error) {
	combine := func(current Value) (Value, error) {
		rhs, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewUndefined(), err
		}
		if s.Operator == "" {
			return rhs, nil
		}
		return exec.binaryOp(s.Operator, current, rhs, s.position)
	}

	switch target := s.Target.(type) {
	case *Identifier:
		current := NewUndefined()
		if s.Operator != "" {
			v, err := exec.evalIdentifier(target, env)
			if err != nil {
				return NewUndefined(), err
			}
			current = v
		}
		val, err := combine(current)
		if err != nil {
			return NewUndefined(), err
		}
		val = nameAnonymous(val, s.Value, target.Name)
		switch env.Assign(target.Name, val) {
		case assignUndeclared:
			return NewUndefined(), exec.referenceError(target.position, "%s is not defined", target.Name)
		case assignConst:
			return NewUndefined(), exec.typeError(target.position, "assignment to constant variable '%s'", target.Name)
		}
		return val, nil

	case *MemberExpr:
		obj, err := exec.evalExpression(target.Object, env)
		if err != nil {
			return NewUndefined(), err
		}
		return exec.assignProperty(obj, target.Property, s.Operator != "", combine, target.position)

	case *IndexExpr:
		obj, err := exec.evalExpression(target.Object, env)
		if err != nil {
			return NewUndefined(), err
		}
		idx, err := exec.evalExpression(target.Index, env)
		if err != nil {
			return NewUndefined(), err
		}
		return exec.assignProperty(obj, propertyKeyOf(idx), s.Operator != "", combine, target.position)

	case *PrivateMemberExpr:
		obj, err := exec.evalExpression(target.Object, env)
		if err != nil {
			return NewUndefined(), err
		}
		pn, err := exec.resolvePrivate(env, target.Name, target.position)
		if err != nil {
			return NewUndefined(), err
		}
		current := NewUndefined()
		if s.Operator != "" {
			current, err = exec.privateGet(pn, obj, target.position)
			if err != nil {
				return NewUndefined(), err
			}
		}
		val, err := combine(current)
		if err != nil {
			return NewUndefined(), err
		}
		if err := exec.privateSet(pn, obj, val, target.position); err != nil {
			return NewUndefined(), err
		}
		return val, nil

	default:
		return NewUndefined(), exec.internalError(s.position, "invalid assignment target %T", s.Target)
	}
}

func (exec *Execution) assignProperty(obj Value, key string, compound bool, combine func(Value) (Value, error), pos Position) (Value, error) {
	current := NewUndefined()
	if compound {
		v, err := exec.getProperty(obj, key, pos)
		if err != nil {
			return NewUndefined(), err
		}
		current = v
	}
	val, err := combine(current)
	if err != nil {
		return NewUndefined(), err
	}
	if err := exec.setProperty(obj, key, val, pos); err != nil {
		return NewUndefined(), err
	}
	return val, nil
}

// nameAnonymous gives an anonymous function or class the name of the
// binding it is assigned to.
func nameAnonymous(val Value, expr Expression, name string) Value {
	switch lit := expr.(type) {
	case *FunctionLiteral:
		if lit.Name != "" {
			return val
		}
	case *ClassLiteral:
		if lit.Name != "" {
			return val
		}
	default:
		return val
	}
	if fnObj := val.callable(); fnObj != nil && fnObj.fn.Name == "" {
		fnObj.fn.Name = name
		fnObj.defineOwn("name", &property{value: NewString(name), configurable: true})
	}
	return val
}
