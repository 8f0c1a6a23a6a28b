package hashclass

func (exec *Execution) evalExpression(expr Expression, env *Env) (Value, error) {
	if err := exec.step(); err != nil {
		return NewUndefined(), err
	}

	switch e := expr.(type) {
	case *Identifier:
		return exec.evalIdentifier(e, env)
	case *IntegerLiteral:
		return NewInt(e.Value), nil
	case *FloatLiteral:
		return NewFloat(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NullLiteral:
		return NewNull(), nil
	case *UndefinedLiteral:
		return NewUndefined(), nil
	case *ThisExpr:
		return exec.evalThis(e, env)
	case *ArrayLiteral:
		elements := make([]Value, 0, len(e.Elements))
		for _, el := range e.Elements {
			v, err := exec.evalExpression(el, env)
			if err != nil {
				return NewUndefined(), err
			}
			elements = append(elements, v)
		}
		return NewObject(exec.newArray(elements)), nil
	case *ObjectLiteral:
		obj := newObject(exec.realm.objectProto)
		for _, prop := range e.Properties {
			v, err := exec.evalExpression(prop.Value, env)
			if err != nil {
				return NewUndefined(), err
			}
			obj.defineOwn(prop.Key, dataProperty(nameAnonymous(v, prop.Value, prop.Key), true))
		}
		return NewObject(obj), nil
	case *FunctionLiteral:
		return NewObject(exec.makeFunction(e, env)), nil
	case *ClassLiteral:
		ctor, err := exec.evalClass(e, env)
		if err != nil {
			return NewUndefined(), err
		}
		return NewObject(ctor), nil
	case *PrefixExpr:
		return exec.evalPrefix(e, env)
	case *InfixExpr:
		return exec.evalInfix(e, env)
	case *MemberExpr:
		obj, err := exec.evalExpression(e.Object, env)
		if err != nil {
			return NewUndefined(), err
		}
		return exec.getProperty(obj, e.Property, e.position)
	case *IndexExpr:
		obj, err := exec.evalExpression(e.Object, env)
		if err != nil {
			return NewUndefined(), err
		}
		idx, err := exec.evalExpression(e.Index, env)
		if err != nil {
			return NewUndefined(), err
		}
		return exec.getProperty(obj, propertyKeyOf(idx), e.position)
	case *PrivateMemberExpr:
		obj, err := exec.evalExpression(e.Object, env)
		if err != nil {
			return NewUndefined(), err
		}
		pn, err := exec.resolvePrivate(env, e.Name, e.position)
		if err != nil {
			return NewUndefined(), err
		}
		return exec.privateGet(pn, obj, e.position)
	case *PrivateInExpr:
		obj, err := exec.evalExpression(e.Object, env)
		if err != nil {
			return NewUndefined(), err
		}
		pn, err := exec.resolvePrivate(env, e.Name, e.position)
		if err != nil {
			return NewUndefined(), err
		}
		found, err := exec.privateIn(pn, obj, e.position)
		if err != nil {
			return NewUndefined(), err
		}
		return NewBool(found), nil
	case *CallExpr:
		return exec.evalCall(e, env)
	case *NewExpr:
		return exec.evalNew(e, env)
	case *SuperCallExpr:
		return exec.evalSuperCall(e, env)
	case *SuperMemberExpr:
		val, _, err := exec.evalSuperMember(e, env)
		return val, err
	default:
		return NewUndefined(), exec.internalError(expr.Pos(), "unsupported expression %T", expr)
	}
}

func (exec *Execution) evalIdentifier(e *Identifier, env *Env) (Value, error) {
	val, ok := env.Get(e.Name)
	if !ok {
		return NewUndefined(), exec.referenceError(e.position, "%s is not defined", e.Name)
	}
	return val, nil
}

func (exec *Execution) evalThis(e *ThisExpr, env *Env) (Value, error) {
	ctx := env.callContext()
	if ctx == nil {
		return NewUndefined(), nil
	}
	if !ctx.thisBound {
		return NewUndefined(), exec.referenceError(e.position, "must call super constructor in derived class before accessing 'this'")
	}
	return ctx.this, nil
}

func (exec *Execution) evalPrefix(e *PrefixExpr, env *Env) (Value, error) {
	if e.Operator == tokenTypeof {
		if ident, ok := e.Right.(*Identifier); ok {
			val, found := env.Get(ident.Name)
			if !found {
				return NewString("undefined"), nil
			}
			return NewString(val.TypeOf()), nil
		}
	}

	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewUndefined(), err
	}
	switch e.Operator {
	case tokenBang:
		return NewBool(!right.Truthy()), nil
	case tokenMinus:
		switch right.kind {
		case KindInt:
			return NewInt(-right.Int()), nil
		case KindFloat:
			return NewFloat(-right.Float()), nil
		default:
			return NewUndefined(), exec.typeError(e.position, "unary minus expects a number, got %s", right.TypeOf())
		}
	case tokenTypeof:
		return NewString(right.TypeOf()), nil
	default:
		return NewUndefined(), exec.internalError(e.position, "unsupported prefix operator %s", e.Operator)
	}
}

func (exec *Execution) evalInfix(e *InfixExpr, env *Env) (Value, error) {
	left, err := exec.evalExpression(e.Left, env)
	if err != nil {
		return NewUndefined(), err
	}
	switch e.Operator {
	case tokenAnd:
		if !left.Truthy() {
			return left, nil
		}
		return exec.evalExpression(e.Right, env)
	case tokenOr:
		if left.Truthy() {
			return left, nil
		}
		return exec.evalExpression(e.Right, env)
	}
	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewUndefined(), err
	}
	return exec.binaryOp(e.Operator, left, right, e.position)
}

func (exec *Execution) evalArgs(exprs []Expression, env *Env) ([]Value, error) {
	args := make([]Value, 0, len(exprs))
	for _, expr := range exprs {
		v, err := exec.evalExpression(expr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func (exec *Execution) evalCall(e *CallExpr, env *Env) (Value, error) {
	var (
		callee Value
		this   Value
		err    error
	)
	switch c := e.Callee.(type) {
	case *MemberExpr:
		this, err = exec.evalExpression(c.Object, env)
		if err == nil {
			callee, err = exec.getProperty(this, c.Property, c.position)
		}
	case *IndexExpr:
		this, err = exec.evalExpression(c.Object, env)
		if err == nil {
			var idx Value
			idx, err = exec.evalExpression(c.Index, env)
			if err == nil {
				callee, err = exec.getProperty(this, propertyKeyOf(idx), c.position)
			}
		}
	case *PrivateMemberExpr:
		this, err = exec.evalExpression(c.Object, env)
		if err == nil {
			var pn *PrivateName
			pn, err = exec.resolvePrivate(env, c.Name, c.position)
			if err == nil {
				callee, err = exec.privateGet(pn, this, c.position)
			}
		}
	case *SuperMemberExpr:
		callee, this, err = exec.evalSuperMember(c, env)
	default:
		callee, err = exec.evalExpression(e.Callee, env)
	}
	if err != nil {
		return NewUndefined(), err
	}

	args, err := exec.evalArgs(e.Args, env)
	if err != nil {
		return NewUndefined(), err
	}
	fnObj := callee.callable()
	if fnObj == nil {
		return NewUndefined(), exec.typeError(e.position, "%s is not a function", describeExpr(e.Callee))
	}
	return exec.callFunction(fnObj, this, args, e.position)
}

func (exec *Execution) evalNew(e *NewExpr, env *Env) (Value, error) {
	callee, err := exec.evalExpression(e.Callee, env)
	if err != nil {
		return NewUndefined(), err
	}
	args, err := exec.evalArgs(e.Args, env)
	if err != nil {
		return NewUndefined(), err
	}
	fnObj := callee.callable()
	if fnObj == nil || !fnObj.fn.isConstructor() {
		return NewUndefined(), exec.typeError(e.position, "%s is not a constructor", describeExpr(e.Callee))
	}
	return exec.construct(fnObj, args, fnObj, e.position)
}

func (exec *Execution) evalSuperCall(e *SuperCallExpr, env *Env) (Value, error) {
	ctx := env.callContext()
	if ctx == nil || ctx.funcObj == nil || ctx.funcObj.fn.Class == nil {
		return NewUndefined(), exec.internalError(e.position, "'super' call outside a class constructor")
	}
	args, err := exec.evalArgs(e.Args, env)
	if err != nil {
		return NewUndefined(), err
	}
	return exec.superConstruct(ctx, args, e.position)
}

// evalSuperMember looks a property up on the home object's prototype with
// the current this as receiver. It returns the value and the receiver.
func (exec *Execution) evalSuperMember(e *SuperMemberExpr, env *Env) (Value, Value, error) {
	ctx := env.callContext()
	if ctx == nil || ctx.home == nil {
		return NewUndefined(), NewUndefined(), exec.internalError(e.position, "'super' outside a method")
	}
	if !ctx.thisBound {
		return NewUndefined(), NewUndefined(), exec.referenceError(e.position, "must call super constructor in derived class before accessing 'super'")
	}
	parent := ctx.home.proto
	if parent == nil {
		return NewUndefined(), ctx.this, nil
	}
	val, err := exec.getObjectProperty(parent, e.Property, ctx.this, e.position)
	return val, ctx.this, err
}

// describeExpr renders a short source-like label for error messages.
func describeExpr(expr Expression) string {
	switch e := expr.(type) {
	case *Identifier:
		return e.Name
	case *MemberExpr:
		return describeExpr(e.Object) + "." + e.Property
	case *PrivateMemberExpr:
		return describeExpr(e.Object) + "." + e.Name
	case *SuperMemberExpr:
		return "super." + e.Property
	case *ThisExpr:
		return "this"
	case *IndexExpr:
		return describeExpr(e.Object) + "[...]"
	case *CallExpr:
		return describeExpr(e.Callee) + "(...)"
	default:
		return "expression"
	}
}
