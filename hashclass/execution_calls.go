package hashclass

func (exec *Execution) makeFunction(lit *FunctionLiteral, env *Env) *Object {
	fn := &Function{Name: lit.Name, Params: lit.Params, Body: lit.Body, Env: env, Kind: funcNormal, Pos: lit.position}
	return exec.newFunctionObject(fn, exec.realm.functionProto)
}

// makeMethod creates a class element closure. Methods carry a home object
// and are not constructors.
func (exec *Execution) makeMethod(lit *FunctionLiteral, env *Env, home *Object, name string) *Object {
	fn := &Function{Name: name, Params: lit.Params, Body: lit.Body, Env: env, Kind: funcMethod, HomeObject: home, Pos: lit.position}
	return exec.newFunctionObject(fn, exec.realm.functionProto)
}

func (exec *Execution) newFunctionObject(fn *Function, proto *Object) *Object {
	obj := newObject(proto)
	obj.fn = fn
	obj.defineOwn("name", &property{value: NewString(fn.Name), configurable: true})
	if fn.Kind == funcNormal && fn.native == nil {
		prototype := newObject(exec.realm.objectProto)
		prototype.defineOwn("constructor", dataProperty(NewObject(obj), false))
		obj.defineOwn("prototype", &property{value: NewObject(prototype), writable: true})
	}
	return obj
}

func (exec *Execution) newNative(name string, impl BuiltinFunc) *Object {
	return exec.newFunctionObject(&Function{Name: name, native: impl}, exec.realm.functionProto)
}

// callFunction performs an ordinary call with an explicit receiver.
func (exec *Execution) callFunction(fnObj *Object, this Value, args []Value, pos Position) (Value, error) {
	fn := fnObj.fn
	if fn == nil {
		return NewUndefined(), exec.typeError(pos, "value is not a function")
	}
	if fn.native != nil {
		if err := exec.step(); err != nil {
			return NewUndefined(), err
		}
		if err := exec.pushFrame(fn.Name, pos); err != nil {
			return NewUndefined(), err
		}
		val, err := fn.native(exec, this, args)
		exec.popFrame()
		if err != nil {
			return NewUndefined(), exec.wrapError(err, pos)
		}
		return val, nil
	}
	if fn.Kind == funcClassConstructor {
		return NewUndefined(), exec.typeError(pos, "class constructor %s cannot be invoked without 'new'", displayName(fn.Name))
	}
	ctx := &callContext{this: this, thisBound: true, funcObj: fnObj, home: fn.HomeObject}
	return exec.invoke(fnObj, ctx, args, pos)
}

// invoke runs a script function body. The result is undefined unless the
// body returned a value.
func (exec *Execution) invoke(fnObj *Object, ctx *callContext, args []Value, pos Position) (Value, error) {
	if err := exec.pushFrame(displayName(fnObj.fn.Name), pos); err != nil {
		return NewUndefined(), err
	}
	defer exec.popFrame()
	return exec.invokeBody(fnObj, ctx, args)
}

// invokeBody binds parameters and evaluates the body. The caller owns the
// call frame.
func (exec *Execution) invokeBody(fnObj *Object, ctx *callContext, args []Value) (Value, error) {
	fn := fnObj.fn
	callEnv := newEnv(fn.Env)
	callEnv.call = ctx
	for i, param := range fn.Params {
		arg := NewUndefined()
		if i < len(args) {
			arg = args[i]
		}
		callEnv.Define(param, arg)
	}

	val, returned, err := exec.evalStatements(fn.Body, callEnv)
	if err != nil {
		return NewUndefined(), err
	}
	if !returned {
		return NewUndefined(), nil
	}
	return val, nil
}

// construct implements `new`. newTarget is the constructor `new` was
// applied to; its prototype property shapes the allocated object even when
// construction runs through a chain of parent constructors.
func (exec *Execution) construct(fnObj *Object, args []Value, newTarget *Object, pos Position) (Value, error) {
	fn := fnObj.fn
	if fn == nil || !fn.isConstructor() {
		return NewUndefined(), exec.typeError(pos, "%s is not a constructor", NewObject(fnObj))
	}
	if err := exec.step(); err != nil {
		return NewUndefined(), err
	}

	if fn.Kind != funcClassConstructor {
		proto, err := exec.prototypeFor(newTarget, pos)
		if err != nil {
			return NewUndefined(), err
		}
		obj := NewObject(newObject(proto))
		ctx := &callContext{this: obj, thisBound: true, funcObj: fnObj, newTarget: newTarget, home: fn.HomeObject}
		result, err := exec.invoke(fnObj, ctx, args, pos)
		if err != nil {
			return NewUndefined(), err
		}
		if result.IsObject() {
			return result, nil
		}
		return obj, nil
	}

	// One frame per class constructor activation, covering field
	// initializers as well as the body.
	if err := exec.pushFrame(displayName(fn.Name), pos); err != nil {
		return NewUndefined(), err
	}
	defer exec.popFrame()

	rec := fn.Class
	ctx := &callContext{funcObj: fnObj, newTarget: newTarget, home: fn.HomeObject}
	if !rec.derived {
		proto, err := exec.prototypeFor(newTarget, pos)
		if err != nil {
			return NewUndefined(), err
		}
		obj := newObject(proto)
		ctx.this = NewObject(obj)
		ctx.thisBound = true
		if err := exec.initializeInstanceElements(obj, fnObj, pos); err != nil {
			return NewUndefined(), err
		}
	}

	result := NewUndefined()
	switch {
	case rec.ctor != nil:
		var err error
		result, err = exec.invokeBody(fnObj, ctx, args)
		if err != nil {
			return NewUndefined(), err
		}
	case rec.derived:
		// Synthesized derived constructor: forward every argument.
		if _, err := exec.superConstruct(ctx, args, pos); err != nil {
			return NewUndefined(), err
		}
	}

	if result.IsObject() {
		return result, nil
	}
	if rec.derived && !result.IsUndefined() {
		return NewUndefined(), exec.typeError(pos, "derived constructors may only return object or undefined")
	}
	if !ctx.thisBound {
		return NewUndefined(), exec.referenceError(pos, "must call super constructor in derived class before returning from derived constructor")
	}
	return ctx.this, nil
}

// superConstruct runs the parent constructor for a derived constructor
// activation, binds this to the result and initializes the derived class's
// own elements on it.
func (exec *Execution) superConstruct(ctx *callContext, args []Value, pos Position) (Value, error) {
	parent := ctx.funcObj.proto
	if parent == nil || parent.fn == nil || !parent.fn.isConstructor() {
		return NewUndefined(), exec.typeError(pos, "super constructor is not a constructor")
	}
	if ctx.thisBound {
		return NewUndefined(), exec.referenceError(pos, "super constructor may only be called once")
	}
	result, err := exec.construct(parent, args, ctx.newTarget, pos)
	if err != nil {
		return NewUndefined(), err
	}
	if ctx.thisBound {
		return NewUndefined(), exec.referenceError(pos, "super constructor may only be called once")
	}
	ctx.this = result
	ctx.thisBound = true
	if err := exec.initializeInstanceElements(result.Object(), ctx.funcObj, pos); err != nil {
		return NewUndefined(), err
	}
	return result, nil
}

func (exec *Execution) prototypeFor(newTarget *Object, pos Position) (*Object, error) {
	proto, err := exec.getObjectProperty(newTarget, "prototype", NewObject(newTarget), pos)
	if err != nil {
		return nil, err
	}
	if obj := proto.Object(); obj != nil {
		return obj, nil
	}
	return exec.realm.objectProto, nil
}

// CallValue invokes a callable script value from host code, for example a
// callback handed to a builtin.
func (exec *Execution) CallValue(fn Value, this Value, args []Value) (Value, error) {
	fnObj := fn.callable()
	if fnObj == nil {
		return NewUndefined(), &RuntimeError{Type: runtimeErrorTypeType, Message: fn.TypeOf() + " is not a function"}
	}
	return exec.callFunction(fnObj, this, args, Position{})
}
