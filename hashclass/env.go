package hashclass

// callContext holds what a function activation binds besides its
// parameters. Derived constructors start with thisBound false until
// super(...) returns.
type callContext struct {
	this      Value
	thisBound bool
	funcObj   *Object
	newTarget *Object
	home      *Object
}

type Env struct {
	parent *Env
	values map[string]Value
	consts map[string]struct{}

	// private is set on class scopes.
	private *PrivateEnvironment
	// call is set on function activation scopes.
	call *callContext
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if val, ok := cur.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

func (e *Env) Define(name string, val Value) {
	e.values[name] = val
	delete(e.consts, name)
}

func (e *Env) DefineConst(name string, val Value) {
	e.values[name] = val
	if e.consts == nil {
		e.consts = make(map[string]struct{})
	}
	e.consts[name] = struct{}{}
}

type assignResult int

const (
	assignOK assignResult = iota
	assignUndeclared
	assignConst
)

// Assign updates the nearest binding of name. Unlike Define it never
// creates a binding.
func (e *Env) Assign(name string, val Value) assignResult {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.values[name]; !ok {
			continue
		}
		if _, isConst := cur.consts[name]; isConst {
			return assignConst
		}
		cur.values[name] = val
		return assignOK
	}
	return assignUndeclared
}

func (e *Env) privateEnvironment() *PrivateEnvironment {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.private != nil {
			return cur.private
		}
	}
	return nil
}

func (e *Env) callContext() *callContext {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.call != nil {
			return cur.call
		}
	}
	return nil
}
