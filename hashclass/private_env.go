package hashclass

import "fmt"

// PrivateEnvironment maps private identifiers to tokens for one class body.
// Environments chain outward so nested classes see enclosing names.
type PrivateEnvironment struct {
	outer *PrivateEnvironment
	// names holds a nil entry for a declared identifier whose token has not
	// been created yet.
	names map[string]*PrivateName
}

func NewPrivateEnvironment(outer *PrivateEnvironment) *PrivateEnvironment {
	return &PrivateEnvironment{outer: outer, names: make(map[string]*PrivateName)}
}

// Declare adds an uninitialized binding for name.
func (env *PrivateEnvironment) Declare(name string) {
	if _, ok := env.names[name]; !ok {
		env.names[name] = nil
	}
}

// Lookup finds the token bound to name in env or an enclosing environment.
// ok is false when no environment declares name; a declared but
// uninitialized binding returns (nil, true).
func (env *PrivateEnvironment) Lookup(name string) (*PrivateName, bool) {
	for e := env; e != nil; e = e.outer {
		if pn, ok := e.names[name]; ok {
			return pn, true
		}
	}
	return nil, false
}

// ResolvePrivateIdentifier returns the token for name, creating it on first
// use. Reusing an initialized binding is how a getter and setter of the same
// identifier end up sharing one token.
func ResolvePrivateIdentifier(env *PrivateEnvironment, name string) (*PrivateName, error) {
	for e := env; e != nil; e = e.outer {
		pn, ok := e.names[name]
		if !ok {
			continue
		}
		if pn == nil {
			pn = NewPrivateName(name)
			e.names[name] = pn
		}
		return pn, nil
	}
	return nil, &RuntimeError{Type: runtimeErrorTypeInternal, Message: fmt.Sprintf("unresolvable private name %s", name)}
}
