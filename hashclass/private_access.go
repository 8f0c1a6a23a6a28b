package hashclass

func (exec *Execution) resolvePrivate(env *Env, name string, pos Position) (*PrivateName, error) {
	pn, err := ResolvePrivateIdentifier(env.privateEnvironment(), name)
	if err != nil {
		return nil, exec.wrapError(err, pos)
	}
	return pn, nil
}

// privateGet reads receiver.#name.
func (exec *Execution) privateGet(pn *PrivateName, receiver Value, pos Position) (Value, error) {
	obj := receiver.Object()
	if obj == nil {
		return NewUndefined(), exec.typeError(pos, "cannot read private member %s from %s", pn.description, receiver.Kind())
	}

	switch pn.kind {
	case PrivateField:
		val, ok := obj.privateField(pn)
		if !ok {
			return NewUndefined(), exec.typeError(pos, "cannot read private member %s from an object whose class did not declare it", pn.description)
		}
		return val, nil
	case PrivateMethod:
		if err := exec.brandCheck(pn, obj, pos); err != nil {
			return NewUndefined(), err
		}
		return NewObject(pn.value), nil
	case PrivateAccessor:
		if err := exec.brandCheck(pn, obj, pos); err != nil {
			return NewUndefined(), err
		}
		if pn.getter == nil {
			return NewUndefined(), exec.typeError(pos, "%s was defined without a getter", pn.description)
		}
		return exec.callFunction(pn.getter, receiver, nil, pos)
	default:
		return NewUndefined(), exec.internalError(pos, "private name %s used before installation", pn.description)
	}
}

// privateSet writes receiver.#name = val.
func (exec *Execution) privateSet(pn *PrivateName, receiver Value, val Value, pos Position) error {
	obj := receiver.Object()
	if obj == nil {
		return exec.typeError(pos, "cannot write private member %s to %s", pn.description, receiver.Kind())
	}

	switch pn.kind {
	case PrivateField:
		if !obj.hasPrivateField(pn) {
			return exec.typeError(pos, "cannot write private member %s to an object whose class did not declare it", pn.description)
		}
		obj.setPrivateField(pn, val)
		return nil
	case PrivateMethod:
		return exec.typeError(pos, "private method %s is not writable", pn.description)
	case PrivateAccessor:
		if err := exec.brandCheck(pn, obj, pos); err != nil {
			return err
		}
		if pn.setter == nil {
			return exec.typeError(pos, "%s was defined without a setter", pn.description)
		}
		_, err := exec.callFunction(pn.setter, receiver, []Value{val}, pos)
		return err
	default:
		return exec.internalError(pos, "private name %s used before installation", pn.description)
	}
}

// privateIn answers `#name in target`.
func (exec *Execution) privateIn(pn *PrivateName, target Value, pos Position) (bool, error) {
	obj := target.Object()
	if obj == nil {
		return false, exec.typeError(pos, "cannot use 'in' operator to search for %s in %s", pn.description, target.Kind())
	}
	if pn.kind == PrivateField {
		return obj.hasPrivateField(pn), nil
	}
	return obj.hasBrand(pn.brand), nil
}

func (exec *Execution) brandCheck(pn *PrivateName, obj *Object, pos Position) error {
	if obj.hasBrand(pn.brand) {
		return nil
	}
	return exec.typeError(pos, "object is not an instance of the class that declares %s", pn.description)
}
