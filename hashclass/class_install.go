package hashclass

// classRecord is the class-side state a constructor needs at `new` time.
type classRecord struct {
	name    string
	derived bool
	// ctor is the explicit constructor, or nil when one is synthesized.
	ctor   *FunctionLiteral
	fields []*fieldRecord
	// privateBrand is the prototype when the class installed an instance
	// private method or accessor, nil otherwise.
	privateBrand *Object
}

// fieldRecord is a deferred field definition. Exactly one of key and
// private identifies the target.
type fieldRecord struct {
	key         string
	private     *PrivateName
	initializer Expression
	env         *Env
	home        *Object
	pos         Position
}

func (f *fieldRecord) label() string {
	if f.private != nil {
		return f.private.description
	}
	return f.key
}

// evalClass evaluates a class definition: heritage, private scope,
// constructor and prototype, then every element in declaration order, then
// static initialization.
func (exec *Execution) evalClass(lit *ClassLiteral, env *Env) (*Object, error) {
	protoParent := exec.realm.objectProto
	ctorParent := exec.realm.functionProto

	if lit.SuperClass != nil {
		heritage, err := exec.evalExpression(lit.SuperClass, env)
		if err != nil {
			return nil, err
		}
		if heritage.IsNull() {
			protoParent = nil
		} else {
			parent := heritage.callable()
			if parent == nil || !parent.fn.isConstructor() {
				return nil, exec.typeError(lit.SuperClass.Pos(), "class extends value %s is not a constructor or null", heritage)
			}
			parentProto, err := exec.getObjectProperty(parent, "prototype", heritage, lit.SuperClass.Pos())
			if err != nil {
				return nil, err
			}
			switch {
			case parentProto.IsNull():
				protoParent = nil
			case parentProto.IsObject():
				protoParent = parentProto.Object()
			default:
				return nil, exec.typeError(lit.SuperClass.Pos(), "class extends value does not have a valid prototype property")
			}
			ctorParent = parent
		}
	}

	classEnv := newEnv(env)
	classEnv.private = NewPrivateEnvironment(env.privateEnvironment())
	for _, name := range lit.PrivateNames {
		classEnv.private.Declare(name)
	}

	proto := newObject(protoParent)
	rec := &classRecord{name: lit.Name, derived: lit.SuperClass != nil}
	ctorFn := &Function{
		Name:       lit.Name,
		Env:        classEnv,
		Kind:       funcClassConstructor,
		HomeObject: proto,
		Class:      rec,
		Pos:        lit.position,
	}
	if el := lit.constructorElement(); el != nil {
		rec.ctor = el.Function
		ctorFn.Params = el.Function.Params
		ctorFn.Body = el.Function.Body
	}
	ctor := exec.newFunctionObject(ctorFn, ctorParent)
	ctor.defineOwn("prototype", &property{value: NewObject(proto)})
	proto.defineOwn("constructor", dataProperty(NewObject(ctor), false))

	var (
		staticFields        []*fieldRecord
		instancePrivateCode bool
		staticPrivateCode   bool
	)
	for _, el := range lit.Elements {
		if el.Kind == ElementConstructor {
			continue
		}
		home := proto
		if el.Static {
			home = ctor
		}
		field, err := exec.installClassElement(el, home, classEnv)
		if err != nil {
			return nil, err
		}
		switch {
		case field != nil && el.Static:
			staticFields = append(staticFields, field)
		case field != nil:
			rec.fields = append(rec.fields, field)
		case el.Private && el.Static:
			staticPrivateCode = true
		case el.Private:
			instancePrivateCode = true
		}
	}

	// Static-only private methods and accessors leave instances unbranded;
	// no private name carries the prototype as its brand in that case.
	if instancePrivateCode {
		rec.privateBrand = proto
	}
	if lit.Name != "" {
		classEnv.DefineConst(lit.Name, NewObject(ctor))
	}

	if staticPrivateCode {
		ctor.addBrand(ctor)
	}
	for _, field := range staticFields {
		if err := exec.defineField(ctor, field); err != nil {
			return nil, err
		}
	}
	return ctor, nil
}

// installClassElement installs one method or accessor on home, or returns
// the deferred record for a field.
func (exec *Execution) installClassElement(el *ClassElement, home *Object, classEnv *Env) (*fieldRecord, error) {
	var pn *PrivateName
	if el.Private {
		var err error
		pn, err = exec.resolvePrivate(classEnv, el.Key, el.position)
		if err != nil {
			return nil, err
		}
	}

	switch el.Kind {
	case ElementField:
		field := &fieldRecord{key: el.Key, initializer: el.Initializer, env: classEnv, home: home, pos: el.position}
		if pn != nil {
			if pn.kind != PrivateUnset {
				return nil, exec.internalError(el.position, "private name %s is already a %s", el.Key, pn.kind)
			}
			pn.kind = PrivateField
			field.private = pn
		}
		return field, nil

	case ElementMethod:
		closure := exec.makeMethod(el.Function, classEnv, home, el.Key)
		if pn == nil {
			home.defineOwn(el.Key, dataProperty(NewObject(closure), false))
			return nil, nil
		}
		if pn.kind != PrivateUnset {
			return nil, exec.internalError(el.position, "private name %s is already a %s", el.Key, pn.kind)
		}
		pn.kind = PrivateMethod
		pn.brand = home
		pn.value = closure
		return nil, nil

	case ElementGetter, ElementSetter:
		isGetter := el.Kind == ElementGetter
		closure := exec.makeMethod(el.Function, classEnv, home, string(el.Kind)+" "+el.Key)
		if pn == nil {
			prop := home.getOwn(el.Key)
			if prop == nil || !prop.accessor {
				prop = &property{accessor: true, configurable: true}
				home.defineOwn(el.Key, prop)
			}
			if isGetter {
				prop.getter = closure
			} else {
				prop.setter = closure
			}
			return nil, nil
		}

		switch pn.kind {
		case PrivateUnset:
			pn.kind = PrivateAccessor
			pn.brand = home
		case PrivateAccessor:
			if pn.brand != home {
				return nil, exec.internalError(el.position, "private accessor %s redeclared on a different home object", el.Key)
			}
		default:
			return nil, exec.internalError(el.position, "private name %s is already a %s", el.Key, pn.kind)
		}
		slot := &pn.setter
		if isGetter {
			slot = &pn.getter
		}
		if *slot != nil {
			return nil, exec.internalError(el.position, "private accessor %s already has a %s", el.Key, el.Kind)
		}
		*slot = closure
		return nil, nil

	default:
		return nil, exec.internalError(el.position, "unexpected class element %s", el.Kind)
	}
}
