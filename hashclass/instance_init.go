package hashclass

// initializeInstanceElements stamps the class's brand and fields onto obj.
// It runs once per object per field-defining class: at allocation for base
// classes, after super(...) returns for derived ones.
func (exec *Execution) initializeInstanceElements(obj *Object, ctor *Object, pos Position) error {
	rec := ctor.fn.Class
	if rec == nil {
		return nil
	}
	if rec.privateBrand != nil {
		if obj.hasBrand(rec.privateBrand) {
			return exec.typeError(pos, "cannot initialize private methods of class %s twice on the same object", displayName(rec.name))
		}
		obj.addBrand(rec.privateBrand)
	}
	for _, field := range rec.fields {
		if err := exec.defineField(obj, field); err != nil {
			return err
		}
	}
	return nil
}

// defineField evaluates one field initializer with this bound to obj and
// records the result. Fields committed before a failure stay on obj.
func (exec *Execution) defineField(obj *Object, field *fieldRecord) error {
	val := NewUndefined()
	if field.initializer != nil {
		initEnv := newEnv(field.env)
		initEnv.call = &callContext{this: NewObject(obj), thisBound: true, home: field.home}
		v, err := exec.evalExpression(field.initializer, initEnv)
		if err != nil {
			return err
		}
		val = nameAnonymous(v, field.initializer, field.label())
	}

	if field.private != nil {
		if obj.hasPrivateField(field.private) {
			return exec.typeError(field.pos, "cannot initialize %s twice on the same object", field.private.description)
		}
		obj.addPrivateField(field.private, val)
		return nil
	}

	if own := obj.getOwn(field.key); own != nil && !own.configurable {
		return exec.typeError(field.pos, "cannot redefine property: %s", field.key)
	}
	obj.defineOwn(field.key, dataProperty(val, true))
	return nil
}
