package hashclass

import "sort"

func NewUndefined() Value      { return Value{} }
func NewNull() Value           { return Value{kind: KindNull} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }

func NewObject(o *Object) Value {
	if o == nil {
		return NewNull()
	}
	return Value{kind: KindObject, data: o}
}

// NewPlainObject builds an object with no prototype holding attrs as
// enumerable data properties, in key order.
func NewPlainObject(attrs map[string]Value) Value {
	obj := newObject(nil)
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		obj.defineOwn(k, dataProperty(attrs[k], true))
	}
	return NewObject(obj)
}
