package hashclass

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) IsObject() bool { return v.kind == KindObject }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

func (v Value) Str() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

// Object returns the object a value refers to, or nil for primitives.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.data.(*Object)
}

func (v Value) isNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// callable returns the function object behind v, or nil.
func (v Value) callable() *Object {
	obj := v.Object()
	if obj == nil || obj.fn == nil {
		return nil
	}
	return obj
}
