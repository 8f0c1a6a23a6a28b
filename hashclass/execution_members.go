package hashclass

import (
	"strconv"
	"unicode/utf8"
)

func (exec *Execution) getProperty(target Value, key string, pos Position) (Value, error) {
	switch target.kind {
	case KindUndefined, KindNull:
		return NewUndefined(), exec.typeError(pos, "cannot read properties of %s (reading '%s')", target.kind, key)
	case KindString:
		s := target.Str()
		if key == "length" {
			return NewInt(int64(utf8.RuneCountInString(s))), nil
		}
		if idx, ok := arrayIndex(key); ok {
			runes := []rune(s)
			if idx < len(runes) {
				return NewString(string(runes[idx])), nil
			}
		}
		return NewUndefined(), nil
	case KindObject:
		return exec.getObjectProperty(target.Object(), key, target, pos)
	default:
		return NewUndefined(), nil
	}
}

// getObjectProperty reads key from obj or its prototype chain. Getters run
// with receiver as this, which differs from obj for super lookups.
func (exec *Execution) getObjectProperty(obj *Object, key string, receiver Value, pos Position) (Value, error) {
	if obj.isArray {
		if key == "length" {
			return NewInt(int64(len(obj.elements))), nil
		}
		if idx, ok := arrayIndex(key); ok {
			if idx < len(obj.elements) {
				return obj.elements[idx], nil
			}
			return NewUndefined(), nil
		}
	}

	prop := obj.lookup(key)
	switch {
	case prop == nil:
		return NewUndefined(), nil
	case prop.accessor:
		if prop.getter == nil {
			return NewUndefined(), nil
		}
		return exec.callFunction(prop.getter, receiver, nil, pos)
	default:
		return prop.value, nil
	}
}

func (exec *Execution) setProperty(target Value, key string, val Value, pos Position) error {
	obj := target.Object()
	if obj == nil {
		return exec.typeError(pos, "cannot set property '%s' of %s", key, target.Kind())
	}

	if obj.isArray {
		if key == "length" {
			return exec.typeError(pos, "cannot assign to array length")
		}
		if idx, ok := arrayIndex(key); ok {
			switch {
			case idx < len(obj.elements):
				obj.elements[idx] = val
			case idx == len(obj.elements):
				obj.elements = append(obj.elements, val)
			default:
				return exec.errorAt(pos, "array index %d out of range (length %d)", idx, len(obj.elements))
			}
			return nil
		}
	}

	prop := obj.lookup(key)
	switch {
	case prop != nil && prop.accessor:
		if prop.setter == nil {
			return exec.typeError(pos, "cannot set property '%s' which has only a getter", key)
		}
		_, err := exec.callFunction(prop.setter, target, []Value{val}, pos)
		return err
	case prop != nil && !prop.writable:
		return exec.typeError(pos, "cannot assign to read only property '%s'", key)
	}

	if own := obj.getOwn(key); own != nil {
		own.value = val
		return nil
	}
	obj.defineOwn(key, dataProperty(val, true))
	return nil
}

// propertyKeyOf converts an index expression result to a property key.
func propertyKeyOf(v Value) string {
	switch v.kind {
	case KindString:
		return v.Str()
	case KindFloat:
		f := v.Float()
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return v.String()
}

func arrayIndex(key string) (int, bool) {
	if key == "" || key[0] < '0' || key[0] > '9' || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func (exec *Execution) newArray(elements []Value) *Object {
	arr := newObject(exec.realm.arrayProto)
	arr.isArray = true
	arr.elements = elements
	return arr
}
