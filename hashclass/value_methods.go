package hashclass

import (
	"math"
	"strconv"
	"strings"
)

// Truthy follows the usual script rules: undefined, null, false, zero, NaN
// and the empty string are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindUndefined, KindNull:
		return false
	case KindBool:
		return v.data.(bool)
	case KindInt:
		return v.data.(int64) != 0
	case KindFloat:
		f := v.data.(float64)
		return f != 0 && !math.IsNaN(f)
	case KindString:
		return v.data.(string) != ""
	default:
		return true
	}
}

// Equal is strict equality. Objects compare by identity; integers and
// floats compare numerically.
func (v Value) Equal(other Value) bool {
	if v.isNumber() && other.isNumber() {
		if v.kind == KindInt && other.kind == KindInt {
			return v.data.(int64) == other.data.(int64)
		}
		return v.Float() == other.Float()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUndefined, KindNull:
		return true
	case KindBool:
		return v.data.(bool) == other.data.(bool)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindObject:
		return v.data.(*Object) == other.data.(*Object)
	default:
		return false
	}
}

// TypeOf returns the name reported by the typeof operator.
func (v Value) TypeOf() string {
	if obj := v.Object(); obj != nil && obj.fn != nil {
		return "function"
	}
	if v.kind == KindNull {
		return "object"
	}
	return v.kind.String()
}

func (v Value) String() string {
	var b strings.Builder
	writeValue(&b, v, 0)
	return b.String()
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeValue(b *strings.Builder, v Value, depth int) {
	switch v.kind {
	case KindUndefined:
		b.WriteString("undefined")
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.data.(bool)))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.data.(int64), 10))
	case KindFloat:
		b.WriteString(formatFloat(v.data.(float64)))
	case KindString:
		if depth > 0 {
			b.WriteString(strconv.Quote(v.data.(string)))
			return
		}
		b.WriteString(v.data.(string))
	case KindObject:
		writeObject(b, v.data.(*Object), depth)
	}
}

func writeObject(b *strings.Builder, obj *Object, depth int) {
	switch {
	case obj.fn != nil && obj.fn.Kind == funcClassConstructor:
		b.WriteString("[class " + displayName(obj.fn.Name) + "]")
		return
	case obj.fn != nil:
		b.WriteString("[Function " + displayName(obj.fn.Name) + "]")
		return
	case depth > 2:
		if obj.isArray {
			b.WriteString("[Array]")
		} else {
			b.WriteString("[Object]")
		}
		return
	}

	if obj.isArray {
		b.WriteByte('[')
		for i, el := range obj.elements {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, el, depth+1)
		}
		b.WriteByte(']')
		return
	}

	keys := obj.ownKeys(true)
	if len(keys) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{ ")
	for i, key := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		prop := obj.props[key]
		if prop.accessor {
			b.WriteString("[Getter/Setter]")
			continue
		}
		writeValue(b, prop.value, depth+1)
	}
	b.WriteString(" }")
}

func displayName(name string) string {
	if name == "" {
		return "(anonymous)"
	}
	return name
}
