package hashclass

type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt, KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged script value. The zero Value is undefined.
type Value struct {
	kind ValueKind
	data any
}

// BuiltinFunc implements a host function. this is the call receiver.
type BuiltinFunc func(exec *Execution, this Value, args []Value) (Value, error)
