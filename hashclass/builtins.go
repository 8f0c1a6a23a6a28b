package hashclass

import (
	"errors"
	"fmt"
	"strings"
)

// realm is the set of intrinsic objects one execution shares.
type realm struct {
	objectProto   *Object
	functionProto *Object
	arrayProto    *Object
	globals       *Env
}

func (exec *Execution) initRealm(builtins map[string]BuiltinFunc) {
	objectProto := newObject(nil)
	exec.realm = &realm{
		objectProto:   objectProto,
		functionProto: newObject(objectProto),
		arrayProto:    newObject(objectProto),
		globals:       newEnv(nil),
	}
	r := exec.realm

	r.functionProto.defineOwn("call", dataProperty(NewObject(exec.newNative("call", builtinFunctionCall)), false))
	r.arrayProto.defineOwn("push", dataProperty(NewObject(exec.newNative("push", builtinArrayPush)), false))
	r.objectProto.defineOwn("hasOwnProperty", dataProperty(NewObject(exec.newNative("hasOwnProperty", builtinHasOwnProperty)), false))

	objectNS := newObject(objectProto)
	objectNS.defineOwn("keys", dataProperty(NewObject(exec.newNative("keys", builtinObjectKeys)), false))
	objectNS.defineOwn("getPrototypeOf", dataProperty(NewObject(exec.newNative("getPrototypeOf", builtinObjectGetPrototypeOf)), false))
	r.globals.DefineConst("Object", NewObject(objectNS))

	for name, impl := range builtins {
		r.globals.DefineConst(name, NewObject(exec.newNative(name, impl)))
	}
}

func newTypeError(format string, args ...any) error {
	return &RuntimeError{Type: runtimeErrorTypeType, Message: fmt.Sprintf(format, args...)}
}

func newAssertionError(format string, args ...any) error {
	return &RuntimeError{Type: runtimeErrorTypeAssertion, Message: fmt.Sprintf(format, args...)}
}

func argAt(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return NewUndefined()
}

func builtinPrint(exec *Execution, this Value, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	fmt.Fprintln(exec.Output(), strings.Join(parts, " "))
	return NewUndefined(), nil
}

func builtinAssert(exec *Execution, this Value, args []Value) (Value, error) {
	if len(args) == 0 {
		return NewUndefined(), newTypeError("assert expects a condition")
	}
	if args[0].Truthy() {
		return NewUndefined(), nil
	}
	if len(args) > 1 {
		return NewUndefined(), newAssertionError("%s", args[1].String())
	}
	return NewUndefined(), newAssertionError("assertion failed")
}

func builtinAssertEqual(exec *Execution, this Value, args []Value) (Value, error) {
	if len(args) < 2 {
		return NewUndefined(), newTypeError("assertEqual expects actual and expected values")
	}
	actual, expected := args[0], args[1]
	if actual.Equal(expected) {
		return NewUndefined(), nil
	}
	if len(args) > 2 {
		return NewUndefined(), newAssertionError("%s: expected %s, got %s", args[2].String(), quoteValue(expected), quoteValue(actual))
	}
	return NewUndefined(), newAssertionError("expected %s, got %s", quoteValue(expected), quoteValue(actual))
}

// builtinAssertThrows calls fn and requires it to fail with the named error
// type. It returns the error message so scripts can inspect it.
func builtinAssertThrows(exec *Execution, this Value, args []Value) (Value, error) {
	kind, fn := argAt(args, 0), argAt(args, 1)
	if kind.Kind() != KindString || fn.callable() == nil {
		return NewUndefined(), newTypeError("assertThrows expects an error type name and a function")
	}
	_, err := exec.CallValue(fn, NewUndefined(), nil)
	if err == nil {
		return NewUndefined(), newAssertionError("expected %s to be thrown", kind.Str())
	}
	var runtimeErr *RuntimeError
	if isHostControlSignal(err) || !errors.As(err, &runtimeErr) {
		return NewUndefined(), err
	}
	if runtimeErr.Type != kind.Str() {
		return NewUndefined(), newAssertionError("expected %s, got %s: %s", kind.Str(), runtimeErr.Type, runtimeErr.Message)
	}
	return NewString(runtimeErr.Message), nil
}

func builtinFunctionCall(exec *Execution, this Value, args []Value) (Value, error) {
	if this.callable() == nil {
		return NewUndefined(), newTypeError("call must be invoked on a function")
	}
	var rest []Value
	if len(args) > 1 {
		rest = args[1:]
	}
	return exec.CallValue(this, argAt(args, 0), rest)
}

func builtinArrayPush(exec *Execution, this Value, args []Value) (Value, error) {
	arr := this.Object()
	if arr == nil || !arr.isArray {
		return NewUndefined(), newTypeError("push must be invoked on an array")
	}
	arr.elements = append(arr.elements, args...)
	return NewInt(int64(len(arr.elements))), nil
}

func builtinHasOwnProperty(exec *Execution, this Value, args []Value) (Value, error) {
	obj := this.Object()
	if obj == nil {
		return NewUndefined(), newTypeError("hasOwnProperty must be invoked on an object")
	}
	return NewBool(obj.getOwn(propertyKeyOf(argAt(args, 0))) != nil), nil
}

func builtinObjectKeys(exec *Execution, this Value, args []Value) (Value, error) {
	obj := argAt(args, 0).Object()
	if obj == nil {
		return NewUndefined(), newTypeError("Object.keys expects an object")
	}
	var keys []Value
	if obj.isArray {
		for i := range obj.elements {
			keys = append(keys, NewString(fmt.Sprint(i)))
		}
	}
	for _, key := range obj.ownKeys(true) {
		keys = append(keys, NewString(key))
	}
	return NewObject(exec.newArray(keys)), nil
}

func builtinObjectGetPrototypeOf(exec *Execution, this Value, args []Value) (Value, error) {
	obj := argAt(args, 0).Object()
	if obj == nil {
		return NewUndefined(), newTypeError("Object.getPrototypeOf expects an object")
	}
	return NewObject(obj.proto), nil
}

func quoteValue(v Value) string {
	if v.Kind() == KindString {
		return fmt.Sprintf("%q", v.Str())
	}
	return v.String()
}
