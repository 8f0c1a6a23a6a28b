package hashclass

import "slices"

// property is an own property descriptor. Accessor properties keep getter
// and setter; data properties keep value and writable.
type property struct {
	value        Value
	getter       *Object
	setter       *Object
	accessor     bool
	writable     bool
	enumerable   bool
	configurable bool
}

func dataProperty(v Value, enumerable bool) *property {
	return &property{value: v, writable: true, enumerable: enumerable, configurable: true}
}

// Object is the single heap object type. Functions, classes and arrays are
// objects with an extra payload.
type Object struct {
	proto *Object
	props map[string]*property
	keys  []string

	fn       *Function
	isArray  bool
	elements []Value

	// brands holds the home objects whose private methods and accessors
	// this object may use. It only grows.
	brands []*Object
	// fields is the private field storage, keyed by token identity.
	fields     map[*PrivateName]Value
	fieldOrder []*PrivateName
}

func newObject(proto *Object) *Object {
	return &Object{proto: proto, props: make(map[string]*property)}
}

// Prototype returns the object's prototype link, or nil.
func (o *Object) Prototype() *Object { return o.proto }

func (o *Object) getOwn(key string) *property {
	return o.props[key]
}

func (o *Object) defineOwn(key string, prop *property) {
	if _, ok := o.props[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.props[key] = prop
}

// lookup walks the prototype chain for key.
func (o *Object) lookup(key string) *property {
	for cur := o; cur != nil; cur = cur.proto {
		if prop, ok := cur.props[key]; ok {
			return prop
		}
	}
	return nil
}

// ownKeys returns own property names in insertion order.
func (o *Object) ownKeys(enumerableOnly bool) []string {
	out := make([]string, 0, len(o.keys))
	for _, key := range o.keys {
		if enumerableOnly && !o.props[key].enumerable {
			continue
		}
		out = append(out, key)
	}
	return out
}

// Get returns the own data property value for key. Accessors and inherited
// properties are not consulted; use an Execution to run getters.
func (o *Object) Get(key string) (Value, bool) {
	prop := o.props[key]
	if prop == nil || prop.accessor {
		return Value{}, false
	}
	return prop.value, true
}

func (o *Object) hasBrand(brand *Object) bool {
	return slices.Contains(o.brands, brand)
}

func (o *Object) addBrand(brand *Object) {
	o.brands = append(o.brands, brand)
}

func (o *Object) privateField(name *PrivateName) (Value, bool) {
	v, ok := o.fields[name]
	return v, ok
}

func (o *Object) hasPrivateField(name *PrivateName) bool {
	_, ok := o.fields[name]
	return ok
}

func (o *Object) addPrivateField(name *PrivateName, v Value) {
	if o.fields == nil {
		o.fields = make(map[*PrivateName]Value)
	}
	o.fields[name] = v
	o.fieldOrder = append(o.fieldOrder, name)
}

func (o *Object) setPrivateField(name *PrivateName, v Value) {
	o.fields[name] = v
}

// PrivateFieldNames lists the descriptions of the object's private fields
// in the order they were added.
func (o *Object) PrivateFieldNames() []string {
	out := make([]string, len(o.fieldOrder))
	for i, pn := range o.fieldOrder {
		out[i] = pn.description
	}
	return out
}

// BrandCount reports how many brands the object carries.
func (o *Object) BrandCount() int { return len(o.brands) }

type functionKind int

const (
	funcNormal functionKind = iota
	funcMethod
	funcClassConstructor
)

// Function is the callable payload of a function object.
type Function struct {
	Name   string
	Params []string
	Body   []Statement
	Env    *Env
	Kind   functionKind
	Pos    Position

	// HomeObject anchors super lookups for methods and class constructors.
	HomeObject *Object
	Class      *classRecord

	native BuiltinFunc
}

func (f *Function) isConstructor() bool {
	return f.native == nil && f.Kind != funcMethod
}
