package hashclass

// ElementKind tags a class element declaration.
type ElementKind string

const (
	ElementMethod      ElementKind = "method"
	ElementGetter      ElementKind = "get"
	ElementSetter      ElementKind = "set"
	ElementField       ElementKind = "field"
	ElementConstructor ElementKind = "constructor"
)

// ClassElement is one declaration inside a class body. Key is the property
// name for public elements and the '#'-prefixed identifier for private ones.
type ClassElement struct {
	Kind        ElementKind
	Key         string
	Private     bool
	Static      bool
	Function    *FunctionLiteral
	Initializer Expression
	position    Position
}

func (e *ClassElement) Pos() Position { return e.position }

type ClassLiteral struct {
	Name       string
	SuperClass Expression
	Elements   []*ClassElement
	// PrivateNames is filled by the static pre-pass with every private
	// identifier the body declares, in first-declaration order.
	PrivateNames []string
	position     Position
}

func (e *ClassLiteral) exprNode()     {}
func (e *ClassLiteral) Pos() Position { return e.position }

func (e *ClassLiteral) constructorElement() *ClassElement {
	for _, el := range e.Elements {
		if el.Kind == ElementConstructor {
			return el
		}
	}
	return nil
}
