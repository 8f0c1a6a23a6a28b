package hashclass

import "slices"

type privateDecl struct {
	kind   ElementKind
	static bool
	pos    Position
}

// CollectPrivateBoundIdentifiers returns every private identifier declared
// by the class body, in first-declaration order. An identifier may be
// declared once, or exactly twice as a getter plus a setter with the same
// placement; anything else is a duplicate private name.
func CollectPrivateBoundIdentifiers(cls *ClassLiteral, source string) ([]string, []error) {
	var (
		names []string
		decls = make(map[string][]privateDecl)
		errs  []error
	)

	for _, el := range cls.Elements {
		if !el.Private {
			continue
		}
		if el.Key == "#constructor" {
			errs = append(errs, newSyntaxError(source, el.position, "#constructor is a reserved private name"))
			continue
		}
		prior, seen := decls[el.Key]
		if !seen {
			names = append(names, el.Key)
		}
		decl := privateDecl{kind: el.Kind, static: el.Static, pos: el.position}
		if seen && !pairsWith(prior, decl) {
			errs = append(errs, newSyntaxError(source, el.position, "duplicate private name %s", el.Key))
			continue
		}
		decls[el.Key] = append(prior, decl)
	}

	return names, errs
}

// pairsWith reports whether decl completes a getter/setter pair with the
// single earlier declaration in prior.
func pairsWith(prior []privateDecl, decl privateDecl) bool {
	if len(prior) != 1 {
		return false
	}
	first := prior[0]
	if first.static != decl.static {
		return false
	}
	return (first.kind == ElementGetter && decl.kind == ElementSetter) ||
		(first.kind == ElementSetter && decl.kind == ElementGetter)
}

type scanContext struct {
	inMethod    bool
	derivedCtor bool
}

type privateRefChecker struct {
	source string
	scopes [][]string
	errs   []error
}

// checkPrivateReferences verifies that every `obj.#x` and `#x in obj` names
// a private identifier declared by an enclosing class body, and that
// `super` appears only where a home object exists.
func checkPrivateReferences(program *Program, source string) []error {
	c := &privateRefChecker{source: source}
	c.statements(program.Statements, scanContext{})
	return c.errs
}

func (c *privateRefChecker) declared(name string) bool {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if slices.Contains(c.scopes[i], name) {
			return true
		}
	}
	return false
}

func (c *privateRefChecker) fail(pos Position, format string, args ...any) {
	c.errs = append(c.errs, newSyntaxError(c.source, pos, format, args...))
}

func (c *privateRefChecker) statements(stmts []Statement, ctx scanContext) {
	for _, stmt := range stmts {
		c.statement(stmt, ctx)
	}
}

func (c *privateRefChecker) statement(stmt Statement, ctx scanContext) {
	switch s := stmt.(type) {
	case *LetStmt:
		c.expression(s.Value, ctx)
	case *ExprStmt:
		c.expression(s.Expr, ctx)
	case *AssignStmt:
		c.expression(s.Target, ctx)
		c.expression(s.Value, ctx)
	case *ReturnStmt:
		c.expression(s.Value, ctx)
	case *IfStmt:
		c.expression(s.Condition, ctx)
		c.statements(s.Consequent, ctx)
		c.statements(s.Alternate, ctx)
	case *WhileStmt:
		c.expression(s.Condition, ctx)
		c.statements(s.Body, ctx)
	case *BlockStmt:
		c.statements(s.Body, ctx)
	case *FunctionStmt:
		c.statements(s.Function.Body, scanContext{})
	case *ClassStmt:
		c.class(s.Class, ctx)
	}
}

func (c *privateRefChecker) class(cls *ClassLiteral, ctx scanContext) {
	// The heritage expression sees the outer private scope only.
	c.expression(cls.SuperClass, ctx)

	c.scopes = append(c.scopes, cls.PrivateNames)
	defer func() { c.scopes = c.scopes[:len(c.scopes)-1] }()

	for _, el := range cls.Elements {
		inner := scanContext{inMethod: true}
		if el.Kind == ElementConstructor && cls.SuperClass != nil {
			inner.derivedCtor = true
		}
		if el.Function != nil {
			c.statements(el.Function.Body, inner)
		}
		c.expression(el.Initializer, inner)
	}
}

func (c *privateRefChecker) expression(expr Expression, ctx scanContext) {
	switch e := expr.(type) {
	case nil:
	case *PrivateMemberExpr:
		if !c.declared(e.Name) {
			c.fail(e.position, "private name %s is not defined", e.Name)
		}
		c.expression(e.Object, ctx)
	case *PrivateInExpr:
		if !c.declared(e.Name) {
			c.fail(e.position, "private name %s is not defined", e.Name)
		}
		c.expression(e.Object, ctx)
	case *SuperCallExpr:
		if !ctx.derivedCtor {
			c.fail(e.position, "'super' call is only valid in a derived class constructor")
		}
		for _, arg := range e.Args {
			c.expression(arg, ctx)
		}
	case *SuperMemberExpr:
		if !ctx.inMethod {
			c.fail(e.position, "'super' property access is only valid inside methods")
		}
	case *ArrayLiteral:
		for _, el := range e.Elements {
			c.expression(el, ctx)
		}
	case *ObjectLiteral:
		for _, prop := range e.Properties {
			c.expression(prop.Value, ctx)
		}
	case *FunctionLiteral:
		c.statements(e.Body, scanContext{})
	case *ClassLiteral:
		c.class(e, ctx)
	case *PrefixExpr:
		c.expression(e.Right, ctx)
	case *InfixExpr:
		c.expression(e.Left, ctx)
		c.expression(e.Right, ctx)
	case *MemberExpr:
		c.expression(e.Object, ctx)
	case *IndexExpr:
		c.expression(e.Object, ctx)
		c.expression(e.Index, ctx)
	case *CallExpr:
		c.expression(e.Callee, ctx)
		for _, arg := range e.Args {
			c.expression(arg, ctx)
		}
	case *NewExpr:
		c.expression(e.Callee, ctx)
		for _, arg := range e.Args {
			c.expression(arg, ctx)
		}
	}
}
