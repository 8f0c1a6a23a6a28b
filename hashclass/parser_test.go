package hashclass

import (
	"strings"
	"testing"
)

func TestParseClassElements(t *testing.T) {
	program, errs := newParser(`
class Counter extends Base {
  #count = 0
  static #instances = 0
  label = "counter";
  constructor(start) { super(); this.#count = start }
  get #doubled() { return this.#count * 2 }
  set #doubled(v) { this.#count = v / 2 }
  static get total() { return Counter.#instances }
  #bump() { this.#count += 1 }
  get() { return this.#count }
}
`).ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ClassStmt)
	if !ok {
		t.Fatalf("expected class statement, got %T", program.Statements[0])
	}
	cls := stmt.Class
	if cls.Name != "Counter" || cls.SuperClass == nil {
		t.Fatalf("unexpected class header: %q %v", cls.Name, cls.SuperClass)
	}

	want := []struct {
		kind    ElementKind
		key     string
		private bool
		static  bool
	}{
		{ElementField, "#count", true, false},
		{ElementField, "#instances", true, true},
		{ElementField, "label", false, false},
		{ElementConstructor, "constructor", false, false},
		{ElementGetter, "#doubled", true, false},
		{ElementSetter, "#doubled", true, false},
		{ElementGetter, "total", false, true},
		{ElementMethod, "#bump", true, false},
		{ElementMethod, "get", false, false},
	}
	if len(cls.Elements) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(cls.Elements))
	}
	for i, w := range want {
		el := cls.Elements[i]
		if el.Kind != w.kind || el.Key != w.key || el.Private != w.private || el.Static != w.static {
			t.Fatalf("element %d: expected %+v, got kind=%s key=%s private=%v static=%v", i, w, el.Kind, el.Key, el.Private, el.Static)
		}
	}

	wantNames := []string{"#count", "#instances", "#doubled", "#bump"}
	if strings.Join(cls.PrivateNames, ",") != strings.Join(wantNames, ",") {
		t.Fatalf("expected private names %v, got %v", wantNames, cls.PrivateNames)
	}
}

func TestParseNewAndMemberChains(t *testing.T) {
	program, errs := newParser(`new Point(1, 2).norm()`).ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expr := program.Statements[0].(*ExprStmt).Expr
	call, ok := expr.(*CallExpr)
	if !ok {
		t.Fatalf("expected call, got %T", expr)
	}
	member, ok := call.Callee.(*MemberExpr)
	if !ok || member.Property != "norm" {
		t.Fatalf("expected .norm callee, got %#v", call.Callee)
	}
	newExpr, ok := member.Object.(*NewExpr)
	if !ok || len(newExpr.Args) != 2 {
		t.Fatalf("expected new with 2 args, got %#v", member.Object)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"duplicate field", `class A { #x; #x; }`, "duplicate private name #x"},
		{"duplicate getter", `class A { get #x() { return 1 } get #x() { return 2 } }`, "duplicate private name #x"},
		{"field and getter", `class A { #x = 1; get #x() { return 1 } }`, "duplicate private name #x"},
		{"method and field", `class A { #x() {} #x = 1 }`, "duplicate private name #x"},
		{"getter setter placement", `class A { get #x() { return 1 } static set #x(v) {} }`, "duplicate private name #x"},
		{"three accessors", `class A { get #x() { return 1 } set #x(v) {} set #x(v) {} }`, "duplicate private name #x"},
		{"reserved name", `class A { #constructor() {} }`, "#constructor is a reserved private name"},
		{"undeclared reference", `class A { m() { return this.#y } }`, "private name #y is not defined"},
		{"undeclared brand check", `class A { m(o) { return #y in o } }`, "private name #y is not defined"},
		{"reference outside class", `let o = {}; o.#x`, "private name #x is not defined"},
		{"heritage cannot see body names", `class A extends (class { m(o) { return o.#x } }) { #x }`, "private name #x is not defined"},
		{"object literal", `let o = { #x: 1 }`, "not allowed in an object literal"},
		{"super through private", `class A extends B { m() { return super.#x } }`, "private names cannot be accessed through super"},
		{"super call in base", `class A { constructor() { super() } }`, "'super' call is only valid in a derived class constructor"},
		{"super call in method", `class A extends B { m() { super() } }`, "'super' call is only valid in a derived class constructor"},
		{"super property in function", `function f() { return super.x }`, "'super' property access is only valid inside methods"},
		{"accessor constructor", `class A { get constructor() { return 1 } }`, "class constructor may not be an accessor"},
		{"constructor field", `class A { constructor = 1 }`, "field named 'constructor'"},
		{"two constructors", `class A { constructor() {} constructor() {} }`, "only have one constructor"},
		{"getter params", `class A { get x(a) { return a } }`, "must not declare parameters"},
		{"setter params", `class A { set x() {} }`, "must declare exactly one parameter"},
		{"stray private name", `#x`, "unexpected private name #x"},
		{"top level return", `return 1`, "illegal return statement"},
		{"duplicate params", `function f(a, a) {}`, "duplicate parameter name"},
		{"invalid target", `f() = 1`, "invalid assignment target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compileError(t, tt.source)
			requireErrorType(t, err, "SyntaxError", tt.want)
		})
	}
}

func TestCompileErrorsAreCollected(t *testing.T) {
	err := compileError(t, "let = 1\nlet = 2\n")
	if got := strings.Count(err.Error(), "SyntaxError at"); got != 2 {
		t.Fatalf("expected 2 syntax errors, got %d:\n%v", got, err)
	}
	if !strings.Contains(err.Error(), "--> line 2") {
		t.Fatalf("expected code frame for line 2, got:\n%v", err)
	}
}

func TestNestedClassSeesEnclosingPrivateNames(t *testing.T) {
	compileScript(t, `
class Outer {
  #secret = 1
  static peek(o) {
    class Inner {
      read(x) { return x.#secret }
    }
    return new Inner().read(o)
  }
}
`)
}
